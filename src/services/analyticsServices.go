package services

import (
	"errors"
	"time"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/dtos"
	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// GetTopBorrowedBooks returns the five most-borrowed titles by ledger record
// count.
func (s *AnalyticsService) GetTopBorrowedBooks() ([]dtos.TopBorrowedBookDTO, error) {
	var results []dtos.TopBorrowedBookDTO
	err := s.db.Model(&models.BorrowRecordModel{}).
		Select("borrow_records.book_id AS book_id, books.title AS title, books.author AS author, "+
			"books.category AS category, COUNT(borrow_records.id) AS borrow_count").
		Joins("JOIN books ON books.id = borrow_records.book_id").
		Where("borrow_records.is_active = ?", true).
		Group("borrow_records.book_id, books.title, books.author, books.category").
		Order("borrow_count DESC").
		Limit(5).
		Scan(&results).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to compute top borrowed books")
	}
	return results, nil
}

// GetBorrowerActivity aggregates per-borrower loan counts, overdue counts and
// fine totals, joined with the borrower's real name and email.
func (s *AnalyticsService) GetBorrowerActivity() ([]dtos.BorrowerActivityDTO, error) {
	today := models.DateOnly(time.Now())

	type activityRow struct {
		BorrowerId    uuid.UUID
		Name          string
		Email         string
		TotalBorrowed int64
		OverdueCount  int64
		TotalFines    decimal.Decimal
	}

	var rows []activityRow
	err := s.db.Model(&models.BorrowRecordModel{}).
		Select("borrow_records.borrower_id AS borrower_id, borrowers.name AS name, borrowers.email AS email, "+
			"COUNT(borrow_records.id) AS total_borrowed, "+
			"SUM(CASE WHEN borrow_records.return_date IS NULL AND borrow_records.due_date < ? THEN 1 ELSE 0 END) AS overdue_count, "+
			"COALESCE(SUM(borrow_records.fine_amount), 0) AS total_fines", today).
		Joins("JOIN borrowers ON borrowers.id = borrow_records.borrower_id").
		Where("borrow_records.is_active = ?", true).
		Group("borrow_records.borrower_id, borrowers.name, borrowers.email").
		Order("total_borrowed DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to compute borrower activity")
	}

	activity := make([]dtos.BorrowerActivityDTO, 0, len(rows))
	for _, row := range rows {
		activity = append(activity, dtos.BorrowerActivityDTO{
			BorrowerId:    row.BorrowerId,
			Name:          row.Name,
			Email:         row.Email,
			TotalBorrowed: row.TotalBorrowed,
			OverdueCount:  row.OverdueCount,
			TotalFines:    row.TotalFines,
		})
	}
	return activity, nil
}

// GetSimilarBooks lists up to five other active titles in the same category.
func (s *AnalyticsService) GetSimilarBooks(bookId uuid.UUID) ([]dtos.SimilarBookDTO, error) {
	var book models.BookModel
	if err := s.db.Where("id = ?", bookId).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "book not found: %s", bookId)
		}
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch book")
	}

	var books []models.BookModel
	err := s.db.Where("is_deleted = ? AND category = ? AND id <> ?", false, book.Category, bookId).
		Order("title").
		Limit(5).
		Find(&books).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch similar books")
	}

	similar := make([]dtos.SimilarBookDTO, 0, len(books))
	for _, b := range books {
		similar = append(similar, dtos.SimilarBookDTO{
			BookId:          b.Id,
			Title:           b.Title,
			Author:          b.Author,
			Category:        b.Category,
			AvailableCopies: b.AvailableCopies,
			IsAvailable:     b.IsAvailable,
		})
	}
	return similar, nil
}

// GetAvailabilitySummary aggregates book and available-copy counts per
// category over the active catalog.
func (s *AnalyticsService) GetAvailabilitySummary() ([]dtos.AvailabilitySummaryDTO, error) {
	var summary []dtos.AvailabilitySummaryDTO
	err := s.db.Model(&models.BookModel{}).
		Select("category AS category, COUNT(id) AS total_books, COALESCE(SUM(available_copies), 0) AS available_copies").
		Where("is_deleted = ?", false).
		Group("category").
		Order("category").
		Scan(&summary).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to compute availability summary")
	}
	return summary, nil
}
