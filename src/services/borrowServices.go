package services

import (
	"errors"
	"log"
	"time"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BorrowService runs the borrowing workflow: every borrow and return is a
// single transaction spanning the book's copy counter and the ledger row.
type BorrowService struct {
	db          *gorm.DB
	bookService *BookService // invalidates the availability cache after each transition
}

// bookService may be nil in contexts without the catalog cache.
func NewBorrowService(db *gorm.DB, bookService *BookService) *BorrowService {
	return &BorrowService{
		db:          db,
		bookService: bookService,
	}
}

// BorrowBook opens a loan for (borrower, book).
//
// Preconditions, all checked inside one transaction: the borrower exists and
// is active, the book exists and is not deleted, the borrower is under their
// limit, no open loan exists for this pair, and a copy is on the shelf. The
// copy is taken with a guarded decrement so that two concurrent requests for
// the last copy cannot both succeed; the loser sees zero rows affected.
func (s *BorrowService) BorrowBook(borrowerId, bookId uuid.UUID) (*models.BorrowRecordModel, error) {
	log.Printf("Processing borrow request: borrowerId=%s, bookId=%s\n", borrowerId, bookId)

	var record models.BorrowRecordModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var borrower models.BorrowerModel
		if err := tx.Where("id = ? AND is_active = ?", borrowerId, true).First(&borrower).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.NotFound, "borrower not found or inactive: %s", borrowerId)
			}
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch borrower")
		}

		var book models.BookModel
		if err := tx.Where("id = ? AND is_deleted = ?", bookId, false).First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.NotFound, "book not found or deleted: %s", bookId)
			}
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch book")
		}

		open, err := countOpenLoans(tx, borrowerId)
		if err != nil {
			return err
		}
		if open >= int64(borrower.MaxBorrowLimit) {
			return apperrors.New(apperrors.LimitExceeded,
				"borrower has reached maximum borrow limit of %d", borrower.MaxBorrowLimit)
		}

		var pairCount int64
		if err := tx.Model(&models.BorrowRecordModel{}).
			Where("borrower_id = ? AND book_id = ? AND return_date IS NULL", borrowerId, bookId).
			Count(&pairCount).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to check existing loan")
		}
		if pairCount > 0 {
			return apperrors.New(apperrors.Conflict, "borrower already has this book borrowed")
		}

		// Take the copy. The WHERE guard is the serialization point for the
		// last-copy race.
		result := tx.Model(&models.BookModel{}).
			Where("id = ? AND is_deleted = ? AND available_copies > 0", bookId, false).
			Updates(map[string]interface{}{
				"available_copies": gorm.Expr("available_copies - 1"),
				"is_available":     gorm.Expr("available_copies - 1 > 0"),
			})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.Internal, result.Error, "failed to reserve copy")
		}
		if result.RowsAffected == 0 {
			return apperrors.New(apperrors.Unavailable, "book is not available for borrowing")
		}

		borrowDate := models.DateOnly(time.Now())
		record = models.BorrowRecordModel{
			BookId:     bookId,
			BorrowerId: borrowerId,
			BorrowDate: borrowDate,
			DueDate:    borrowDate.AddDate(0, 0, models.LoanPeriodDays),
			FineAmount: decimal.Zero,
			IsActive:   true,
		}
		if err := tx.Create(&record).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to create borrow record")
		}
		return nil
	})
	if err != nil {
		log.Printf("Borrow request failed: borrowerId=%s, bookId=%s, error=%v\n", borrowerId, bookId, err)
		return nil, err
	}

	if s.bookService != nil {
		s.bookService.InvalidateBookCache(bookId)
	}

	if err := s.db.Preload("Book").Preload("Borrower").First(&record, "id = ?", record.Id).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to reload borrow record")
	}

	log.Printf("Successfully borrowed book. Record ID: %s, Due date: %s\n",
		record.Id, record.DueDate.Format("2006-01-02"))
	return &record, nil
}

// ReturnBook closes an open loan: sets the return date, computes the fine
// from the category's active rate (default 1.00/day) times whole days
// overdue, and releases the copy. Returning a closed record is a Conflict,
// never a silent success.
func (s *BorrowService) ReturnBook(recordId uuid.UUID) (*models.BorrowRecordModel, error) {
	log.Printf("Processing return request for borrow record: %s\n", recordId)

	var record models.BorrowRecordModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Book").First(&record, "id = ?", recordId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.NotFound, "borrow record not found: %s", recordId)
			}
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch borrow record")
		}

		if record.ReturnDate != nil {
			return apperrors.New(apperrors.Conflict, "book is already returned")
		}

		returnDate := models.DateOnly(time.Now())
		record.ReturnDate = &returnDate

		if days := record.DaysOverdue(returnDate); days > 0 {
			rate := models.DefaultFinePerDay
			if record.Book != nil {
				rate = rateFor(tx, record.Book.Category)
			}
			record.FineAmount = rate.Mul(decimal.NewFromInt(days))
			log.Printf("Book returned overdue. Fine: %s, Days overdue: %d\n", record.FineAmount, days)
		}

		// IsActive stays as-is: it marks ledger liveness, not openness.
		if err := tx.Save(&record).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to close borrow record")
		}

		// Release the copy; the guard catches a ledger/catalog mismatch.
		result := tx.Model(&models.BookModel{}).
			Where("id = ? AND available_copies < total_copies", record.BookId).
			Updates(map[string]interface{}{
				"available_copies": gorm.Expr("available_copies + 1"),
				"is_available":     true,
			})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.Internal, result.Error, "failed to release copy")
		}
		if result.RowsAffected == 0 {
			return apperrors.New(apperrors.InvariantViolation,
				"available copies would exceed total copies for book %s", record.BookId)
		}
		return nil
	})
	if err != nil {
		log.Printf("Return request failed: recordId=%s, error=%v\n", recordId, err)
		return nil, err
	}

	if s.bookService != nil {
		s.bookService.InvalidateBookCache(record.BookId)
	}

	if err := s.db.Preload("Book").Preload("Borrower").First(&record, "id = ?", record.Id).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to reload borrow record")
	}

	log.Printf("Successfully returned book. Record ID: %s, Fine: %s\n", record.Id, record.FineAmount)
	return &record, nil
}

// GetActiveBorrowRecords lists all open loans.
func (s *BorrowService) GetActiveBorrowRecords() ([]models.BorrowRecordModel, error) {
	var records []models.BorrowRecordModel
	err := s.db.Preload("Book").Preload("Borrower").
		Where("return_date IS NULL").
		Order("borrow_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch active records")
	}
	return records, nil
}

// GetOverdueBorrowRecords lists open loans past due as of the given day.
func (s *BorrowService) GetOverdueBorrowRecords(asOf time.Time) ([]models.BorrowRecordModel, error) {
	var records []models.BorrowRecordModel
	err := s.db.Preload("Book").Preload("Borrower").
		Where("return_date IS NULL AND due_date < ?", models.DateOnly(asOf)).
		Order("due_date").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch overdue records")
	}
	return records, nil
}

// GetBorrowHistoryByBorrower lists a borrower's records, newest first.
func (s *BorrowService) GetBorrowHistoryByBorrower(borrowerId uuid.UUID) ([]models.BorrowRecordModel, error) {
	var records []models.BorrowRecordModel
	err := s.db.Preload("Book").
		Where("borrower_id = ?", borrowerId).
		Order("borrow_date DESC, created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch borrow history")
	}
	return records, nil
}

// GetBorrowRecordsByDateRange lists records borrowed within [start, end].
func (s *BorrowService) GetBorrowRecordsByDateRange(start, end time.Time) ([]models.BorrowRecordModel, error) {
	var records []models.BorrowRecordModel
	err := s.db.Preload("Book").Preload("Borrower").
		Where("borrow_date >= ? AND borrow_date <= ?", models.DateOnly(start), models.DateOnly(end)).
		Order("borrow_date").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch records by date range")
	}
	return records, nil
}
