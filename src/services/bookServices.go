package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/dtos"
	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/google/uuid"
	excelize "github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Cache entry
type CacheEntry struct {
	Data      interface{}
	ExpiresAt time.Time
}

type BookService struct {
	db    *gorm.DB
	cache map[string]*CacheEntry
	mutex sync.RWMutex
}

func NewBookService(db *gorm.DB) *BookService {
	service := &BookService{
		db:    db,
		cache: make(map[string]*CacheEntry),
	}

	// Clean up cache every 30 minutes
	go service.cleanupCache()

	return service
}

func (s *BookService) cleanupCache() {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mutex.Lock()
		now := time.Now()
		for key, entry := range s.cache {
			if now.After(entry.ExpiresAt) {
				delete(s.cache, key)
			}
		}
		s.mutex.Unlock()
	}
}

func (s *BookService) setCache(key string, data interface{}, duration time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.cache[key] = &CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(duration),
	}
}

func (s *BookService) getCache(key string) (interface{}, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, exists := s.cache[key]
	if !exists || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

// InvalidateBookCache drops the cached available-books list and the per-book
// entry. Called after every borrow, return and catalog mutation.
func (s *BookService) InvalidateBookCache(bookId uuid.UUID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.cache, "available_books")
	delete(s.cache, "book_"+bookId.String())
}

// AddBook creates a book, or merges copies into the active book with the same
// title and author.
func (s *BookService) AddBook(req *dtos.BookRequestDTO) (*models.BookModel, error) {
	if req.TotalCopies < 1 {
		return nil, apperrors.New(apperrors.ValidationError, "totalCopies must be at least 1")
	}

	var book models.BookModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("is_deleted = ? AND title = ? AND author = ?", false, req.Title, req.Author).
			First(&book)
		switch {
		case result.Error == nil:
			// Existing title/author: increase both counters.
			book.TotalCopies += req.TotalCopies
			book.AvailableCopies += req.TotalCopies
			if err := tx.Save(&book).Error; err != nil {
				return apperrors.Wrap(apperrors.Internal, err, "failed to update book copies")
			}
			return nil
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			book = models.BookModel{
				Title:           req.Title,
				Author:          req.Author,
				Category:        req.Category,
				TotalCopies:     req.TotalCopies,
				AvailableCopies: req.TotalCopies,
			}
			if err := tx.Create(&book).Error; err != nil {
				return apperrors.Wrap(apperrors.Internal, err, "failed to create book")
			}
			return nil
		default:
			return apperrors.Wrap(apperrors.Internal, result.Error, "failed to look up book")
		}
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateBookCache(book.Id)
	return &book, nil
}

// GetAllBooks lists non-deleted books with an offset/limit window.
func (s *BookService) GetAllBooks(page, size int) (*dtos.Page, error) {
	return s.pageBooks(s.db.Where("is_deleted = ?", false), page, size)
}

// GetBooksWithFilters lists non-deleted books, optionally narrowed by
// category and availability.
func (s *BookService) GetBooksWithFilters(category *string, available *bool, page, size int) (*dtos.Page, error) {
	query := s.db.Where("is_deleted = ?", false)
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	if available != nil {
		query = query.Where("is_available = ?", *available)
	}
	return s.pageBooks(query, page, size)
}

// SearchBooks matches title and author case-insensitively as substrings.
func (s *BookService) SearchBooks(title, author string, page, size int) (*dtos.Page, error) {
	query := s.db.Where("is_deleted = ?", false)
	if title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}
	if author != "" {
		query = query.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(author)+"%")
	}
	return s.pageBooks(query, page, size)
}

func (s *BookService) pageBooks(query *gorm.DB, page, size int) (*dtos.Page, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	var total int64
	if err := query.Model(&models.BookModel{}).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to count books")
	}

	var books []models.BookModel
	if err := query.Order("title").Offset((page - 1) * size).Limit(size).Find(&books).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch books")
	}

	result := dtos.NewPage(books, page, size, total)
	return &result, nil
}

// GetBookByID retrieves a non-deleted book.
func (s *BookService) GetBookByID(id uuid.UUID) (*models.BookModel, error) {
	cacheKey := "book_" + id.String()
	if cached, found := s.getCache(cacheKey); found {
		book := cached.(models.BookModel)
		return &book, nil
	}

	var book models.BookModel
	err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.NotFound, "book not found: %s", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch book")
	}

	s.setCache(cacheKey, book, 10*time.Minute)
	return &book, nil
}

// GetAvailableBooks returns the cached list of books with copies on the shelf.
func (s *BookService) GetAvailableBooks() ([]models.BookModel, error) {
	if cached, found := s.getCache("available_books"); found {
		return cached.([]models.BookModel), nil
	}

	var books []models.BookModel
	err := s.db.Where("is_deleted = ? AND available_copies > 0", false).Order("title").Find(&books).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch available books")
	}

	s.setCache("available_books", books, 5*time.Minute)
	return books, nil
}

func (s *BookService) GetBooksByCategory(category string) ([]models.BookModel, error) {
	var books []models.BookModel
	err := s.db.Where("is_deleted = ? AND category = ?", false, category).Order("title").Find(&books).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch books by category")
	}
	return books, nil
}

// UpdateBook edits title/author/category and applies the total-copies change
// to the available count, keeping 0 <= available <= total.
func (s *BookService) UpdateBook(id uuid.UUID, req *dtos.BookRequestDTO) (*models.BookModel, error) {
	var book models.BookModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.NotFound, "book not found: %s", id)
			}
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch book")
		}

		delta := req.TotalCopies - book.TotalCopies
		newAvailable := book.AvailableCopies + delta
		if newAvailable < 0 || newAvailable > req.TotalCopies {
			return apperrors.New(apperrors.InvariantViolation,
				"copy change would leave %d available of %d total", newAvailable, req.TotalCopies)
		}

		book.Title = req.Title
		book.Author = req.Author
		book.Category = req.Category
		book.TotalCopies = req.TotalCopies
		book.AvailableCopies = newAvailable

		if err := tx.Save(&book).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to update book")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateBookCache(id)
	return &book, nil
}

// UpdateAvailableCopies applies delta to the available count in one guarded
// statement. Zero rows affected on an existing book means the change would
// break 0 <= available <= total.
func (s *BookService) UpdateAvailableCopies(tx *gorm.DB, id uuid.UUID, delta int) error {
	if tx == nil {
		tx = s.db
	}

	result := tx.Model(&models.BookModel{}).
		Where("id = ? AND is_deleted = ? AND available_copies + ? >= 0 AND available_copies + ? <= total_copies",
			id, false, delta, delta).
		Updates(map[string]interface{}{
			"available_copies": gorm.Expr("available_copies + ?", delta),
			"is_available":     gorm.Expr("available_copies + ? > 0", delta),
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.Internal, result.Error, "failed to adjust available copies")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.BookModel{}).
			Where("id = ? AND is_deleted = ?", id, false).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to verify book")
		}
		if count == 0 {
			return apperrors.New(apperrors.NotFound, "book not found: %s", id)
		}
		return apperrors.New(apperrors.InvariantViolation,
			"adjusting available copies by %d would leave the count outside [0, totalCopies]", delta)
	}

	s.InvalidateBookCache(id)
	return nil
}

// DeleteBook soft-deletes; books with open borrow records cannot be removed.
func (s *BookService) DeleteBook(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var book models.BookModel
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.NotFound, "book not found: %s", id)
			}
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch book")
		}

		var open int64
		if err := tx.Model(&models.BorrowRecordModel{}).
			Where("book_id = ? AND return_date IS NULL", id).
			Count(&open).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to count open records")
		}
		if open > 0 {
			return apperrors.New(apperrors.Conflict, "cannot delete book with %d open borrow records", open)
		}

		book.IsDeleted = true
		if err := tx.Save(&book).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to delete book")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.InvalidateBookCache(id)
	return nil
}

// ImportBooksFromExcel loads rows from the "Books" sheet
// (title | author | category | copies) through the AddBook merge path.
// Bad rows are reported and skipped; the import continues.
func (s *BookService) ImportBooksFromExcel(r io.Reader) (*dtos.BookImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ValidationError, err, "invalid excel file")
	}
	defer f.Close()

	rows, err := f.GetRows("Books")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ValidationError, err, "could not read sheet Books")
	}

	result := &dtos.BookImportResult{Imported: 0, Errors: []string{}}

	for i, row := range rows {
		if i == 0 {
			// header
			continue
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < 4 {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: expected 4 columns, got %d", i+1, len(row)))
			continue
		}

		copies, convErr := strconv.Atoi(strings.TrimSpace(row[3]))
		if convErr != nil || copies < 1 {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid copy count %q", i+1, row[3]))
			continue
		}

		req := dtos.BookRequestDTO{
			Title:       strings.TrimSpace(row[0]),
			Author:      strings.TrimSpace(row[1]),
			Category:    strings.TrimSpace(row[2]),
			TotalCopies: copies,
		}
		if req.Author == "" || req.Category == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: author and category are required", i+1))
			continue
		}

		if _, err := s.AddBook(&req); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}

	log.Printf("Book import finished: %d imported, %d errors\n", result.Imported, len(result.Errors))
	return result, nil
}
