package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/LibroTrack/LibroTrack-Backend/src/dtos"
	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "librotrack.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.BookModel{},
		&models.BorrowerModel{},
		&models.BorrowRecordModel{},
		&models.FinePolicyModel{},
		&models.UserModel{},
	))
	return db
}

func createTestBook(t *testing.T, svc *BookService, title, category string, copies int) *models.BookModel {
	t.Helper()

	book, err := svc.AddBook(&dtos.BookRequestDTO{
		Title:       title,
		Author:      "Test Author",
		Category:    category,
		TotalCopies: copies,
	})
	require.NoError(t, err)
	return book
}

func createTestBorrower(t *testing.T, svc *BorrowerService, name, email string, tier models.MembershipType) *models.BorrowerModel {
	t.Helper()

	borrower, err := svc.RegisterBorrower(&dtos.BorrowerRequestDTO{
		Name:           name,
		Email:          email,
		MembershipType: string(tier),
	})
	require.NoError(t, err)
	return borrower
}

func createTestPolicy(t *testing.T, svc *FinePolicyService, category string, rate float64) *models.FinePolicyModel {
	t.Helper()

	policy, err := svc.CreatePolicy(category, decimal.NewFromFloat(rate))
	require.NoError(t, err)
	return policy
}

// backdateDueDate shifts a record's due date into the past to simulate an
// overdue loan without waiting.
func backdateDueDate(t *testing.T, db *gorm.DB, record *models.BorrowRecordModel, days int) {
	t.Helper()

	due := models.DateOnly(time.Now()).AddDate(0, 0, -days)
	err := db.Model(&models.BorrowRecordModel{}).
		Where("id = ?", record.Id).
		Update("due_date", due).Error
	require.NoError(t, err)
}
