package services

import (
	"testing"
	"time"

	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagOverdueRecordsCountsOnlyOverdue(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)
	scheduler := NewSchedulerService(borrowSvc, 0)

	first := createTestBook(t, bookSvc, "First", "Fiction", 1)
	second := createTestBook(t, bookSvc, "Second", "Fiction", 1)
	borrower := createTestBorrower(t, borrowerSvc, "Sweeper", "sweeper@example.com", models.MembershipBasic)

	late, err := borrowSvc.BorrowBook(borrower.Id, first.Id)
	require.NoError(t, err)
	_, err = borrowSvc.BorrowBook(borrower.Id, second.Id)
	require.NoError(t, err)

	count, err := scheduler.FlagOverdueRecords()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	backdateDueDate(t, db, late, 3)

	count, err = scheduler.FlagOverdueRecords()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFlagOverdueRecordsDoesNotTouchFines(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)
	scheduler := NewSchedulerService(borrowSvc, 0)

	book := createTestBook(t, bookSvc, "Swept", "Fiction", 1)
	borrower := createTestBorrower(t, borrowerSvc, "Fined Later", "finedlater@example.com", models.MembershipBasic)

	record, err := borrowSvc.BorrowBook(borrower.Id, book.Id)
	require.NoError(t, err)
	backdateDueDate(t, db, record, 5)

	// The sweep detects; it never writes fines or closes records.
	_, err = scheduler.FlagOverdueRecords()
	require.NoError(t, err)

	var swept models.BorrowRecordModel
	require.NoError(t, db.Where("id = ?", record.Id).First(&swept).Error)
	assert.True(t, swept.FineAmount.IsZero())
	assert.Nil(t, swept.ReturnDate)
	assert.True(t, swept.IsActive)
}

func TestFlagOverdueRecordsSkipsOverlappingRun(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)
	scheduler := NewSchedulerService(borrowSvc, 0)

	book := createTestBook(t, bookSvc, "Busy", "Fiction", 1)
	borrower := createTestBorrower(t, borrowerSvc, "Overlap", "overlap@example.com", models.MembershipBasic)
	record, err := borrowSvc.BorrowBook(borrower.Id, book.Id)
	require.NoError(t, err)
	backdateDueDate(t, db, record, 1)

	// Simulate a still-active previous run: the cycle is skipped cleanly.
	scheduler.running.Store(true)
	count, err := scheduler.FlagOverdueRecords()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	scheduler.running.Store(false)

	count, err = scheduler.FlagOverdueRecords()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSchedulerStartStop(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	scheduler := NewSchedulerService(borrowSvc, 0)
	assert.Equal(t, 24*time.Hour, scheduler.interval)

	scheduler.Start()
	scheduler.Stop()
}
