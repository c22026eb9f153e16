package services

import (
	"testing"
	"time"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowBookDecrementsAvailableCopies(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	book := createTestBook(t, bookSvc, "1984", "Fiction", 4)
	borrower := createTestBorrower(t, borrowerSvc, "John Doe", "john@example.com", models.MembershipBasic)

	record, err := borrowSvc.BorrowBook(borrower.Id, book.Id)
	require.NoError(t, err)

	assert.Equal(t, book.Id, record.BookId)
	assert.Equal(t, borrower.Id, record.BorrowerId)
	assert.Nil(t, record.ReturnDate)
	assert.True(t, record.IsActive)
	assert.Equal(t, record.BorrowDate.AddDate(0, 0, models.LoanPeriodDays), record.DueDate)
	assert.True(t, record.FineAmount.IsZero())

	reloaded, err := bookSvc.GetBookByID(book.Id)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.AvailableCopies)
	assert.Equal(t, 4, reloaded.TotalCopies)
	assert.True(t, reloaded.IsAvailable)
}

func TestBorrowLastCopyThenUnavailable(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	book := createTestBook(t, bookSvc, "The Guns of August", "History", 1)
	x := createTestBorrower(t, borrowerSvc, "Borrower X", "x@example.com", models.MembershipBasic)
	y := createTestBorrower(t, borrowerSvc, "Borrower Y", "y@example.com", models.MembershipBasic)

	_, err := borrowSvc.BorrowBook(x.Id, book.Id)
	require.NoError(t, err)

	reloaded, err := bookSvc.GetBookByID(book.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.AvailableCopies)
	assert.False(t, reloaded.IsAvailable)

	_, err = borrowSvc.BorrowBook(y.Id, book.Id)
	require.Error(t, err)
	assert.Equal(t, apperrors.Unavailable, apperrors.KindOf(err))
}

func TestBorrowLimitExceeded(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	// Basic tier: at most 2 concurrent open loans, availability irrelevant.
	borrower := createTestBorrower(t, borrowerSvc, "Jane Smith", "jane@example.com", models.MembershipBasic)
	first := createTestBook(t, bookSvc, "Book One", "Fiction", 5)
	second := createTestBook(t, bookSvc, "Book Two", "Fiction", 5)
	third := createTestBook(t, bookSvc, "Book Three", "Fiction", 5)

	_, err := borrowSvc.BorrowBook(borrower.Id, first.Id)
	require.NoError(t, err)
	_, err = borrowSvc.BorrowBook(borrower.Id, second.Id)
	require.NoError(t, err)

	_, err = borrowSvc.BorrowBook(borrower.Id, third.Id)
	require.Error(t, err)
	assert.Equal(t, apperrors.LimitExceeded, apperrors.KindOf(err))
}

func TestBorrowPremiumLimitIsFive(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	borrower := createTestBorrower(t, borrowerSvc, "Alice Brown", "alice@example.com", models.MembershipPremium)

	for i := 0; i < 5; i++ {
		book := createTestBook(t, bookSvc, "Premium Book "+string(rune('A'+i)), "Tech", 1)
		_, err := borrowSvc.BorrowBook(borrower.Id, book.Id)
		require.NoError(t, err)
	}

	extra := createTestBook(t, bookSvc, "One Too Many", "Tech", 1)
	_, err := borrowSvc.BorrowBook(borrower.Id, extra.Id)
	require.Error(t, err)
	assert.Equal(t, apperrors.LimitExceeded, apperrors.KindOf(err))
}

func TestBorrowSameBookTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	book := createTestBook(t, bookSvc, "Sapiens", "History", 3)
	borrower := createTestBorrower(t, borrowerSvc, "Bob Johnson", "bob@example.com", models.MembershipPremium)

	_, err := borrowSvc.BorrowBook(borrower.Id, book.Id)
	require.NoError(t, err)

	_, err = borrowSvc.BorrowBook(borrower.Id, book.Id)
	require.Error(t, err)
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))

	// Copies were only taken once.
	reloaded, err := bookSvc.GetBookByID(book.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.AvailableCopies)
}

func TestBorrowUnknownEntities(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	book := createTestBook(t, bookSvc, "Clean Code", "Tech", 1)
	borrower := createTestBorrower(t, borrowerSvc, "Charlie Wilson", "charlie@example.com", models.MembershipBasic)

	_, err := borrowSvc.BorrowBook(uuid.New(), book.Id)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	_, err = borrowSvc.BorrowBook(borrower.Id, uuid.New())
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestBorrowDeactivatedBorrowerAndDeletedBook(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	book := createTestBook(t, bookSvc, "Design Patterns", "Tech", 2)
	borrower := createTestBorrower(t, borrowerSvc, "Gone Away", "gone@example.com", models.MembershipBasic)

	require.NoError(t, borrowerSvc.DeactivateBorrower(borrower.Id))
	_, err := borrowSvc.BorrowBook(borrower.Id, book.Id)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	active := createTestBorrower(t, borrowerSvc, "Still Here", "here@example.com", models.MembershipBasic)
	require.NoError(t, bookSvc.DeleteBook(book.Id))
	_, err = borrowSvc.BorrowBook(active.Id, book.Id)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestReturnOnTimeHasNoFine(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	book := createTestBook(t, bookSvc, "Pride and Prejudice", "Fiction", 2)
	borrower := createTestBorrower(t, borrowerSvc, "On Time", "ontime@example.com", models.MembershipBasic)

	record, err := borrowSvc.BorrowBook(borrower.Id, book.Id)
	require.NoError(t, err)

	returned, err := borrowSvc.ReturnBook(record.Id)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnDate)
	assert.True(t, returned.FineAmount.IsZero())

	reloaded, err := bookSvc.GetBookByID(book.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.AvailableCopies)
}

func TestReturnTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	book := createTestBook(t, bookSvc, "To Kill a Mockingbird", "Fiction", 1)
	borrower := createTestBorrower(t, borrowerSvc, "Twice", "twice@example.com", models.MembershipBasic)

	record, err := borrowSvc.BorrowBook(borrower.Id, book.Id)
	require.NoError(t, err)

	_, err = borrowSvc.ReturnBook(record.Id)
	require.NoError(t, err)

	_, err = borrowSvc.ReturnBook(record.Id)
	require.Error(t, err)
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))

	// The copy count is not double-credited.
	reloaded, err := bookSvc.GetBookByID(book.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.AvailableCopies)
}

func TestReturnOverdueComputesCategoryFine(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	policySvc := NewFinePolicyService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	createTestPolicy(t, policySvc, "Fiction", 0.50)

	book := createTestBook(t, bookSvc, "The Great Gatsby", "Fiction", 1)
	borrower := createTestBorrower(t, borrowerSvc, "Late Reader", "late@example.com", models.MembershipBasic)

	record, err := borrowSvc.BorrowBook(borrower.Id, book.Id)
	require.NoError(t, err)

	// Due six days ago: fine = 0.50 * 6 = 3.00.
	backdateDueDate(t, db, record, 6)

	returned, err := borrowSvc.ReturnBook(record.Id)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnDate)
	assert.True(t, returned.FineAmount.Equal(decimal.NewFromFloat(3.00)),
		"fine was %s", returned.FineAmount)

	reloaded, err := bookSvc.GetBookByID(book.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.AvailableCopies)
}

func TestReturnOverdueFallsBackToDefaultRate(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	// No policy configured for the category: 1.00/day applies.
	book := createTestBook(t, bookSvc, "Uncharted Waters", "Travel", 1)
	borrower := createTestBorrower(t, borrowerSvc, "Wanderer", "wanderer@example.com", models.MembershipBasic)

	record, err := borrowSvc.BorrowBook(borrower.Id, book.Id)
	require.NoError(t, err)

	backdateDueDate(t, db, record, 4)

	returned, err := borrowSvc.ReturnBook(record.Id)
	require.NoError(t, err)
	assert.True(t, returned.FineAmount.Equal(decimal.NewFromInt(4)),
		"fine was %s", returned.FineAmount)
}

func TestReturnLeavesIsActiveUntouched(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	book := createTestBook(t, bookSvc, "A People's History", "History", 1)
	borrower := createTestBorrower(t, borrowerSvc, "Ledger Reader", "ledger@example.com", models.MembershipBasic)

	record, err := borrowSvc.BorrowBook(borrower.Id, book.Id)
	require.NoError(t, err)

	returned, err := borrowSvc.ReturnBook(record.Id)
	require.NoError(t, err)
	// The record stays a live ledger entry; openness derives from ReturnDate.
	assert.True(t, returned.IsActive)
	assert.False(t, returned.IsOpen())
}

func TestActiveAndOverdueProjections(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	first := createTestBook(t, bookSvc, "First", "Fiction", 1)
	second := createTestBook(t, bookSvc, "Second", "Fiction", 1)
	borrower := createTestBorrower(t, borrowerSvc, "Projector", "projector@example.com", models.MembershipBasic)

	r1, err := borrowSvc.BorrowBook(borrower.Id, first.Id)
	require.NoError(t, err)
	r2, err := borrowSvc.BorrowBook(borrower.Id, second.Id)
	require.NoError(t, err)

	backdateDueDate(t, db, r1, 3)

	active, err := borrowSvc.GetActiveBorrowRecords()
	require.NoError(t, err)
	assert.Len(t, active, 2)

	overdue, err := borrowSvc.GetOverdueBorrowRecords(time.Now())
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, r1.Id, overdue[0].Id)

	// Closing removes a record from both projections.
	_, err = borrowSvc.ReturnBook(r1.Id)
	require.NoError(t, err)

	active, err = borrowSvc.GetActiveBorrowRecords()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, r2.Id, active[0].Id)

	overdue, err = borrowSvc.GetOverdueBorrowRecords(time.Now())
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestBorrowHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	bookSvc := NewBookService(db)
	borrowerSvc := NewBorrowerService(db)
	borrowSvc := NewBorrowService(db, bookSvc)

	book := createTestBook(t, bookSvc, "History Book", "History", 2)
	borrower := createTestBorrower(t, borrowerSvc, "Historian", "historian@example.com", models.MembershipBasic)

	record, err := borrowSvc.BorrowBook(borrower.Id, book.Id)
	require.NoError(t, err)
	_, err = borrowSvc.ReturnBook(record.Id)
	require.NoError(t, err)
	_, err = borrowSvc.BorrowBook(borrower.Id, book.Id)
	require.NoError(t, err)

	history, err := borrowSvc.GetBorrowHistoryByBorrower(borrower.Id)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
