package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoanPeriodDays is the fixed lending period: dueDate = borrowDate + 14 days.
const LoanPeriodDays = 14

type BorrowRecordModel struct {
	Id         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	BookId     uuid.UUID       `json:"bookId" gorm:"type:uuid;column:book_id;not null;index"`
	Book       *BookModel      `json:"book,omitempty" gorm:"foreignKey:BookId;references:Id"`
	BorrowerId uuid.UUID       `json:"borrowerId" gorm:"type:uuid;column:borrower_id;not null;index"`
	Borrower   *BorrowerModel  `json:"borrower,omitempty" gorm:"foreignKey:BorrowerId;references:Id"`
	BorrowDate time.Time       `json:"borrowDate" gorm:"type:date;not null"`
	DueDate    time.Time       `json:"dueDate" gorm:"type:date;not null"`
	ReturnDate *time.Time      `json:"returnDate" gorm:"type:date"`
	FineAmount decimal.Decimal `json:"fineAmount" gorm:"type:decimal(10,2);not null;default:0"`
	// IsActive marks the record as a live part of the ledger. Openness is
	// derived from ReturnDate only; never filter loan state on this flag.
	IsActive  bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (BorrowRecordModel) TableName() string { return "borrow_records" }

func (r *BorrowRecordModel) BeforeCreate(tx *gorm.DB) error {
	if r.Id == uuid.Nil {
		r.Id = uuid.New()
	}
	if r.BorrowDate.IsZero() {
		r.BorrowDate = DateOnly(time.Now())
	}
	if r.DueDate.IsZero() {
		r.DueDate = r.BorrowDate.AddDate(0, 0, LoanPeriodDays)
	}
	return nil
}

// IsOpen reports whether the copy is still out.
func (r *BorrowRecordModel) IsOpen() bool {
	return r.ReturnDate == nil
}

// IsOverdue reports whether the record is open and past due as of the given day.
func (r *BorrowRecordModel) IsOverdue(asOf time.Time) bool {
	return r.ReturnDate == nil && DateOnly(asOf).After(DateOnly(r.DueDate))
}

// DaysOverdue counts whole days past the due date, using the return date for
// closed records and asOf for open ones. Never negative.
func (r *BorrowRecordModel) DaysOverdue(asOf time.Time) int64 {
	end := asOf
	if r.ReturnDate != nil {
		end = *r.ReturnDate
	}
	days := epochDay(end) - epochDay(r.DueDate)
	if days < 0 {
		return 0
	}
	return days
}

// DateOnly drops the time-of-day component; loan dates are day-granular.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func epochDay(t time.Time) int64 {
	return DateOnly(t).Unix() / 86400
}
