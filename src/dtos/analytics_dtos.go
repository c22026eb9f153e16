package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TopBorrowedBookDTO struct {
	BookId      uuid.UUID `json:"bookId"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	BorrowCount int64     `json:"borrowCount"`
}

type BorrowerActivityDTO struct {
	BorrowerId    uuid.UUID       `json:"borrowerId"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	TotalBorrowed int64           `json:"totalBorrowed"`
	OverdueCount  int64           `json:"overdueCount"`
	TotalFines    decimal.Decimal `json:"totalFines"`
}

type SimilarBookDTO struct {
	BookId          uuid.UUID `json:"bookId"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Category        string    `json:"category"`
	AvailableCopies int       `json:"availableCopies"`
	IsAvailable     bool      `json:"isAvailable"`
}

// AvailabilitySummaryDTO aggregates copy counts per category.
type AvailabilitySummaryDTO struct {
	Category        string `json:"category"`
	TotalBooks      int64  `json:"totalBooks"`
	AvailableCopies int64  `json:"availableCopies"`
}
