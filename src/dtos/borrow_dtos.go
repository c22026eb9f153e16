package dtos

import "github.com/google/uuid"

type BorrowRequestDTO struct {
	BorrowerId uuid.UUID `json:"borrowerId" binding:"required"`
	BookId     uuid.UUID `json:"bookId" binding:"required"`
}

type ReturnRequestDTO struct {
	BorrowRecordId uuid.UUID `json:"borrowRecordId" binding:"required"`
}
