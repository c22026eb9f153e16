package dtos

// BorrowerRequestDTO is the payload for registering or updating a borrower.
// MaxBorrowLimit overrides the tier default when set.
type BorrowerRequestDTO struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	MembershipType string `json:"membershipType" binding:"required"`
	MaxBorrowLimit int    `json:"maxBorrowLimit"`
}
