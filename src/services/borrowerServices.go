package services

import (
	"errors"
	"strings"
	"time"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/dtos"
	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BorrowerService struct {
	db *gorm.DB
}

func NewBorrowerService(db *gorm.DB) *BorrowerService {
	return &BorrowerService{db: db}
}

// RegisterBorrower creates an active borrower. The email must not belong to
// another active borrower; the borrow limit defaults from the membership tier
// unless the request overrides it.
func (s *BorrowerService) RegisterBorrower(req *dtos.BorrowerRequestDTO) (*models.BorrowerModel, error) {
	membership := models.MembershipType(strings.ToUpper(req.MembershipType))
	if !membership.IsValid() {
		return nil, apperrors.New(apperrors.ValidationError, "unknown membership type: %s", req.MembershipType)
	}
	if req.MaxBorrowLimit < 0 {
		return nil, apperrors.New(apperrors.ValidationError, "maxBorrowLimit must not be negative")
	}

	var borrower models.BorrowerModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.BorrowerModel{}).
			Where("email = ? AND is_active = ?", req.Email, true).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to check email")
		}
		if count > 0 {
			return apperrors.New(apperrors.Conflict, "borrower with email %s already exists", req.Email)
		}

		borrower = models.BorrowerModel{
			Name:           req.Name,
			Email:          req.Email,
			MembershipType: membership,
			MaxBorrowLimit: req.MaxBorrowLimit,
			IsActive:       true,
		}
		if err := tx.Create(&borrower).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to register borrower")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &borrower, nil
}

func (s *BorrowerService) GetAllBorrowers() ([]models.BorrowerModel, error) {
	var borrowers []models.BorrowerModel
	if err := s.db.Where("is_active = ?", true).Order("name").Find(&borrowers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch borrowers")
	}
	return borrowers, nil
}

func (s *BorrowerService) GetBorrowerByID(id uuid.UUID) (*models.BorrowerModel, error) {
	var borrower models.BorrowerModel
	err := s.db.Where("id = ? AND is_active = ?", id, true).First(&borrower).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.NotFound, "borrower not found: %s", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch borrower")
	}
	return &borrower, nil
}

// SearchBorrowers matches name or email case-insensitively as substrings.
func (s *BorrowerService) SearchBorrowers(term string) ([]models.BorrowerModel, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var borrowers []models.BorrowerModel
	err := s.db.Where("is_active = ? AND (LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", true, pattern, pattern).
		Order("name").Find(&borrowers).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to search borrowers")
	}
	return borrowers, nil
}

// UpdateBorrower edits profile fields. A tier change recomputes the default
// limit unless the request carries an explicit override.
func (s *BorrowerService) UpdateBorrower(id uuid.UUID, req *dtos.BorrowerRequestDTO) (*models.BorrowerModel, error) {
	membership := models.MembershipType(strings.ToUpper(req.MembershipType))
	if !membership.IsValid() {
		return nil, apperrors.New(apperrors.ValidationError, "unknown membership type: %s", req.MembershipType)
	}

	var borrower models.BorrowerModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_active = ?", id, true).First(&borrower).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.NotFound, "borrower not found: %s", id)
			}
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch borrower")
		}

		if req.Email != borrower.Email {
			var count int64
			if err := tx.Model(&models.BorrowerModel{}).
				Where("email = ? AND is_active = ? AND id <> ?", req.Email, true, id).
				Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.Internal, err, "failed to check email")
			}
			if count > 0 {
				return apperrors.New(apperrors.Conflict, "borrower with email %s already exists", req.Email)
			}
		}

		borrower.Name = req.Name
		borrower.Email = req.Email
		borrower.MembershipType = membership
		if req.MaxBorrowLimit > 0 {
			borrower.MaxBorrowLimit = req.MaxBorrowLimit
		} else {
			borrower.MaxBorrowLimit = membership.MaxBorrowLimit()
		}

		if err := tx.Save(&borrower).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to update borrower")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &borrower, nil
}

// DeactivateBorrower soft-deactivates; borrowers holding open loans cannot be
// removed.
func (s *BorrowerService) DeactivateBorrower(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var borrower models.BorrowerModel
		if err := tx.Where("id = ? AND is_active = ?", id, true).First(&borrower).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.NotFound, "borrower not found: %s", id)
			}
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch borrower")
		}

		open, err := countOpenLoans(tx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return apperrors.New(apperrors.Conflict, "cannot deactivate borrower with %d open loans", open)
		}

		borrower.IsActive = false
		if err := tx.Save(&borrower).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to deactivate borrower")
		}
		return nil
	})
}

// CountOpenLoans reports the borrower's current open-loan count.
func (s *BorrowerService) CountOpenLoans(id uuid.UUID) (int64, error) {
	return countOpenLoans(s.db, id)
}

func countOpenLoans(tx *gorm.DB, borrowerId uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&models.BorrowRecordModel{}).
		Where("borrower_id = ? AND return_date IS NULL", borrowerId).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.Internal, err, "failed to count open loans")
	}
	return count, nil
}

// GetBorrowersWithOverdueBooks lists active borrowers that hold at least one
// open record past its due date as of the given day.
func (s *BorrowerService) GetBorrowersWithOverdueBooks(asOf time.Time) ([]models.BorrowerModel, error) {
	var borrowers []models.BorrowerModel
	err := s.db.Where("is_active = ? AND id IN (?)", true,
		s.db.Model(&models.BorrowRecordModel{}).
			Select("borrower_id").
			Where("return_date IS NULL AND due_date < ?", models.DateOnly(asOf)),
	).Order("name").Find(&borrowers).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch overdue borrowers")
	}
	return borrowers, nil
}
