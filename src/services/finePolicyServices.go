package services

import (
	"errors"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FinePolicyService struct {
	db *gorm.DB
}

func NewFinePolicyService(db *gorm.DB) *FinePolicyService {
	return &FinePolicyService{db: db}
}

// RateFor returns the active per-day fine rate for a category. A category
// without an active policy is a handled case, not an error: the default rate
// applies.
func (s *FinePolicyService) RateFor(category string) decimal.Decimal {
	return rateFor(s.db, category)
}

func rateFor(tx *gorm.DB, category string) decimal.Decimal {
	var policy models.FinePolicyModel
	err := tx.Where("category = ? AND is_active = ?", category, true).First(&policy).Error
	if err != nil {
		return models.DefaultFinePerDay
	}
	return policy.FinePerDay
}

func (s *FinePolicyService) GetAllPolicies() ([]models.FinePolicyModel, error) {
	var policies []models.FinePolicyModel
	if err := s.db.Where("is_active = ?", true).Order("category").Find(&policies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch fine policies")
	}
	return policies, nil
}

func (s *FinePolicyService) GetPolicyByID(id uuid.UUID) (*models.FinePolicyModel, error) {
	var policy models.FinePolicyModel
	err := s.db.Where("id = ? AND is_active = ?", id, true).First(&policy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.NotFound, "fine policy not found: %s", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch fine policy")
	}
	return &policy, nil
}

// CreatePolicy registers a per-day rate for a category. One active policy per
// category.
func (s *FinePolicyService) CreatePolicy(category string, finePerDay decimal.Decimal) (*models.FinePolicyModel, error) {
	if category == "" {
		return nil, apperrors.New(apperrors.ValidationError, "category is required")
	}
	if finePerDay.IsNegative() {
		return nil, apperrors.New(apperrors.ValidationError, "finePerDay must not be negative")
	}

	var policy models.FinePolicyModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.FinePolicyModel{}).
			Where("category = ? AND is_active = ?", category, true).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to check fine policy")
		}
		if count > 0 {
			return apperrors.New(apperrors.Conflict, "active fine policy for category %s already exists", category)
		}

		policy = models.FinePolicyModel{Category: category, FinePerDay: finePerDay, IsActive: true}
		if err := tx.Create(&policy).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to create fine policy")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (s *FinePolicyService) UpdatePolicy(id uuid.UUID, finePerDay decimal.Decimal, active bool) (*models.FinePolicyModel, error) {
	if finePerDay.IsNegative() {
		return nil, apperrors.New(apperrors.ValidationError, "finePerDay must not be negative")
	}

	policy, err := s.GetPolicyByID(id)
	if err != nil {
		return nil, err
	}

	policy.FinePerDay = finePerDay
	policy.IsActive = active
	if err := s.db.Save(policy).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to update fine policy")
	}
	return policy, nil
}

// DeletePolicy deactivates a policy; lookups fall back to the default rate.
func (s *FinePolicyService) DeletePolicy(id uuid.UUID) error {
	policy, err := s.GetPolicyByID(id)
	if err != nil {
		return err
	}
	policy.IsActive = false
	if err := s.db.Save(policy).Error; err != nil {
		return apperrors.Wrap(apperrors.Internal, err, "failed to deactivate fine policy")
	}
	return nil
}
