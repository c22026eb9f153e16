package services

import (
	"testing"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateForFallsBackToDefault(t *testing.T) {
	db := newTestDB(t)
	svc := NewFinePolicyService(db)

	rate := svc.RateFor("Uncategorized")
	assert.True(t, rate.Equal(models.DefaultFinePerDay))
	assert.True(t, rate.Equal(decimal.NewFromFloat(1.00)))
}

func TestRateForUsesConfiguredRate(t *testing.T) {
	db := newTestDB(t)
	svc := NewFinePolicyService(db)

	createTestPolicy(t, svc, "Fiction", 0.50)

	rate := svc.RateFor("Fiction")
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.50)))
}

func TestCreatePolicyValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewFinePolicyService(db)

	_, err := svc.CreatePolicy("", decimal.NewFromFloat(0.50))
	assert.Equal(t, apperrors.ValidationError, apperrors.KindOf(err))

	_, err = svc.CreatePolicy("Fiction", decimal.NewFromFloat(-0.50))
	assert.Equal(t, apperrors.ValidationError, apperrors.KindOf(err))

	// A zero rate is a valid way to waive fines for a category.
	policy, err := svc.CreatePolicy("Fiction", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, svc.RateFor("Fiction").IsZero())
	assert.NotEqual(t, uuid.Nil, policy.Id)
}

func TestCreatePolicyDuplicateCategoryConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewFinePolicyService(db)

	createTestPolicy(t, svc, "Tech", 1.00)

	_, err := svc.CreatePolicy("Tech", decimal.NewFromFloat(2.00))
	require.Error(t, err)
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
}

func TestUpdatePolicyChangesRate(t *testing.T) {
	db := newTestDB(t)
	svc := NewFinePolicyService(db)

	policy := createTestPolicy(t, svc, "History", 0.75)

	updated, err := svc.UpdatePolicy(policy.Id, decimal.NewFromFloat(1.25), true)
	require.NoError(t, err)
	assert.True(t, updated.FinePerDay.Equal(decimal.NewFromFloat(1.25)))
	assert.True(t, svc.RateFor("History").Equal(decimal.NewFromFloat(1.25)))
}

func TestDeletePolicyRestoresDefaultRate(t *testing.T) {
	db := newTestDB(t)
	svc := NewFinePolicyService(db)

	policy := createTestPolicy(t, svc, "Fiction", 0.50)
	require.NoError(t, svc.DeletePolicy(policy.Id))

	// Deactivated, not erased: lookups fall back to the default.
	assert.True(t, svc.RateFor("Fiction").Equal(models.DefaultFinePerDay))

	_, err := svc.GetPolicyByID(policy.Id)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	var raw models.FinePolicyModel
	require.NoError(t, db.Where("id = ?", policy.Id).First(&raw).Error)
	assert.False(t, raw.IsActive)

	// The category is free for a new policy again.
	_, err = svc.CreatePolicy("Fiction", decimal.NewFromFloat(0.25))
	require.NoError(t, err)
}

func TestGetAllPoliciesListsActiveOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewFinePolicyService(db)

	createTestPolicy(t, svc, "Fiction", 0.50)
	tech := createTestPolicy(t, svc, "Tech", 1.00)
	require.NoError(t, svc.DeletePolicy(tech.Id))

	policies, err := svc.GetAllPolicies()
	require.NoError(t, err)
	require.Len(t, policies, 1)
	assert.Equal(t, "Fiction", policies[0].Category)
}
