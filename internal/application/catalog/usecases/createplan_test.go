package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "coachdesk/internal/shared/errors"
)

func TestCreatePlan_Success(t *testing.T) {
	planRepo := new(mockPlanRepo)
	auditRepo := new(mockAuditRepo)
	cache := &fakePlanCache{}

	planRepo.On("MaxDisplayOrder", mock.Anything).Return(3, nil)
	planRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewCreatePlanUseCase(planRepo, auditRepo, fakeTxManager{}, cache, nopLogger{})
	annual := uint64(99000)
	result, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:             "Pro",
		PlanType:         "public",
		MonthlyPrice:     9900,
		AnnualPrice:      &annual,
		MaxStudents:      50,
		Features:         []string{"Workout builder"},
		VisibleOnLanding: true,
		ActorEmail:       "admin@coachdesk.app",
	})

	require.NoError(t, err)
	assert.Equal(t, "Pro", result.Name)
	// appended after the current max order
	assert.Equal(t, 4, result.DisplayOrder)
	assert.Equal(t, 1, cache.invalidated)
	planRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestCreatePlan_InvalidType(t *testing.T) {
	uc := NewCreatePlanUseCase(new(mockPlanRepo), new(mockAuditRepo), fakeTxManager{}, &fakePlanCache{}, nopLogger{})

	_, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:         "Pro",
		PlanType:     "vip",
		MonthlyPrice: 9900,
	})

	require.Error(t, err)
	assert.True(t, apperrors.HasReason(err, apperrors.ReasonValidationFailed))
}

func TestCreatePlan_InvalidPricing(t *testing.T) {
	planRepo := new(mockPlanRepo)
	planRepo.On("MaxDisplayOrder", mock.Anything).Return(0, nil)

	uc := NewCreatePlanUseCase(planRepo, new(mockAuditRepo), fakeTxManager{}, &fakePlanCache{}, nopLogger{})

	_, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:         "Pro",
		PlanType:     "public",
		MonthlyPrice: 0,
	})

	require.Error(t, err)
	assert.True(t, apperrors.HasReason(err, apperrors.ReasonValidationFailed))
	planRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePlan_NotVisibleSkipsCacheInvalidation(t *testing.T) {
	planRepo := new(mockPlanRepo)
	auditRepo := new(mockAuditRepo)
	cache := &fakePlanCache{}

	planRepo.On("MaxDisplayOrder", mock.Anything).Return(0, nil)
	planRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewCreatePlanUseCase(planRepo, auditRepo, fakeTxManager{}, cache, nopLogger{})
	_, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:         "Internal",
		PlanType:     "public",
		MonthlyPrice: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, cache.invalidated)
}
