package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coachdesk/internal/domain/subscription"
	vo "coachdesk/internal/domain/subscription/valueobjects"
	apperrors "coachdesk/internal/shared/errors"
)

func orderedPlan(t *testing.T, planID uint, name string, order int) *subscription.Plan {
	t.Helper()

	plan, err := subscription.NewPlan(name, "", vo.PlanTypePublic, 9900, nil, 0, nil, false, order)
	require.NoError(t, err)
	require.NoError(t, plan.SetID(planID))
	return plan
}

func TestReorderPlan_MovesAndShiftsNeighbors(t *testing.T) {
	planRepo := new(mockPlanRepo)
	auditRepo := new(mockAuditRepo)
	cache := &fakePlanCache{}

	first := orderedPlan(t, 1, "First", 1)
	second := orderedPlan(t, 2, "Second", 2)
	third := orderedPlan(t, 3, "Third", 3)
	catalog := []*subscription.Plan{first, second, third}

	planRepo.On("FindBySID", mock.Anything, third.SID()).Return(third, nil)
	planRepo.On("List", mock.Anything, mock.Anything).Return(catalog, int64(3), nil)
	planRepo.On("UpdateDisplayOrders", mock.Anything, map[uint]int{3: 1, 1: 2, 2: 3}).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewReorderPlansUseCase(planRepo, auditRepo, fakeTxManager{}, cache, nopLogger{})
	err := uc.Execute(context.Background(), ReorderPlansCommand{PlanSID: third.SID(), NewOrder: 1})

	require.NoError(t, err)
	planRepo.AssertExpectations(t)
	assert.Equal(t, 1, cache.invalidated)
}

func TestReorderPlan_TargetBeyondEndClampsToLast(t *testing.T) {
	planRepo := new(mockPlanRepo)
	auditRepo := new(mockAuditRepo)
	cache := &fakePlanCache{}

	first := orderedPlan(t, 1, "First", 1)
	second := orderedPlan(t, 2, "Second", 2)
	catalog := []*subscription.Plan{first, second}

	planRepo.On("FindBySID", mock.Anything, first.SID()).Return(first, nil)
	planRepo.On("List", mock.Anything, mock.Anything).Return(catalog, int64(2), nil)
	planRepo.On("UpdateDisplayOrders", mock.Anything, map[uint]int{2: 1, 1: 2}).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewReorderPlansUseCase(planRepo, auditRepo, fakeTxManager{}, cache, nopLogger{})
	err := uc.Execute(context.Background(), ReorderPlansCommand{PlanSID: first.SID(), NewOrder: 99})

	require.NoError(t, err)
	planRepo.AssertExpectations(t)
}

func TestReorderPlan_NoopWhenAlreadyInPlace(t *testing.T) {
	planRepo := new(mockPlanRepo)
	auditRepo := new(mockAuditRepo)
	cache := &fakePlanCache{}

	first := orderedPlan(t, 1, "First", 1)
	second := orderedPlan(t, 2, "Second", 2)
	catalog := []*subscription.Plan{first, second}

	planRepo.On("FindBySID", mock.Anything, second.SID()).Return(second, nil)
	planRepo.On("List", mock.Anything, mock.Anything).Return(catalog, int64(2), nil)

	uc := NewReorderPlansUseCase(planRepo, auditRepo, fakeTxManager{}, cache, nopLogger{})
	err := uc.Execute(context.Background(), ReorderPlansCommand{PlanSID: second.SID(), NewOrder: 2})

	require.NoError(t, err)
	planRepo.AssertNotCalled(t, "UpdateDisplayOrders", mock.Anything, mock.Anything)
	auditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReorderPlan_InvalidOrderRejected(t *testing.T) {
	uc := NewReorderPlansUseCase(new(mockPlanRepo), new(mockAuditRepo), fakeTxManager{}, &fakePlanCache{}, nopLogger{})

	err := uc.Execute(context.Background(), ReorderPlansCommand{PlanSID: "plan_x", NewOrder: 0})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
}

func TestReorderPlan_UnknownPlan(t *testing.T) {
	planRepo := new(mockPlanRepo)
	planRepo.On("FindBySID", mock.Anything, "plan_missing").
		Return(nil, apperrors.NewNotFoundError("plan not found"))

	uc := NewReorderPlansUseCase(planRepo, new(mockAuditRepo), fakeTxManager{}, &fakePlanCache{}, nopLogger{})
	err := uc.Execute(context.Background(), ReorderPlansCommand{PlanSID: "plan_missing", NewOrder: 1})

	require.Error(t, err)
}
