package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coachdesk/internal/domain/subscription"
	vo "coachdesk/internal/domain/subscription/valueobjects"
	"coachdesk/internal/domain/trainer"
	apperrors "coachdesk/internal/shared/errors"
)

func testTrainer(t *testing.T) *trainer.Trainer {
	t.Helper()
	tr, err := trainer.NewTrainer("Maria Silva", "maria@example.com")
	require.NoError(t, err)
	require.NoError(t, tr.SetID(10))
	return tr
}

func testPlan(t *testing.T, planType vo.PlanType) *subscription.Plan {
	t.Helper()

	monthly := uint64(9900)
	if planType.IsLifetime() {
		monthly = 0
	}
	plan, err := subscription.NewPlan("Pro", "", planType, monthly, nil, 0, nil, false, 1)
	require.NoError(t, err)
	require.NoError(t, plan.SetID(1))
	return plan
}

func assignDeps(t *testing.T) (*mockTrainerRepo, *mockPlanRepo, *mockSubscriptionRepo, *mockHistoryRepo, *mockAuditRepo) {
	t.Helper()
	return new(mockTrainerRepo), new(mockPlanRepo), new(mockSubscriptionRepo),
		new(mockHistoryRepo), new(mockAuditRepo)
}

func TestAssignPlan_Success(t *testing.T) {
	trainerRepo, planRepo, subRepo, historyRepo, auditRepo := assignDeps(t)

	trainerRepo.On("FindBySID", mock.Anything, "tr_abc").Return(testTrainer(t), nil)
	planRepo.On("FindBySID", mock.Anything, "plan_x").Return(testPlan(t, vo.PlanTypePublic), nil)
	subRepo.On("FindByTrainerID", mock.Anything, uint(10)).Return(subscription.NewUnsubscribed(10), nil)
	subRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	historyRepo.On("Create", mock.Anything, mock.MatchedBy(func(h *subscription.History) bool {
		// price snapshot: 9900 with 10% off
		return h.ChargedPrice() == 8910 && h.ChangeType() == subscription.ChangeAssigned
	})).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewAssignPlanUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo,
		fakeTxManager{}, fakePermissions{allowed: true}, nopLogger{})

	result, err := uc.Execute(context.Background(), AssignPlanCommand{
		TrainerSID:      "tr_abc",
		PlanSID:         "plan_x",
		Period:          "monthly",
		DiscountPercent: 10,
		ActorID:         1,
		ActorEmail:      "admin@coachdesk.app",
	})

	require.NoError(t, err)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, "monthly", result.Period)
	require.NotNil(t, result.FinalPrice)
	assert.Equal(t, uint64(8910), *result.FinalPrice)
	require.NotNil(t, result.DueDate)
	historyRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestAssignPlan_Forbidden(t *testing.T) {
	trainerRepo, planRepo, subRepo, historyRepo, auditRepo := assignDeps(t)

	uc := NewAssignPlanUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo,
		fakeTxManager{}, fakePermissions{allowed: false}, nopLogger{})

	_, err := uc.Execute(context.Background(), AssignPlanCommand{
		TrainerSID: "tr_abc",
		PlanSID:    "plan_x",
		Period:     "monthly",
		ActorID:    2,
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	trainerRepo.AssertNotCalled(t, "FindBySID", mock.Anything, mock.Anything)
}

func TestAssignPlan_InactivePlan(t *testing.T) {
	trainerRepo, planRepo, subRepo, historyRepo, auditRepo := assignDeps(t)

	plan := testPlan(t, vo.PlanTypePublic)
	plan.Deactivate()

	trainerRepo.On("FindBySID", mock.Anything, "tr_abc").Return(testTrainer(t), nil)
	planRepo.On("FindBySID", mock.Anything, "plan_x").Return(plan, nil)
	subRepo.On("FindByTrainerID", mock.Anything, uint(10)).Return(subscription.NewUnsubscribed(10), nil)

	uc := NewAssignPlanUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo,
		fakeTxManager{}, fakePermissions{allowed: true}, nopLogger{})

	_, err := uc.Execute(context.Background(), AssignPlanCommand{
		TrainerSID: "tr_abc",
		PlanSID:    "plan_x",
		Period:     "monthly",
		ActorID:    1,
	})

	require.Error(t, err)
	assert.True(t, apperrors.HasReason(err, apperrors.ReasonPlanInactive))
	subRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAssignPlan_AnnualWithoutAnnualPrice(t *testing.T) {
	trainerRepo, planRepo, subRepo, historyRepo, auditRepo := assignDeps(t)

	trainerRepo.On("FindBySID", mock.Anything, "tr_abc").Return(testTrainer(t), nil)
	planRepo.On("FindBySID", mock.Anything, "plan_x").Return(testPlan(t, vo.PlanTypePublic), nil)
	subRepo.On("FindByTrainerID", mock.Anything, uint(10)).Return(subscription.NewUnsubscribed(10), nil)

	uc := NewAssignPlanUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo,
		fakeTxManager{}, fakePermissions{allowed: true}, nopLogger{})

	_, err := uc.Execute(context.Background(), AssignPlanCommand{
		TrainerSID: "tr_abc",
		PlanSID:    "plan_x",
		Period:     "annual",
		ActorID:    1,
	})

	require.Error(t, err)
	assert.True(t, apperrors.HasReason(err, apperrors.ReasonPeriodInvalidForPlanType))
}

func TestAssignPlan_LifetimeSnapshotsZeroPrice(t *testing.T) {
	trainerRepo, planRepo, subRepo, historyRepo, auditRepo := assignDeps(t)

	trainerRepo.On("FindBySID", mock.Anything, "tr_abc").Return(testTrainer(t), nil)
	planRepo.On("FindBySID", mock.Anything, "plan_x").Return(testPlan(t, vo.PlanTypeLifetime), nil)
	subRepo.On("FindByTrainerID", mock.Anything, uint(10)).Return(subscription.NewUnsubscribed(10), nil)
	subRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	historyRepo.On("Create", mock.Anything, mock.MatchedBy(func(h *subscription.History) bool {
		return h.ChargedPrice() == 0 && h.Period() == vo.PeriodLifetime && h.DiscountPercent() == 0
	})).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewAssignPlanUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo,
		fakeTxManager{}, fakePermissions{allowed: true}, nopLogger{})

	// monthly with a discount requested; the lifetime plan overrides both
	result, err := uc.Execute(context.Background(), AssignPlanCommand{
		TrainerSID:      "tr_abc",
		PlanSID:         "plan_x",
		Period:          "monthly",
		DiscountPercent: 50,
		ActorID:         1,
	})

	require.NoError(t, err)
	assert.Equal(t, "lifetime", result.Status)
	assert.Nil(t, result.DueDate)
	historyRepo.AssertExpectations(t)
}

func TestAssignPlan_RetriesOnVersionConflict(t *testing.T) {
	trainerRepo, planRepo, subRepo, historyRepo, auditRepo := assignDeps(t)

	trainerRepo.On("FindBySID", mock.Anything, "tr_abc").Return(testTrainer(t), nil)
	planRepo.On("FindBySID", mock.Anything, "plan_x").Return(testPlan(t, vo.PlanTypePublic), nil)
	subRepo.On("FindByTrainerID", mock.Anything, uint(10)).
		Return(subscription.NewUnsubscribed(10), nil).Once()
	subRepo.On("Save", mock.Anything, mock.Anything).Return(subscription.ErrVersionConflict).Once()
	subRepo.On("FindByTrainerID", mock.Anything, uint(10)).
		Return(subscription.NewUnsubscribed(10), nil).Once()
	subRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewAssignPlanUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo,
		fakeTxManager{}, fakePermissions{allowed: true}, nopLogger{})

	_, err := uc.Execute(context.Background(), AssignPlanCommand{
		TrainerSID: "tr_abc",
		PlanSID:    "plan_x",
		Period:     "monthly",
		ActorID:    1,
	})

	require.NoError(t, err)
	subRepo.AssertNumberOfCalls(t, "Save", 2)
}
