package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coachdesk/internal/domain/subscription"
	vo "coachdesk/internal/domain/subscription/valueobjects"
	apperrors "coachdesk/internal/shared/errors"
)

func activeSubscription(t *testing.T) *subscription.Subscription {
	t.Helper()
	planID := uint(1)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	due := start.AddDate(0, 1, 0)
	sub, err := subscription.ReconstructSubscription(10, &planID, vo.PeriodMonthly,
		0, start, &due, vo.StatusActive, nil, 1)
	require.NoError(t, err)
	return sub
}

func TestCancelSubscription_Deferred(t *testing.T) {
	trainerRepo, planRepo, subRepo, historyRepo, auditRepo := assignDeps(t)

	sub := activeSubscription(t)
	originalDue := *sub.DueDate()

	trainerRepo.On("FindBySID", mock.Anything, "tr_abc").Return(testTrainer(t), nil)
	subRepo.On("FindByTrainerID", mock.Anything, uint(10)).Return(sub, nil)
	planRepo.On("FindByID", mock.Anything, uint(1)).Return(testPlan(t, vo.PlanTypePublic), nil)
	subRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	historyRepo.On("Create", mock.Anything, mock.MatchedBy(func(h *subscription.History) bool {
		return h.ChangeType() == subscription.ChangeCanceled
	})).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewCancelSubscriptionUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo,
		fakeTxManager{}, fakePermissions{allowed: true}, nopLogger{})

	reason := "switching to a cheaper plan"
	result, err := uc.Execute(context.Background(), CancelSubscriptionCommand{
		TrainerSID: "tr_abc",
		Reason:     &reason,
		Immediate:  false,
		ActorID:    1,
		ActorEmail: "admin@coachdesk.app",
	})

	require.NoError(t, err)
	assert.Equal(t, "canceled", result.Status)
	// deferred cancellation keeps access until the paid-for due date
	require.NotNil(t, result.DueDate)
	assert.Equal(t, originalDue, *result.DueDate)
}

func TestCancelSubscription_Immediate(t *testing.T) {
	trainerRepo, planRepo, subRepo, historyRepo, auditRepo := assignDeps(t)

	sub := activeSubscription(t)

	trainerRepo.On("FindBySID", mock.Anything, "tr_abc").Return(testTrainer(t), nil)
	subRepo.On("FindByTrainerID", mock.Anything, uint(10)).Return(sub, nil)
	planRepo.On("FindByID", mock.Anything, uint(1)).Return(testPlan(t, vo.PlanTypePublic), nil)
	subRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewCancelSubscriptionUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo,
		fakeTxManager{}, fakePermissions{allowed: true}, nopLogger{})

	result, err := uc.Execute(context.Background(), CancelSubscriptionCommand{
		TrainerSID: "tr_abc",
		Immediate:  true,
		ActorID:    1,
	})

	require.NoError(t, err)
	assert.Equal(t, "canceled", result.Status)
	require.NotNil(t, result.DueDate)
	assert.True(t, result.DueDate.Before(time.Now().Add(24*time.Hour)))
}

func TestCancelSubscription_NothingToCancel(t *testing.T) {
	trainerRepo, planRepo, subRepo, historyRepo, auditRepo := assignDeps(t)

	trainerRepo.On("FindBySID", mock.Anything, "tr_abc").Return(testTrainer(t), nil)
	subRepo.On("FindByTrainerID", mock.Anything, uint(10)).Return(subscription.NewUnsubscribed(10), nil)

	uc := NewCancelSubscriptionUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo,
		fakeTxManager{}, fakePermissions{allowed: true}, nopLogger{})

	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{
		TrainerSID: "tr_abc",
		Immediate:  true,
		ActorID:    1,
	})

	require.Error(t, err)
	assert.True(t, apperrors.HasReason(err, apperrors.ReasonNoActiveSubscription))
	subRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCancelSubscription_Forbidden(t *testing.T) {
	trainerRepo, planRepo, subRepo, historyRepo, auditRepo := assignDeps(t)

	uc := NewCancelSubscriptionUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo,
		fakeTxManager{}, fakePermissions{allowed: false}, nopLogger{})

	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{
		TrainerSID: "tr_abc",
		ActorID:    2,
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
}
