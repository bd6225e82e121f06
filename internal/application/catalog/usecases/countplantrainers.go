package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/subscription"
	"coachdesk/internal/shared/logger"
)

type PlanTrainerCount struct {
	PlanSID string `json:"plan_sid"`
	Count   int64  `json:"count"`
}

// CountPlanTrainersUseCase reports how many trainers currently hold an
// access-granting subscription on a plan. The admin UI shows it next to
// the delete button; the authoritative check still runs inside the delete
// transaction.
type CountPlanTrainersUseCase struct {
	planRepo subscription.PlanRepository
	subRepo  subscription.SubscriptionRepository
	logger   logger.Interface
}

func NewCountPlanTrainersUseCase(
	planRepo subscription.PlanRepository,
	subRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *CountPlanTrainersUseCase {
	return &CountPlanTrainersUseCase{planRepo: planRepo, subRepo: subRepo, logger: logger}
}

func (uc *CountPlanTrainersUseCase) Execute(ctx context.Context, planSID string) (*PlanTrainerCount, error) {
	plan, err := uc.planRepo.FindBySID(ctx, planSID)
	if err != nil {
		return nil, err
	}

	count, err := uc.subRepo.CountActiveByPlanID(ctx, plan.ID())
	if err != nil {
		uc.logger.Errorw("failed to count plan trainers", "error", err, "plan_sid", planSID)
		return nil, fmt.Errorf("failed to count plan trainers: %w", err)
	}

	return &PlanTrainerCount{PlanSID: plan.SID(), Count: count}, nil
}
