package usecases

import (
	"context"

	"coachdesk/internal/application/catalog/dto"
	"coachdesk/internal/domain/subscription"
	"coachdesk/internal/shared/logger"
)

type GetPlanUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewGetPlanUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{planRepo: planRepo, logger: logger}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, planSID string) (*dto.PlanDTO, error) {
	plan, err := uc.planRepo.FindBySID(ctx, planSID)
	if err != nil {
		return nil, err
	}
	return dto.ToPlanDTO(plan), nil
}
