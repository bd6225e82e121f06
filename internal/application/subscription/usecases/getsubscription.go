package usecases

import (
	"context"

	"coachdesk/internal/application/subscription/dto"
	"coachdesk/internal/domain/subscription"
	"coachdesk/internal/domain/trainer"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type GetSubscriptionUseCase struct {
	trainerRepo trainer.Repository
	planRepo    subscription.PlanRepository
	subRepo     subscription.SubscriptionRepository
	logger      logger.Interface
}

func NewGetSubscriptionUseCase(
	trainerRepo trainer.Repository,
	planRepo subscription.PlanRepository,
	subRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		trainerRepo: trainerRepo,
		planRepo:    planRepo,
		subRepo:     subRepo,
		logger:      logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, trainerSID string) (*dto.SubscriptionDTO, error) {
	tr, err := uc.trainerRepo.FindBySID(ctx, trainerSID)
	if err != nil {
		return nil, err
	}

	sub, err := uc.subRepo.FindByTrainerID(ctx, tr.ID())
	if err != nil {
		return nil, err
	}

	var plan *subscription.Plan
	if sub.HasPlan() {
		plan, err = uc.planRepo.FindByID(ctx, *sub.PlanID())
		if err != nil {
			// a canceled subscription can outlive its deleted plan; the view
			// then shows status without plan details
			if apperrors.IsAppError(err) && apperrors.GetAppError(err).Type == apperrors.ErrorTypeNotFound {
				plan = nil
			} else {
				return nil, err
			}
		}
	}

	return dto.ToSubscriptionDTO(tr.SID(), sub, plan), nil
}
