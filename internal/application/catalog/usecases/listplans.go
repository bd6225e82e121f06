package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/application/catalog/dto"
	"coachdesk/internal/domain/subscription"
	vo "coachdesk/internal/domain/subscription/valueobjects"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type ListPlansQuery struct {
	Status   string
	PlanType string
	Page     int
	PageSize int
}

type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo, logger: logger}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, query ListPlansQuery) (*dto.PlanListDTO, error) {
	filter := subscription.PlanFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	if query.Status != "" {
		status := subscription.PlanStatus(query.Status)
		if status != subscription.PlanStatusActive && status != subscription.PlanStatusInactive {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid plan status: %s", query.Status))
		}
		filter.Status = &status
	}

	if query.PlanType != "" {
		planType, err := vo.NewPlanType(query.PlanType)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid plan type", err.Error())
		}
		filter.PlanType = &planType
	}

	plans, total, err := uc.planRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return &dto.PlanListDTO{
		Plans:    dto.ToPlanDTOList(plans),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
