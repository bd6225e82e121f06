package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/application/catalog/dto"
	"coachdesk/internal/domain/subscription"
	"coachdesk/internal/shared/logger"
	"coachdesk/internal/shared/services/markdown"
)

type GetPublicPlansUseCase struct {
	planRepo subscription.PlanRepository
	cache    PublicPlanCache
	markdown markdown.MarkdownService
	logger   logger.Interface
}

func NewGetPublicPlansUseCase(
	planRepo subscription.PlanRepository,
	cache PublicPlanCache,
	markdownSvc markdown.MarkdownService,
	logger logger.Interface,
) *GetPublicPlansUseCase {
	return &GetPublicPlansUseCase{
		planRepo: planRepo,
		cache:    cache,
		markdown: markdownSvc,
		logger:   logger,
	}
}

// Execute returns the landing-page plan listing: active plans flagged as
// visible, ordered by display order, descriptions rendered from markdown to
// sanitized HTML. The result is cached; a cache failure degrades to a
// database read.
func (uc *GetPublicPlansUseCase) Execute(ctx context.Context) ([]*dto.PublicPlanDTO, error) {
	if cached, err := uc.cache.GetPublicPlans(ctx); err != nil {
		uc.logger.Warnw("public plan cache read failed", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	plans, err := uc.planRepo.ListPublicVisible(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load public plans", "error", err)
		return nil, fmt.Errorf("failed to load public plans: %w", err)
	}

	result := make([]*dto.PublicPlanDTO, 0, len(plans))
	for _, plan := range plans {
		html, err := uc.markdown.ToHTMLSanitized(plan.Description())
		if err != nil {
			uc.logger.Warnw("failed to render plan description", "error", err, "plan_sid", plan.SID())
			html = ""
		}

		result = append(result, &dto.PublicPlanDTO{
			SID:             plan.SID(),
			Name:            plan.Name(),
			DescriptionHTML: html,
			MonthlyPrice:    plan.MonthlyPrice(),
			AnnualPrice:     plan.AnnualPrice(),
			MaxStudents:     plan.MaxStudents(),
			Unlimited:       plan.IsUnlimited(),
			Features:        plan.Features(),
			DisplayOrder:    plan.DisplayOrder(),
		})
	}

	if err := uc.cache.SetPublicPlans(ctx, result); err != nil {
		uc.logger.Warnw("public plan cache write failed", "error", err)
	}

	return result, nil
}
