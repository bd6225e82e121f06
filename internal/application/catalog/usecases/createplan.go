package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/application/catalog/dto"
	"coachdesk/internal/domain/audit"
	"coachdesk/internal/domain/subscription"
	vo "coachdesk/internal/domain/subscription/valueobjects"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type CreatePlanCommand struct {
	Name             string
	Description      string
	PlanType         string
	MonthlyPrice     uint64
	AnnualPrice      *uint64
	MaxStudents      uint
	Features         []string
	VisibleOnLanding bool
	ActorID          *uint
	ActorEmail       string
}

type CreatePlanUseCase struct {
	planRepo  subscription.PlanRepository
	auditRepo audit.Repository
	txManager TransactionManager
	planCache PlanCacheInvalidator
	logger    logger.Interface
}

func NewCreatePlanUseCase(
	planRepo subscription.PlanRepository,
	auditRepo audit.Repository,
	txManager TransactionManager,
	planCache PlanCacheInvalidator,
	logger logger.Interface,
) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo:  planRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		planCache: planCache,
		logger:    logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*dto.PlanDTO, error) {
	planType, err := vo.NewPlanType(cmd.PlanType)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid plan type", err.Error())
	}

	var plan *subscription.Plan
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		maxOrder, err := uc.planRepo.MaxDisplayOrder(txCtx)
		if err != nil {
			return fmt.Errorf("failed to get max display order: %w", err)
		}

		plan, err = subscription.NewPlan(cmd.Name, cmd.Description, planType,
			cmd.MonthlyPrice, cmd.AnnualPrice, cmd.MaxStudents, cmd.Features,
			cmd.VisibleOnLanding, maxOrder+1)
		if err != nil {
			return apperrors.NewValidationError("invalid plan", err.Error())
		}

		if err := uc.planRepo.Create(txCtx, plan); err != nil {
			return fmt.Errorf("failed to persist plan: %w", err)
		}

		entry, err := audit.NewEntry(cmd.ActorID, cmd.ActorEmail, audit.ActionPlanCreated,
			"plan", plan.SID(), map[string]any{
				"name":      plan.Name(),
				"plan_type": plan.PlanType().String(),
			})
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		return uc.auditRepo.Create(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to create plan", "error", err, "name", cmd.Name)
		return nil, err
	}

	if plan.VisibleOnLanding() {
		if err := uc.planCache.InvalidatePublicPlans(ctx); err != nil {
			uc.logger.Warnw("failed to invalidate public plan cache", "error", err)
		}
	}

	uc.logger.Infow("plan created", "plan_sid", plan.SID(), "name", plan.Name())
	return dto.ToPlanDTO(plan), nil
}
