package usecases

import (
	"context"
	"errors"
	"fmt"

	"coachdesk/internal/application/catalog/dto"
	"coachdesk/internal/domain/audit"
	"coachdesk/internal/domain/subscription"
	vo "coachdesk/internal/domain/subscription/valueobjects"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type UpdatePlanCommand struct {
	PlanSID          string
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

type UpdatePlanUseCase struct {
	planRepo  subscription.PlanRepository
	subRepo   subscription.SubscriptionRepository
	auditRepo audit.Repository
	txManager TransactionManager
	planCache PlanCacheInvalidator
	logger    logger.Interface
}

func NewUpdatePlanUseCase(
	planRepo subscription.PlanRepository,
	subRepo subscription.SubscriptionRepository,
	auditRepo audit.Repository,
	txManager TransactionManager,
	planCache PlanCacheInvalidator,
	logger logger.Interface,
) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo:  planRepo,
		subRepo:   subRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		planCache: planCache,
		logger:    logger,
	}
}

// Execute updates a plan. Changing the plan type is allowed only while no
// trainer holds an access-granting subscription on it; the count is checked
// inside the same transaction that writes the plan, so a concurrent
// assignment cannot slip in between check and write.
func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*dto.PlanDTO, error) {
	planType, err := vo.NewPlanType(cmd.PlanType)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid plan type", err.Error())
	}

	var updated *subscription.Plan
	for attempt := 0; attempt < writeRetries; attempt++ {
		updated, err = uc.tryUpdate(ctx, cmd, planType)
		if err == nil {
			break
		}
		if !errors.Is(err, subscription.ErrVersionConflict) {
			uc.logger.Errorw("failed to update plan", "error", err, "plan_sid", cmd.PlanSID)
			return nil, err
		}
		uc.logger.Warnw("plan update conflicted, retrying", "plan_sid", cmd.PlanSID, "attempt", attempt+1)
	}
	if err != nil {
		return nil, apperrors.NewConflictError("plan was modified concurrently, try again").
			WithReason(apperrors.ReasonWriteConflict)
	}

	if err := uc.planCache.InvalidatePublicPlans(ctx); err != nil {
		uc.logger.Warnw("failed to invalidate public plan cache", "error", err)
	}

	uc.logger.Infow("plan updated", "plan_sid", updated.SID())
	return dto.ToPlanDTO(updated), nil
}

func (uc *UpdatePlanUseCase) tryUpdate(ctx context.Context, cmd UpdatePlanCommand, planType vo.PlanType) (*subscription.Plan, error) {
	var plan *subscription.Plan

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		plan, err = uc.planRepo.FindBySID(txCtx, cmd.PlanSID)
		if err != nil {
			return err
		}

		if plan.PlanType() != planType {
			count, err := uc.subRepo.CountActiveByPlanID(txCtx, plan.ID())
			if err != nil {
				return fmt.Errorf("failed to count plan trainers: %w", err)
			}
			if count > 0 {
				return apperrors.NewConflictError("plan type cannot change while trainers are subscribed").
					WithReason(apperrors.ReasonTypeChangeBlocked)
			}
		}

		if err := plan.Update(cmd.Name, cmd.Description, planType, cmd.MonthlyPrice,
			cmd.AnnualPrice, cmd.MaxStudents, cmd.Features, cmd.VisibleOnLanding); err != nil {
			return apperrors.NewValidationError("invalid plan", err.Error())
		}

		if err := uc.planRepo.Update(txCtx, plan); err != nil {
			return err
		}

		entry, err := audit.NewEntry(cmd.ActorID, cmd.ActorEmail, audit.ActionPlanUpdated,
			"plan", plan.SID(), map[string]any{"name": plan.Name()})
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		return uc.auditRepo.Create(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}
