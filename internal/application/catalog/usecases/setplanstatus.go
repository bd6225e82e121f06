package usecases

import (
	"context"
	"errors"
	"fmt"

	"coachdesk/internal/application/catalog/dto"
	"coachdesk/internal/domain/audit"
	"coachdesk/internal/domain/subscription"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type SetPlanStatusCommand struct {
	PlanSID    string
	Status     string
	ActorID    *uint
	ActorEmail string
}

type SetPlanStatusUseCase struct {
	planRepo  subscription.PlanRepository
	auditRepo audit.Repository
	txManager TransactionManager
	planCache PlanCacheInvalidator
	logger    logger.Interface
}

func NewSetPlanStatusUseCase(
	planRepo subscription.PlanRepository,
	auditRepo audit.Repository,
	txManager TransactionManager,
	planCache PlanCacheInvalidator,
	logger logger.Interface,
) *SetPlanStatusUseCase {
	return &SetPlanStatusUseCase{
		planRepo:  planRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		planCache: planCache,
		logger:    logger,
	}
}

// Execute activates or deactivates a plan. Deactivation stops new
// assignments only; trainers already on the plan keep their subscription.
func (uc *SetPlanStatusUseCase) Execute(ctx context.Context, cmd SetPlanStatusCommand) (*dto.PlanDTO, error) {
	status := subscription.PlanStatus(cmd.Status)
	if status != subscription.PlanStatusActive && status != subscription.PlanStatusInactive {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid plan status: %s", cmd.Status))
	}

	var plan *subscription.Plan
	var err error
	for attempt := 0; attempt < writeRetries; attempt++ {
		plan, err = uc.trySetStatus(ctx, cmd, status)
		if err == nil || !errors.Is(err, subscription.ErrVersionConflict) {
			break
		}
		uc.logger.Warnw("plan status update conflicted, retrying", "plan_sid", cmd.PlanSID, "attempt", attempt+1)
	}
	if errors.Is(err, subscription.ErrVersionConflict) {
		return nil, apperrors.NewConflictError("plan was modified concurrently, try again").
			WithReason(apperrors.ReasonWriteConflict)
	}
	if err != nil {
		uc.logger.Errorw("failed to set plan status", "error", err, "plan_sid", cmd.PlanSID)
		return nil, err
	}

	if err := uc.planCache.InvalidatePublicPlans(ctx); err != nil {
		uc.logger.Warnw("failed to invalidate public plan cache", "error", err)
	}

	uc.logger.Infow("plan status changed", "plan_sid", plan.SID(), "status", cmd.Status)
	return dto.ToPlanDTO(plan), nil
}

func (uc *SetPlanStatusUseCase) trySetStatus(ctx context.Context, cmd SetPlanStatusCommand, status subscription.PlanStatus) (*subscription.Plan, error) {
	var plan *subscription.Plan

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		plan, err = uc.planRepo.FindBySID(txCtx, cmd.PlanSID)
		if err != nil {
			return err
		}

		previous := plan.Status()
		if status == subscription.PlanStatusActive {
			plan.Activate()
		} else {
			plan.Deactivate()
		}
		if plan.Status() == previous {
			// already in the requested state, nothing to write
			return nil
		}

		if err := uc.planRepo.Update(txCtx, plan); err != nil {
			return err
		}

		entry, err := audit.NewEntry(cmd.ActorID, cmd.ActorEmail, audit.ActionPlanStatusChanged,
			"plan", plan.SID(), map[string]any{
				"from": string(previous),
				"to":   string(plan.Status()),
			})
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
