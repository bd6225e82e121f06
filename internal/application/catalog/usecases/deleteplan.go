package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/audit"
	"coachdesk/internal/domain/subscription"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type DeletePlanCommand struct {
	PlanSID    string
	ActorID    *uint
	ActorEmail string
}

type DeletePlanUseCase struct {
	planRepo  subscription.PlanRepository
	subRepo   subscription.SubscriptionRepository
	auditRepo audit.Repository
	txManager TransactionManager
	planCache PlanCacheInvalidator
	logger    logger.Interface
}

func NewDeletePlanUseCase(
	planRepo subscription.PlanRepository,
	subRepo subscription.SubscriptionRepository,
	auditRepo audit.Repository,
	txManager TransactionManager,
	planCache PlanCacheInvalidator,
	logger logger.Interface,
) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		planRepo:  planRepo,
		subRepo:   subRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		planCache: planCache,
		logger:    logger,
	}
}

// Execute deletes a plan that no trainer is subscribed to. The in-use count
// runs inside the delete transaction; history rows keep their own plan-name
// snapshot and survive the delete.
func (uc *DeletePlanUseCase) Execute(ctx context.Context, cmd DeletePlanCommand) error {
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		plan, err := uc.planRepo.FindBySID(txCtx, cmd.PlanSID)
		if err != nil {
			return err
		}

		count, err := uc.subRepo.CountActiveByPlanID(txCtx, plan.ID())
		if err != nil {
			return fmt.Errorf("failed to count plan trainers: %w", err)
		}
		if count > 0 {
			return apperrors.NewConflictError(
				fmt.Sprintf("plan has %d subscribed trainers and cannot be deleted", count)).
				WithReason(apperrors.ReasonPlanInUse)
		}

		if err := uc.planRepo.Delete(txCtx, plan.ID()); err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}

		entry, err := audit.NewEntry(cmd.ActorID, cmd.ActorEmail, audit.ActionPlanDeleted,
			"plan", plan.SID(), map[string]any{"name": plan.Name()})
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		return uc.auditRepo.Create(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete plan", "error", err, "plan_sid", cmd.PlanSID)
		return err
	}

	if err := uc.planCache.InvalidatePublicPlans(ctx); err != nil {
		uc.logger.Warnw("failed to invalidate public plan cache", "error", err)
	}

	uc.logger.Infow("plan deleted", "plan_sid", cmd.PlanSID)
	return nil
}
