package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/application/catalog/dto"
	"coachdesk/internal/domain/audit"
	"coachdesk/internal/domain/subscription"
	"coachdesk/internal/shared/logger"
)

type DuplicatePlanCommand struct {
	PlanSID    string
	ActorID    *uint
	ActorEmail string
}

type DuplicatePlanUseCase struct {
	planRepo  subscription.PlanRepository
	auditRepo audit.Repository
	txManager TransactionManager
	planCache PlanCacheInvalidator
	logger    logger.Interface
}

func NewDuplicatePlanUseCase(
	planRepo subscription.PlanRepository,
	auditRepo audit.Repository,
	txManager TransactionManager,
	planCache PlanCacheInvalidator,
	logger logger.Interface,
) *DuplicatePlanUseCase {
	return &DuplicatePlanUseCase{
		planRepo:  planRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		planCache: planCache,
		logger:    logger,
	}
}

// Execute copies a plan under a fresh SID, appended to the end of the
// catalog. The copy keeps the source's status and pricing; only the name
// gets a " (copy)" suffix.
func (uc *DuplicatePlanUseCase) Execute(ctx context.Context, cmd DuplicatePlanCommand) (*dto.PlanDTO, error) {
	var copyPlan *subscription.Plan

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		source, err := uc.planRepo.FindBySID(txCtx, cmd.PlanSID)
		if err != nil {
			return err
		}

		maxOrder, err := uc.planRepo.MaxDisplayOrder(txCtx)
		if err != nil {
			return fmt.Errorf("failed to get max display order: %w", err)
		}

		copyPlan = source.Duplicate(maxOrder + 1)
		if err := uc.planRepo.Create(txCtx, copyPlan); err != nil {
			return fmt.Errorf("failed to persist plan copy: %w", err)
		}

		entry, err := audit.NewEntry(cmd.ActorID, cmd.ActorEmail, audit.ActionPlanDuplicated,
			"plan", copyPlan.SID(), map[string]any{
				"source_plan_sid": source.SID(),
				"name":            copyPlan.Name(),
			})
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		return uc.auditRepo.Create(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to duplicate plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, err
	}

	if copyPlan.VisibleOnLanding() {
		if err := uc.planCache.InvalidatePublicPlans(ctx); err != nil {
			uc.logger.Warnw("failed to invalidate public plan cache", "error", err)
		}
	}

	uc.logger.Infow("plan duplicated", "source_plan_sid", cmd.PlanSID, "plan_sid", copyPlan.SID())
	return dto.ToPlanDTO(copyPlan), nil
}
