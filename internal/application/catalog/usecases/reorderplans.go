package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/audit"
	"coachdesk/internal/domain/subscription"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type ReorderPlansCommand struct {
	PlanSID string
	// NewOrder is the 1-based target position in the catalog.
	NewOrder   int
	ActorID    *uint
	ActorEmail string
}

type ReorderPlansUseCase struct {
	planRepo  subscription.PlanRepository
	auditRepo audit.Repository
	txManager TransactionManager
	planCache PlanCacheInvalidator
	logger    logger.Interface
}

func NewReorderPlansUseCase(
	planRepo subscription.PlanRepository,
	auditRepo audit.Repository,
	txManager TransactionManager,
	planCache PlanCacheInvalidator,
	logger logger.Interface,
) *ReorderPlansUseCase {
	return &ReorderPlansUseCase{
		planRepo:  planRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		planCache: planCache,
		logger:    logger,
	}
}

// Execute moves one plan to a new position and shifts the displaced
// neighbors. The whole catalog is renumbered 1..n inside one transaction so
// the ordering stays gap-free and deterministic; ties in stored order are
// broken by plan ID.
func (uc *ReorderPlansUseCase) Execute(ctx context.Context, cmd ReorderPlansCommand) error {
	if cmd.NewOrder < 1 {
		return apperrors.NewValidationError("new order must be at least 1")
	}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := uc.planRepo.FindBySID(txCtx, cmd.PlanSID)
		if err != nil {
			return err
		}

		catalog, err := uc.loadCatalog(txCtx)
		if err != nil {
			return err
		}

		remaining := make([]*subscription.Plan, 0, len(catalog)-1)
		for _, plan := range catalog {
			if plan.ID() != target.ID() {
				remaining = append(remaining, plan)
			}
		}

		position := cmd.NewOrder
		if position > len(remaining)+1 {
			position = len(remaining) + 1
		}

		reordered := make([]*subscription.Plan, 0, len(remaining)+1)
		reordered = append(reordered, remaining[:position-1]...)
		reordered = append(reordered, target)
		reordered = append(reordered, remaining[position-1:]...)

		orders := make(map[uint]int, len(reordered))
		for idx, plan := range reordered {
			if plan.DisplayOrder() != idx+1 {
				orders[plan.ID()] = idx + 1
			}
		}
		if len(orders) == 0 {
			return nil
		}

		if err := uc.planRepo.UpdateDisplayOrders(txCtx, orders); err != nil {
			return fmt.Errorf("failed to update display orders: %w", err)
		}

		entry, err := audit.NewEntry(cmd.ActorID, cmd.ActorEmail, audit.ActionPlanReordered,
			"plan", target.SID(), map[string]any{"new_order": position})
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		return uc.auditRepo.Create(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to reorder plan", "error", err, "sid", cmd.PlanSID)
		return err
	}

	if err := uc.planCache.InvalidatePublicPlans(ctx); err != nil {
		uc.logger.Warnw("failed to invalidate public plan cache", "error", err)
	}

	uc.logger.Infow("plan reordered", "sid", cmd.PlanSID, "new_order", cmd.NewOrder)
	return nil
}

// loadCatalog pages through every plan in stored display order.
func (uc *ReorderPlansUseCase) loadCatalog(ctx context.Context) ([]*subscription.Plan, error) {
	const pageSize = 200

	var catalog []*subscription.Plan
	for page := 1; ; page++ {
		plans, total, err := uc.planRepo.List(ctx, subscription.PlanFilter{Page: page, PageSize: pageSize})
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, plans...)
		if int64(len(catalog)) >= total || len(plans) == 0 {
			break
		}
	}
	return catalog, nil
}
