package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coachdesk/internal/application/subscription/dto"
	"coachdesk/internal/domain/audit"
	"coachdesk/internal/domain/subscription"
	vo "coachdesk/internal/domain/subscription/valueobjects"
	"coachdesk/internal/domain/trainer"
	"coachdesk/internal/shared/biztime"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type AssignPlanCommand struct {
	TrainerSID      string
	PlanSID         string
	Period          string
	DiscountPercent uint8
	// StartDate defaults to the start of the current business day.
	StartDate  *time.Time
	ActorID    uint
	ActorEmail string
}

type AssignPlanUseCase struct {
	trainerRepo trainer.Repository
	planRepo    subscription.PlanRepository
	subRepo     subscription.SubscriptionRepository
	historyRepo subscription.HistoryRepository
	auditRepo   audit.Repository
	txManager   TransactionManager
	permissions PermissionChecker
	logger      logger.Interface
}

func NewAssignPlanUseCase(
	trainerRepo trainer.Repository,
	planRepo subscription.PlanRepository,
	subRepo subscription.SubscriptionRepository,
	historyRepo subscription.HistoryRepository,
	auditRepo audit.Repository,
	txManager TransactionManager,
	permissions PermissionChecker,
	logger logger.Interface,
) *AssignPlanUseCase {
	return &AssignPlanUseCase{
		trainerRepo: trainerRepo,
		planRepo:    planRepo,
		subRepo:     subRepo,
		historyRepo: historyRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		permissions: permissions,
		logger:      logger,
	}
}

// Execute puts a trainer on a plan. One transaction writes the current
// subscription, appends the history entry with the plan name and final
// price snapshotted, and records the audit row. A concurrent write to the
// same trainer surfaces as a version conflict and the whole thing is
// reloaded and retried.
func (uc *AssignPlanUseCase) Execute(ctx context.Context, cmd AssignPlanCommand) (*dto.SubscriptionDTO, error) {
	allowed, err := uc.permissions.CanManageSubscriptions(ctx, cmd.ActorID)
	if err != nil {
		uc.logger.Errorw("permission check failed", "error", err, "actor_id", cmd.ActorID)
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !allowed {
		return nil, apperrors.NewForbiddenError("not allowed to manage subscriptions")
	}

	period, err := vo.ParseBillingPeriod(cmd.Period)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid billing period", err.Error())
	}

	var result *dto.SubscriptionDTO
	for attempt := 0; attempt < writeRetries; attempt++ {
		result, err = uc.tryAssign(ctx, cmd, period)
		if err == nil || !errors.Is(err, subscription.ErrVersionConflict) {
			break
		}
		uc.logger.Warnw("subscription write conflicted, retrying",
			"trainer_sid", cmd.TrainerSID, "attempt", attempt+1)
	}
	if errors.Is(err, subscription.ErrVersionConflict) {
		return nil, apperrors.NewConflictError("subscription was modified concurrently, try again").
			WithReason(apperrors.ReasonWriteConflict)
	}
	if err != nil {
		uc.logger.Errorw("failed to assign plan", "error", err,
			"trainer_sid", cmd.TrainerSID, "plan_sid", cmd.PlanSID)
		return nil, err
	}

	uc.logger.Infow("plan assigned",
		"trainer_sid", cmd.TrainerSID, "plan_sid", cmd.PlanSID, "period", period.String())
	return result, nil
}

func (uc *AssignPlanUseCase) tryAssign(ctx context.Context, cmd AssignPlanCommand, period vo.BillingPeriod) (*dto.SubscriptionDTO, error) {
	var result *dto.SubscriptionDTO

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		tr, err := uc.trainerRepo.FindBySID(txCtx, cmd.TrainerSID)
		if err != nil {
			return err
		}
		plan, err := uc.planRepo.FindBySID(txCtx, cmd.PlanSID)
		if err != nil {
			return err
		}
		sub, err := uc.subRepo.FindByTrainerID(txCtx, tr.ID())
		if err != nil {
			return err
		}

		startDate := biztime.Today()
		if cmd.StartDate != nil {
			startDate = *cmd.StartDate
		}

		if err := sub.Assign(plan, period, cmd.DiscountPercent, startDate); err != nil {
			return mapAssignError(err)
		}

		// price after Assign: lifetime plans force their own period and
		// discount, and the snapshot must match what was actually applied
		basePrice, err := subscription.SelectBasePrice(plan, sub.Period())
		if err != nil {
			return mapAssignError(err)
		}
		finalPrice, err := subscription.ComputeFinalPrice(basePrice, sub.DiscountPercent())
		if err != nil {
			return mapAssignError(err)
		}

		if err := uc.subRepo.Save(txCtx, sub); err != nil {
			return err
		}

		entry, err := subscription.NewHistory(tr.ID(), plan.ID(), plan.Name(),
			subscription.ChangeAssigned, sub.Period(), sub.DiscountPercent(),
			finalPrice, sub.StartDate(), sub.DueDate(), nil, &cmd.ActorID)
		if err != nil {
			return fmt.Errorf("failed to build history entry: %w", err)
		}
		if err := uc.historyRepo.Create(txCtx, entry); err != nil {
			return fmt.Errorf("failed to append history: %w", err)
		}

		auditEntry, err := audit.NewEntry(&cmd.ActorID, cmd.ActorEmail,
			audit.ActionSubscriptionAssigned, "subscription", tr.SID(), map[string]any{
				"plan_sid":         plan.SID(),
				"plan_name":        plan.Name(),
				"period":           sub.Period().String(),
				"discount_percent": sub.DiscountPercent(),
				"final_price":      finalPrice,
			})
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		if err := uc.auditRepo.Create(txCtx, auditEntry); err != nil {
			return err
		}

		result = dto.ToSubscriptionDTO(tr.SID(), sub, plan)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// mapAssignError translates domain rule failures into API errors with their
// machine-readable reason codes.
func mapAssignError(err error) error {
	switch {
	case errors.Is(err, subscription.ErrPlanInactive):
		return apperrors.NewConflictError("plan is not active").
			WithReason(apperrors.ReasonPlanInactive)
	case errors.Is(err, subscription.ErrPeriodInvalidForPlanType):
		return apperrors.NewValidationError("billing period is not valid for this plan").
			WithReason(apperrors.ReasonPeriodInvalidForPlanType)
	case errors.Is(err, subscription.ErrDiscountOutOfRange):
		return apperrors.NewValidationError("discount percent must be between 0 and 100")
	default:
		return apperrors.NewValidationError("invalid assignment", err.Error())
	}
}
