package usecases

import (
	"context"
	"errors"
	"fmt"

	"coachdesk/internal/application/subscription/dto"
	"coachdesk/internal/domain/audit"
	"coachdesk/internal/domain/subscription"
	"coachdesk/internal/domain/trainer"
	"coachdesk/internal/shared/biztime"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	TrainerSID string
	Reason     *string
	// Immediate ends access today; otherwise access runs until the due date.
	Immediate  bool
	ActorID    uint
	ActorEmail string
}

type CancelSubscriptionUseCase struct {
	trainerRepo trainer.Repository
	planRepo    subscription.PlanRepository
	subRepo     subscription.SubscriptionRepository
	historyRepo subscription.HistoryRepository
	auditRepo   audit.Repository
	txManager   TransactionManager
	permissions PermissionChecker
	logger      logger.Interface
}

func NewCancelSubscriptionUseCase(
	trainerRepo trainer.Repository,
	planRepo subscription.PlanRepository,
	subRepo subscription.SubscriptionRepository,
	historyRepo subscription.HistoryRepository,
	auditRepo audit.Repository,
	txManager TransactionManager,
	permissions PermissionChecker,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
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

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	allowed, err := uc.permissions.CanManageSubscriptions(ctx, cmd.ActorID)
	if err != nil {
		uc.logger.Errorw("permission check failed", "error", err, "actor_id", cmd.ActorID)
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !allowed {
		return nil, apperrors.NewForbiddenError("not allowed to manage subscriptions")
	}

	var result *dto.SubscriptionDTO
	for attempt := 0; attempt < writeRetries; attempt++ {
		result, err = uc.tryCancel(ctx, cmd)
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
		uc.logger.Errorw("failed to cancel subscription", "error", err, "trainer_sid", cmd.TrainerSID)
		return nil, err
	}

	uc.logger.Infow("subscription canceled",
		"trainer_sid", cmd.TrainerSID, "immediate", cmd.Immediate)
	return result, nil
}

func (uc *CancelSubscriptionUseCase) tryCancel(ctx context.Context, cmd CancelSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	var result *dto.SubscriptionDTO

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		tr, err := uc.trainerRepo.FindBySID(txCtx, cmd.TrainerSID)
		if err != nil {
			return err
		}
		sub, err := uc.subRepo.FindByTrainerID(txCtx, tr.ID())
		if err != nil {
			return err
		}

		if err := sub.Cancel(cmd.Reason, cmd.Immediate, biztime.Today()); err != nil {
			if errors.Is(err, subscription.ErrNoActiveSubscription) {
				return apperrors.NewConflictError("trainer has no active subscription to cancel").
					WithReason(apperrors.ReasonNoActiveSubscription)
			}
			return err
		}

		// the plan may have been deleted after an earlier cancellation;
		// Cancel already rejected that state, so a plan must exist here
		plan, err := uc.planRepo.FindByID(txCtx, *sub.PlanID())
		if err != nil {
			return err
		}

		if err := uc.subRepo.Save(txCtx, sub); err != nil {
			return err
		}

		entry, err := subscription.NewHistory(tr.ID(), plan.ID(), plan.Name(),
			subscription.ChangeCanceled, sub.Period(), sub.DiscountPercent(),
			0, sub.StartDate(), sub.DueDate(), cmd.Reason, &cmd.ActorID)
		if err != nil {
			return fmt.Errorf("failed to build history entry: %w", err)
		}
		if err := uc.historyRepo.Create(txCtx, entry); err != nil {
			return fmt.Errorf("failed to append history: %w", err)
		}

		auditEntry, err := audit.NewEntry(&cmd.ActorID, cmd.ActorEmail,
			audit.ActionSubscriptionCanceled, "subscription", tr.SID(), map[string]any{
				"plan_sid":  plan.SID(),
				"plan_name": plan.Name(),
				"immediate": cmd.Immediate,
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
