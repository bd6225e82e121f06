package usecases

import (
	"context"
	"errors"
	"fmt"

	"coachdesk/internal/domain/audit"
	"coachdesk/internal/domain/subscription"
	"coachdesk/internal/domain/trainer"
	"coachdesk/internal/shared/biztime"
	"coachdesk/internal/shared/logger"
)

// sweepBatchSize caps how many overdue subscriptions one sweep run handles.
const sweepBatchSize = 500

// MarkPastDueUseCase is the background sweep: every active subscription past
// its due date flips to past_due. Each trainer is handled in its own
// transaction so one poisoned row cannot block the rest of the batch.
type MarkPastDueUseCase struct {
	trainerRepo trainer.Repository
	planRepo    subscription.PlanRepository
	subRepo     subscription.SubscriptionRepository
	historyRepo subscription.HistoryRepository
	auditRepo   audit.Repository
	txManager   TransactionManager
	notifier    PastDueNotifier
	logger      logger.Interface
}

func NewMarkPastDueUseCase(
	trainerRepo trainer.Repository,
	planRepo subscription.PlanRepository,
	subRepo subscription.SubscriptionRepository,
	historyRepo subscription.HistoryRepository,
	auditRepo audit.Repository,
	txManager TransactionManager,
	notifier PastDueNotifier,
	logger logger.Interface,
) *MarkPastDueUseCase {
	return &MarkPastDueUseCase{
		trainerRepo: trainerRepo,
		planRepo:    planRepo,
		subRepo:     subRepo,
		historyRepo: historyRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
	}
}

// Execute runs one sweep and returns how many subscriptions were marked.
func (uc *MarkPastDueUseCase) Execute(ctx context.Context) (int, error) {
	now := biztime.NowUTC()

	trainerIDs, err := uc.subRepo.ListOverdueActive(ctx, now, sweepBatchSize)
	if err != nil {
		uc.logger.Errorw("failed to list overdue subscriptions", "error", err)
		return 0, fmt.Errorf("failed to list overdue subscriptions: %w", err)
	}
	if len(trainerIDs) == 0 {
		return 0, nil
	}

	marked := 0
	for _, trainerID := range trainerIDs {
		if err := uc.markOne(ctx, trainerID); err != nil {
			// skip rows that changed since listing: a payment or cancellation
			// between the list and the write is not an error
			if errors.Is(err, subscription.ErrNotPastDue) ||
				errors.Is(err, subscription.ErrVersionConflict) {
				continue
			}
			uc.logger.Errorw("failed to mark subscription past due",
				"error", err, "trainer_id", trainerID)
			continue
		}
		marked++
	}

	uc.logger.Infow("past-due sweep finished", "overdue", len(trainerIDs), "marked", marked)
	return marked, nil
}

func (uc *MarkPastDueUseCase) markOne(ctx context.Context, trainerID uint) error {
	var (
		tr   *trainer.Trainer
		plan *subscription.Plan
		sub  *subscription.Subscription
	)

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		tr, err = uc.trainerRepo.FindByID(txCtx, trainerID)
		if err != nil {
			return err
		}
		sub, err = uc.subRepo.FindByTrainerID(txCtx, trainerID)
		if err != nil {
			return err
		}

		if err := sub.MarkPastDue(biztime.NowUTC()); err != nil {
			return err
		}

		plan, err = uc.planRepo.FindByID(txCtx, *sub.PlanID())
		if err != nil {
			return err
		}

		if err := uc.subRepo.Save(txCtx, sub); err != nil {
			return err
		}

		entry, err := subscription.NewHistory(tr.ID(), plan.ID(), plan.Name(),
			subscription.ChangePastDue, sub.Period(), sub.DiscountPercent(),
			0, sub.StartDate(), sub.DueDate(), nil, nil)
		if err != nil {
			return fmt.Errorf("failed to build history entry: %w", err)
		}
		if err := uc.historyRepo.Create(txCtx, entry); err != nil {
			return fmt.Errorf("failed to append history: %w", err)
		}

		auditEntry, err := audit.NewEntry(nil, "", audit.ActionSubscriptionPastDue,
			"subscription", tr.SID(), map[string]any{
				"plan_sid": plan.SID(),
				"due_date": sub.DueDate(),
			})
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		return uc.auditRepo.Create(txCtx, auditEntry)
	})
	if err != nil {
		return err
	}

	if uc.notifier != nil && sub.DueDate() != nil {
		if err := uc.notifier.NotifyPastDue(ctx, tr.Email(), tr.Name(), plan.Name(), *sub.DueDate()); err != nil {
			uc.logger.Warnw("failed to send past-due notification",
				"error", err, "trainer_id", trainerID)
		}
	}

	return nil
}
