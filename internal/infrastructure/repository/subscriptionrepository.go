package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"coachdesk/internal/domain/subscription"
	vo "coachdesk/internal/domain/subscription/valueobjects"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/db"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

// accessGrantingStatuses are the subscription statuses that count a trainer
// as "on" a plan for the in-use checks.
var accessGrantingStatuses = []string{
	vo.StatusActive.String(),
	vo.StatusTrial.String(),
	vo.StatusLifetime.String(),
}

// SubscriptionRepositoryImpl reads and writes the Sub* columns of the
// trainer row.
type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db, logger: logger}
}

func (r *SubscriptionRepositoryImpl) FindByTrainerID(ctx context.Context, trainerID uint) (*subscription.Subscription, error) {
	var model models.TrainerModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, trainerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("trainer not found").
				WithReason(apperrors.ReasonTrainerNotFound)
		}
		r.logger.Errorw("failed to load subscription", "error", err, "trainer_id", trainerID)
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	return subscription.ReconstructSubscription(
		model.ID,
		model.SubPlanID,
		vo.BillingPeriod(model.SubPeriod),
		model.SubDiscountPercent,
		model.SubStartDate,
		model.SubDueDate,
		vo.SubscriptionStatus(model.SubStatus),
		model.SubCancellationReason,
		model.SubVersion,
	)
}

// Save writes the subscription state guarded by its version: loaded at
// version N, mutated to N+1, and the row must still be at N.
func (r *SubscriptionRepositoryImpl) Save(ctx context.Context, sub *subscription.Subscription) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.TrainerModel{}).
		Where("id = ? AND sub_version = ?", sub.TrainerID(), sub.Version()-1).
		Updates(map[string]interface{}{
			"sub_plan_id":             sub.PlanID(),
			"sub_period":              sub.Period().String(),
			"sub_discount_percent":    sub.DiscountPercent(),
			"sub_start_date":          sub.StartDate(),
			"sub_due_date":            sub.DueDate(),
			"sub_status":              sub.Status().String(),
			"sub_cancellation_reason": sub.CancellationReason(),
			"sub_version":             sub.Version(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to save subscription", "error", result.Error, "trainer_id", sub.TrainerID())
		return fmt.Errorf("failed to save subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrVersionConflict
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) CountActiveByPlanID(ctx context.Context, planID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.TrainerModel{}).
		Where("sub_plan_id = ? AND sub_status IN ?", planID, accessGrantingStatuses).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count plan trainers", "error", err, "plan_id", planID)
		return 0, fmt.Errorf("failed to count plan trainers: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepositoryImpl) ListOverdueActive(ctx context.Context, now time.Time, limit int) ([]uint, error) {
	var trainerIDs []uint
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.TrainerModel{}).
		Where("sub_status = ? AND sub_due_date IS NOT NULL AND sub_due_date < ?",
			vo.StatusActive.String(), now).
		Order("sub_due_date ASC").
		Limit(limit).
		Pluck("id", &trainerIDs).Error
	if err != nil {
		r.logger.Errorw("failed to list overdue subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list overdue subscriptions: %w", err)
	}
	return trainerIDs, nil
}
