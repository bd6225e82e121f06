package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"coachdesk/internal/domain/subscription"
	vo "coachdesk/internal/domain/subscription/valueobjects"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/db"
	"coachdesk/internal/shared/logger"
)

type HistoryRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewHistoryRepository(db *gorm.DB, logger logger.Interface) subscription.HistoryRepository {
	return &HistoryRepositoryImpl{db: db, logger: logger}
}

func (r *HistoryRepositoryImpl) Create(ctx context.Context, entry *subscription.History) error {
	model := &models.SubscriptionHistoryModel{
		TrainerID:       entry.TrainerID(),
		PlanID:          entry.PlanID(),
		PlanName:        entry.PlanName(),
		ChangeType:      string(entry.ChangeType()),
		Period:          entry.Period().String(),
		DiscountPercent: entry.DiscountPercent(),
		ChargedPrice:    entry.ChargedPrice(),
		StartDate:       entry.StartDate(),
		DueDate:         entry.DueDate(),
		Reason:          entry.Reason(),
		ActorID:         entry.ActorID(),
		CreatedAt:       entry.CreatedAt(),
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to append subscription history", "error", err, "trainer_id", entry.TrainerID())
		return fmt.Errorf("failed to append subscription history: %w", err)
	}

	return entry.SetID(model.ID)
}

func (r *HistoryRepositoryImpl) ListByTrainerID(ctx context.Context, trainerID uint, page, pageSize int) ([]*subscription.History, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SubscriptionHistoryModel{}).Where("trainer_id = ?", trainerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count history: %w", err)
	}

	var historyModels []*models.SubscriptionHistoryModel
	err := query.Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&historyModels).Error
	if err != nil {
		r.logger.Errorw("failed to list subscription history", "error", err, "trainer_id", trainerID)
		return nil, 0, fmt.Errorf("failed to list subscription history: %w", err)
	}

	entries := make([]*subscription.History, 0, len(historyModels))
	for _, model := range historyModels {
		entries = append(entries, subscription.ReconstructHistory(
			model.ID,
			model.TrainerID,
			model.PlanID,
			model.PlanName,
			subscription.ChangeType(model.ChangeType),
			vo.BillingPeriod(model.Period),
			model.DiscountPercent,
			model.ChargedPrice,
			model.StartDate,
			model.DueDate,
			model.Reason,
			model.ActorID,
			model.CreatedAt,
		))
	}
	return entries, total, nil
}
