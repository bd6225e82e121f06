package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	vo "coachdesk/internal/domain/subscription/valueobjects"
	"coachdesk/internal/domain/trainer"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/db"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type TrainerRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewTrainerRepository(db *gorm.DB, logger logger.Interface) trainer.Repository {
	return &TrainerRepositoryImpl{db: db, logger: logger}
}

func (r *TrainerRepositoryImpl) Create(ctx context.Context, tr *trainer.Trainer) error {
	model := &models.TrainerModel{
		SID:       tr.SID(),
		Name:      tr.Name(),
		Email:     tr.Email(),
		Status:    string(tr.Status()),
		SubPeriod: vo.PeriodNone.String(),
		SubStatus: vo.StatusPending.String(),
		CreatedAt: tr.CreatedAt(),
		UpdatedAt: tr.UpdatedAt(),
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create trainer", "error", err, "email", tr.Email())
		return fmt.Errorf("failed to create trainer: %w", err)
	}

	return tr.SetID(model.ID)
}

func (r *TrainerRepositoryImpl) FindByID(ctx context.Context, id uint) (*trainer.Trainer, error) {
	var model models.TrainerModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("trainer not found").
				WithReason(apperrors.ReasonTrainerNotFound)
		}
		r.logger.Errorw("failed to get trainer", "error", err, "trainer_id", id)
		return nil, fmt.Errorf("failed to get trainer: %w", err)
	}
	return r.toEntity(&model)
}

func (r *TrainerRepositoryImpl) FindBySID(ctx context.Context, sid string) (*trainer.Trainer, error) {
	var model models.TrainerModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("trainer not found").
				WithReason(apperrors.ReasonTrainerNotFound)
		}
		r.logger.Errorw("failed to get trainer by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get trainer by SID: %w", err)
	}
	return r.toEntity(&model)
}

func (r *TrainerRepositoryImpl) FindByEmail(ctx context.Context, email string) (*trainer.Trainer, error) {
	var model models.TrainerModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("trainer not found").
				WithReason(apperrors.ReasonTrainerNotFound)
		}
		return nil, fmt.Errorf("failed to get trainer by email: %w", err)
	}
	return r.toEntity(&model)
}

func (r *TrainerRepositoryImpl) List(ctx context.Context, page, pageSize int) ([]*trainer.Trainer, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TrainerModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count trainers: %w", err)
	}

	var trainerModels []*models.TrainerModel
	err := query.Order("name ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&trainerModels).Error
	if err != nil {
		r.logger.Errorw("failed to list trainers", "error", err)
		return nil, 0, fmt.Errorf("failed to list trainers: %w", err)
	}

	trainers := make([]*trainer.Trainer, 0, len(trainerModels))
	for _, model := range trainerModels {
		tr, err := r.toEntity(model)
		if err != nil {
			return nil, 0, err
		}
		trainers = append(trainers, tr)
	}
	return trainers, total, nil
}

func (r *TrainerRepositoryImpl) toEntity(model *models.TrainerModel) (*trainer.Trainer, error) {
	return trainer.ReconstructTrainer(
		model.ID,
		model.SID,
		model.Name,
		model.Email,
		trainer.Status(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
}
