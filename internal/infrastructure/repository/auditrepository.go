package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"coachdesk/internal/domain/audit"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/db"
	"coachdesk/internal/shared/logger"
)

type AuditRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewAuditRepository(db *gorm.DB, logger logger.Interface) audit.Repository {
	return &AuditRepositoryImpl{db: db, logger: logger}
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, entry *audit.Entry) error {
	var metadata []byte
	if entry.Metadata() != nil {
		var err error
		metadata, err = json.Marshal(entry.Metadata())
		if err != nil {
			return fmt.Errorf("failed to marshal audit metadata: %w", err)
		}
	}

	model := &models.AuditLogModel{
		ActorID:    entry.ActorID(),
		ActorEmail: entry.ActorEmail(),
		Action:     string(entry.Action()),
		EntityType: entry.EntityType(),
		EntityID:   entry.EntityID(),
		Metadata:   metadata,
		CreatedAt:  entry.CreatedAt(),
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to append audit entry", "error", err, "action", entry.Action())
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return entry.SetID(model.ID)
}

func (r *AuditRepositoryImpl) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.AuditLogModel{})

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.Action != nil {
		query = query.Where("action = ?", string(*filter.Action))
	}
	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	var auditModels []*models.AuditLogModel
	err := query.Order("created_at DESC, id DESC").
		Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize).
		Find(&auditModels).Error
	if err != nil {
		r.logger.Errorw("failed to list audit entries", "error", err)
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*audit.Entry, 0, len(auditModels))
	for _, model := range auditModels {
		var metadata map[string]any
		if len(model.Metadata) > 0 {
			if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal audit metadata: %w", err)
			}
		}

		entries = append(entries, audit.ReconstructEntry(
			model.ID,
			model.ActorID,
			model.ActorEmail,
			audit.Action(model.Action),
			model.EntityType,
			model.EntityID,
			metadata,
			model.CreatedAt,
		))
	}
	return entries, total, nil
}
