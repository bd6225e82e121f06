package usecases

import (
	"context"
	"fmt"
	"time"

	"coachdesk/internal/domain/audit"
	"coachdesk/internal/shared/logger"
)

type ListAuditLogQuery struct {
	ActorID    *uint
	Action     string
	EntityType string
	EntityID   string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

type AuditEntryDTO struct {
	ID         uint           `json:"id"`
	ActorID    *uint          `json:"actor_id,omitempty"`
	ActorEmail string         `json:"actor_email"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type AuditLogDTO struct {
	Entries  []*AuditEntryDTO `json:"entries"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type ListAuditLogUseCase struct {
	auditRepo audit.Repository
	logger    logger.Interface
}

func NewListAuditLogUseCase(auditRepo audit.Repository, logger logger.Interface) *ListAuditLogUseCase {
	return &ListAuditLogUseCase{auditRepo: auditRepo, logger: logger}
}

func (uc *ListAuditLogUseCase) Execute(ctx context.Context, query ListAuditLogQuery) (*AuditLogDTO, error) {
	filter := audit.Filter{
		ActorID:  query.ActorID,
		From:     query.From,
		To:       query.To,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 50
	}
	if query.Action != "" {
		action := audit.Action(query.Action)
		filter.Action = &action
	}
	if query.EntityType != "" {
		filter.EntityType = &query.EntityType
	}
	if query.EntityID != "" {
		filter.EntityID = &query.EntityID
	}

	entries, total, err := uc.auditRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list audit log", "error", err)
		return nil, fmt.Errorf("failed to list audit log: %w", err)
	}

	dtos := make([]*AuditEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, &AuditEntryDTO{
			ID:         entry.ID(),
			ActorID:    entry.ActorID(),
			ActorEmail: entry.ActorEmail(),
			Action:     string(entry.Action()),
			EntityType: entry.EntityType(),
			EntityID:   entry.EntityID(),
			Metadata:   entry.Metadata(),
			CreatedAt:  entry.CreatedAt(),
		})
	}

	return &AuditLogDTO{
		Entries:  dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
