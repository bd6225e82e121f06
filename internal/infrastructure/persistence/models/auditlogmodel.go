package models

import (
	"time"

	"gorm.io/datatypes"

	"coachdesk/internal/shared/constants"
)

// AuditLogModel is the append-only audit trail of administrative actions.
type AuditLogModel struct {
	ID         uint `gorm:"primarykey"`
	ActorID    *uint
	ActorEmail string `gorm:"not null;size:255"`
	Action     string `gorm:"not null;size:50;index"`
	EntityType string `gorm:"not null;size:30;index:idx_audit_entity"`
	EntityID   string `gorm:"not null;size:64;index:idx_audit_entity"`
	Metadata   datatypes.JSON
	CreatedAt  time.Time `gorm:"index"`
}

func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}
