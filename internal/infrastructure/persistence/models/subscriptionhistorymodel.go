package models

import (
	"time"

	"coachdesk/internal/shared/constants"
)

// SubscriptionHistoryModel is the append-only subscription timeline. Rows
// are never updated or deleted; plan name and charged price are snapshots
// taken when the event happened.
type SubscriptionHistoryModel struct {
	ID              uint   `gorm:"primarykey"`
	TrainerID       uint   `gorm:"not null;index"`
	PlanID          uint   `gorm:"not null"`
	PlanName        string `gorm:"not null;size:100"`
	ChangeType      string `gorm:"not null;size:20"`
	Period          string `gorm:"not null;size:20"`
	DiscountPercent uint8  `gorm:"not null;default:0"`
	ChargedPrice    uint64 `gorm:"not null;default:0"`
	StartDate       time.Time
	DueDate         *time.Time
	Reason          *string `gorm:"size:500"`
	ActorID         *uint
	CreatedAt       time.Time `gorm:"index"`
}

func (SubscriptionHistoryModel) TableName() string {
	return constants.TableSubscriptionHistory
}
