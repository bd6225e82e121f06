package models

import (
	"time"

	"gorm.io/gorm"

	"coachdesk/internal/shared/constants"
)

// TrainerModel is the persistence model for trainer accounts. The current
// subscription is denormalized onto this row (Sub* columns); the
// subscription_history table keeps every past state.
type TrainerModel struct {
	ID     uint   `gorm:"primarykey"`
	SID    string `gorm:"uniqueIndex;not null;size:32"`
	Name   string `gorm:"not null;size:120"`
	Email  string `gorm:"uniqueIndex;not null;size:255"`
	Status string `gorm:"not null;size:20;default:active"`

	SubPlanID             *uint  `gorm:"index"`
	SubPeriod             string `gorm:"not null;size:20;default:none"`
	SubDiscountPercent    uint8  `gorm:"not null;default:0"`
	SubStartDate          time.Time
	SubDueDate            *time.Time `gorm:"index"`
	SubStatus             string     `gorm:"not null;size:20;default:pending;index"`
	SubCancellationReason *string    `gorm:"size:500"`
	SubVersion            int        `gorm:"not null;default:1"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (TrainerModel) TableName() string {
	return constants.TableTrainers
}
