package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"coachdesk/internal/shared/constants"
)

// PlanModel is the persistence model for catalog plans. Prices are stored
// in the currency's minor unit.
type PlanModel struct {
	ID               uint   `gorm:"primarykey"`
	SID              string `gorm:"uniqueIndex;not null;size:32"`
	Name             string `gorm:"not null;size:100"`
	Description      string `gorm:"type:text"`
	PlanType         string `gorm:"not null;size:20;default:public"`
	MonthlyPrice     uint64 `gorm:"not null;default:0"`
	AnnualPrice      *uint64
	MaxStudents      uint `gorm:"not null;default:0"`
	Features         datatypes.JSON
	Status           string `gorm:"not null;size:20;default:active;index"`
	VisibleOnLanding bool   `gorm:"not null;default:false"`
	DisplayOrder     int    `gorm:"not null;default:0"`
	Version          int    `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (PlanModel) TableName() string {
	return constants.TablePlans
}
