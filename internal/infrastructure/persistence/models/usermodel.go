package models

import (
	"time"

	"gorm.io/gorm"

	"coachdesk/internal/shared/constants"
)

// UserModel is the persistence model for staff accounts.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"uniqueIndex;not null;size:32"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Name         string `gorm:"not null;size:120"`
	PasswordHash string `gorm:"not null;size:255"`
	Role         string `gorm:"not null;size:20;default:admin"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
