package migration

import (
	"coachdesk/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.TrainerModel{},
		&models.PlanModel{},
		&models.SubscriptionHistoryModel{},
		&models.AuditLogModel{},
	}
}
