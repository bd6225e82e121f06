// Package constants holds shared database and domain constants.
package constants

// Environments.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Table names.
const (
	TablePlans               = "plans"
	TableTrainers            = "trainers"
	TableSubscriptionHistory = "subscription_history"
	TableAuditLogs           = "audit_logs"
	TableUsers               = "users"
)

// DefaultCurrency is the only currency the platform bills in. Prices are
// stored in its minor unit (centavos).
const DefaultCurrency = "BRL"
