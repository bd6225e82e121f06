package permission

import (
	"fmt"

	"coachdesk/internal/shared/logger"
)

// InitDefaultPolicies seeds the baseline RBAC policies. AddPolicy is
// idempotent under casbin, so reruns are safe.
func (e *Enforcer) InitDefaultPolicies(log logger.Interface) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	policies := [][]string{
		{"admin", "subscription", "manage"},
		{"admin", "plan", "manage"},
		{"admin", "audit", "read"},
	}

	for _, policy := range policies {
		if _, err := e.enforcer.AddPolicy(policy); err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	if err := e.enforcer.SavePolicy(); err != nil {
		log.Error("failed to save default permissions", "error", err)
		return fmt.Errorf("failed to save default permissions: %w", err)
	}

	log.Info("default permissions initialized")
	return nil
}
