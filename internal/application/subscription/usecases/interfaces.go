package usecases

import (
	"context"
	"time"
)

// TransactionManager runs a function inside one database transaction. The
// subscription write, the history append, and the audit row for one admin
// action commit or roll back together.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PermissionChecker answers whether a staff user may manage subscriptions.
// Backed by the RBAC enforcer; admins always pass.
type PermissionChecker interface {
	CanManageSubscriptions(ctx context.Context, userID uint) (bool, error)
}

// PastDueNotifier emails a trainer when the sweep marks them past due.
// Notification failures never fail the sweep.
type PastDueNotifier interface {
	NotifyPastDue(ctx context.Context, email, trainerName, planName string, dueDate time.Time) error
}

// writeRetries is how many times an assignment or cancellation reloads and
// reapplies after an optimistic version conflict before giving up.
const writeRetries = 3
