package usecases

import (
	"context"

	"coachdesk/internal/application/catalog/dto"
)

// TransactionManager runs a function inside one database transaction. The
// in-use and type-change checks must see the same snapshot the write
// commits against, so every mutating use case goes through it.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PlanCacheInvalidator drops the cached public plan listing after a catalog
// change. Invalidation failures are logged, not returned: the cache entry
// expires on its own.
type PlanCacheInvalidator interface {
	InvalidatePublicPlans(ctx context.Context) error
}

// PublicPlanCache is the read-through cache in front of the landing-page
// plan listing. Get returns (nil, nil) on a miss.
type PublicPlanCache interface {
	PlanCacheInvalidator
	GetPublicPlans(ctx context.Context) ([]*dto.PublicPlanDTO, error)
	SetPublicPlans(ctx context.Context, plans []*dto.PublicPlanDTO) error
}

// writeRetries is how many times a mutating use case reloads and reapplies
// after an optimistic version conflict before giving up.
const writeRetries = 3
