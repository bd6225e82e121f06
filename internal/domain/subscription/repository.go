package subscription

import (
	"context"
	"time"

	vo "coachdesk/internal/domain/subscription/valueobjects"
)

// PlanRepository persists plan aggregates.
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	// Update writes the plan guarded by its version and returns
	// ErrVersionConflict from the infrastructure layer when the row moved
	// under us.
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Plan, error)
	FindBySID(ctx context.Context, sid string) (*Plan, error)
	List(ctx context.Context, filter PlanFilter) ([]*Plan, int64, error)
	ListPublicVisible(ctx context.Context) ([]*Plan, error)
	MaxDisplayOrder(ctx context.Context) (int, error)
	UpdateDisplayOrders(ctx context.Context, orders map[uint]int) error
}

// PlanFilter narrows plan listings.
type PlanFilter struct {
	Status   *PlanStatus
	PlanType *vo.PlanType
	Page     int
	PageSize int
}

// SubscriptionRepository reads and writes the current subscription state of
// a trainer.
type SubscriptionRepository interface {
	FindByTrainerID(ctx context.Context, trainerID uint) (*Subscription, error)
	// Save persists the full subscription state onto the trainer row.
	Save(ctx context.Context, sub *Subscription) error
	// CountActiveByPlanID counts trainers whose current subscription still
	// grants access on the given plan.
	CountActiveByPlanID(ctx context.Context, planID uint) (int64, error)
	// ListOverdueActive returns trainer IDs of active subscriptions whose due
	// date is before now.
	ListOverdueActive(ctx context.Context, now time.Time, limit int) ([]uint, error)
}

// HistoryRepository appends and reads the immutable subscription timeline.
type HistoryRepository interface {
	Create(ctx context.Context, entry *History) error
	ListByTrainerID(ctx context.Context, trainerID uint, page, pageSize int) ([]*History, int64, error)
}
