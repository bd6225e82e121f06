package audit

import (
	"context"
	"time"
)

// Filter narrows audit listings. Zero values mean no constraint.
type Filter struct {
	ActorID    *uint
	Action     *Action
	EntityType *string
	EntityID   *string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// Repository appends and queries the audit log. Entries are never updated
// or deleted.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int64, error)
}
