package trainer

import "context"

// Repository persists trainer identities.
type Repository interface {
	Create(ctx context.Context, trainer *Trainer) error
	FindByID(ctx context.Context, id uint) (*Trainer, error)
	FindBySID(ctx context.Context, sid string) (*Trainer, error)
	FindByEmail(ctx context.Context, email string) (*Trainer, error)
	List(ctx context.Context, page, pageSize int) ([]*Trainer, int64, error)
}
