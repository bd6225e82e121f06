package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"coachdesk/internal/domain/audit"
	"coachdesk/internal/domain/subscription"
	"coachdesk/internal/domain/trainer"
	"coachdesk/internal/shared/logger"
)

type mockTrainerRepo struct {
	mock.Mock
}

func (m *mockTrainerRepo) Create(ctx context.Context, tr *trainer.Trainer) error {
	args := m.Called(ctx, tr)
	return args.Error(0)
}

func (m *mockTrainerRepo) FindByID(ctx context.Context, id uint) (*trainer.Trainer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trainer.Trainer), args.Error(1)
}

func (m *mockTrainerRepo) FindBySID(ctx context.Context, sid string) (*trainer.Trainer, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trainer.Trainer), args.Error(1)
}

func (m *mockTrainerRepo) FindByEmail(ctx context.Context, email string) (*trainer.Trainer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trainer.Trainer), args.Error(1)
}

func (m *mockTrainerRepo) List(ctx context.Context, page, pageSize int) ([]*trainer.Trainer, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*trainer.Trainer), args.Get(1).(int64), args.Error(2)
}

type mockPlanRepo struct {
	mock.Mock
}

func (m *mockPlanRepo) Create(ctx context.Context, plan *subscription.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *mockPlanRepo) Update(ctx context.Context, plan *subscription.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *mockPlanRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPlanRepo) FindByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Plan), args.Error(1)
}

func (m *mockPlanRepo) FindBySID(ctx context.Context, sid string) (*subscription.Plan, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Plan), args.Error(1)
}

func (m *mockPlanRepo) List(ctx context.Context, filter subscription.PlanFilter) ([]*subscription.Plan, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*subscription.Plan), args.Get(1).(int64), args.Error(2)
}

func (m *mockPlanRepo) ListPublicVisible(ctx context.Context) ([]*subscription.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Plan), args.Error(1)
}

func (m *mockPlanRepo) MaxDisplayOrder(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockPlanRepo) UpdateDisplayOrders(ctx context.Context, orders map[uint]int) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) FindByTrainerID(ctx context.Context, trainerID uint) (*subscription.Subscription, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) Save(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubscriptionRepo) CountActiveByPlanID(ctx context.Context, planID uint) (int64, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubscriptionRepo) ListOverdueActive(ctx context.Context, now time.Time, limit int) ([]uint, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

type mockHistoryRepo struct {
	mock.Mock
}

func (m *mockHistoryRepo) Create(ctx context.Context, entry *subscription.History) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockHistoryRepo) ListByTrainerID(ctx context.Context, trainerID uint, page, pageSize int) ([]*subscription.History, int64, error) {
	args := m.Called(ctx, trainerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*subscription.History), args.Get(1).(int64), args.Error(2)
}

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditRepo) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*audit.Entry), args.Get(1).(int64), args.Error(2)
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePermissions struct {
	allowed bool
	err     error
}

func (f fakePermissions) CanManageSubscriptions(ctx context.Context, userID uint) (bool, error) {
	return f.allowed, f.err
}

type fakeNotifier struct {
	sent int
}

func (f *fakeNotifier) NotifyPastDue(ctx context.Context, email, trainerName, planName string, dueDate time.Time) error {
	f.sent++
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                   {}
func (nopLogger) Info(msg string, args ...any)                    {}
func (nopLogger) Warn(msg string, args ...any)                    {}
func (nopLogger) Error(msg string, args ...any)                   {}
func (nopLogger) With(args ...any) logger.Interface               { return nopLogger{} }
func (nopLogger) Named(name string) logger.Interface              { return nopLogger{} }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
