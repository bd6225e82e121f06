package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"coachdesk/internal/application/catalog/dto"
	"coachdesk/internal/domain/audit"
	"coachdesk/internal/domain/subscription"
	"coachdesk/internal/shared/logger"
)

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

// fakeTxManager runs the function directly; transactional behavior itself is
// covered by the repository integration tests.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePlanCache struct {
	invalidated int
	stored      []*dto.PublicPlanDTO
	getErr      error
}

func (f *fakePlanCache) InvalidatePublicPlans(ctx context.Context) error {
	f.invalidated++
	return nil
}

func (f *fakePlanCache) GetPublicPlans(ctx context.Context) ([]*dto.PublicPlanDTO, error) {
	return f.stored, f.getErr
}

func (f *fakePlanCache) SetPublicPlans(ctx context.Context, plans []*dto.PublicPlanDTO) error {
	f.stored = plans
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                    {}
func (nopLogger) Info(msg string, args ...any)                     {}
func (nopLogger) Warn(msg string, args ...any)                     {}
func (nopLogger) Error(msg string, args ...any)                    {}
func (nopLogger) With(args ...any) logger.Interface                { return nopLogger{} }
func (nopLogger) Named(name string) logger.Interface               { return nopLogger{} }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})   {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})   {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{})  {}
