package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coachdesk/internal/domain/subscription"
	vo "coachdesk/internal/domain/subscription/valueobjects"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.PlanModel{}, &models.SubscriptionHistoryModel{})
	require.NoError(t, err)

	return db
}

func createTestPlan(t *testing.T, name string, planType vo.PlanType, monthlyPrice uint64, visible bool, order int) *subscription.Plan {
	plan, err := subscription.NewPlan(name, "Test description", planType, monthlyPrice,
		nil, 10, []string{"feature-a"}, visible, order)
	require.NoError(t, err)
	return plan
}

func TestPlanRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("create new plan successfully", func(t *testing.T) {
		plan := createTestPlan(t, "Starter", vo.PlanTypePublic, 4990, true, 1)

		err := repo.Create(ctx, plan)
		assert.NoError(t, err)
		assert.NotZero(t, plan.ID())
	})

	t.Run("create plan round-trips features and prices", func(t *testing.T) {
		annual := uint64(49900)
		plan, err := subscription.NewPlan("Pro", "Full access", vo.PlanTypePublic, 9900,
			&annual, 50, []string{"feature-a", "feature-b"}, true, 2)
		require.NoError(t, err)

		err = repo.Create(ctx, plan)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, plan.ID())
		assert.NoError(t, err)
		assert.Equal(t, plan.SID(), found.SID())
		assert.Equal(t, uint64(9900), found.MonthlyPrice())
		require.NotNil(t, found.AnnualPrice())
		assert.Equal(t, uint64(49900), *found.AnnualPrice())
		assert.Equal(t, []string{"feature-a", "feature-b"}, found.Features())
	})

	t.Run("duplicate SID should fail", func(t *testing.T) {
		plan := createTestPlan(t, "Unique", vo.PlanTypePublic, 1000, false, 3)
		err := repo.Create(ctx, plan)
		require.NoError(t, err)

		clone, err := subscription.ReconstructPlan(plan.ID()+100, plan.SID(), "Clone", "",
			vo.PlanTypePublic, 1000, nil, 10, nil, subscription.PlanStatusActive,
			false, 4, 1, time.Now().UTC(), time.Now().UTC())
		require.NoError(t, err)

		err = repo.Create(ctx, clone)
		assert.Error(t, err)
	})
}

func TestPlanRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("update plan successfully", func(t *testing.T) {
		plan := createTestPlan(t, "Original", vo.PlanTypePublic, 4990, true, 1)
		err := repo.Create(ctx, plan)
		require.NoError(t, err)

		err = plan.Update("Renamed", "New description", vo.PlanTypePublic, 5990,
			nil, 20, []string{"feature-a"}, true)
		require.NoError(t, err)

		err = repo.Update(ctx, plan)
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, plan.ID())
		assert.NoError(t, err)
		assert.Equal(t, "Renamed", found.Name())
		assert.Equal(t, uint64(5990), found.MonthlyPrice())
		assert.Equal(t, 2, found.Version())
	})

	t.Run("optimistic locking - concurrent update conflict", func(t *testing.T) {
		plan := createTestPlan(t, "Locking Test", vo.PlanTypePublic, 4990, true, 2)
		err := repo.Create(ctx, plan)
		require.NoError(t, err)

		p1, err := repo.FindByID(ctx, plan.ID())
		require.NoError(t, err)
		p2, err := repo.FindByID(ctx, plan.ID())
		require.NoError(t, err)

		err = p1.Update("First Writer", "", vo.PlanTypePublic, 4990, nil, 10, nil, true)
		require.NoError(t, err)
		err = repo.Update(ctx, p1)
		assert.NoError(t, err)

		err = p2.Update("Second Writer", "", vo.PlanTypePublic, 4990, nil, 10, nil, true)
		require.NoError(t, err)
		err = repo.Update(ctx, p2)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, subscription.ErrVersionConflict))
	})

	t.Run("update non-existent plan reports conflict", func(t *testing.T) {
		plan, err := subscription.ReconstructPlan(99999, "plan_nonexistent", "Ghost", "",
			vo.PlanTypePublic, 1000, nil, 10, nil, subscription.PlanStatusActive,
			false, 9, 2, time.Now().UTC(), time.Now().UTC())
		require.NoError(t, err)

		err = repo.Update(ctx, plan)
		assert.Error(t, err)
	})
}

func TestPlanRepository_FindBySID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("find by existing SID", func(t *testing.T) {
		plan := createTestPlan(t, "Find Me", vo.PlanTypePublic, 4990, true, 1)
		err := repo.Create(ctx, plan)
		require.NoError(t, err)

		found, err := repo.FindBySID(ctx, plan.SID())
		assert.NoError(t, err)
		assert.Equal(t, plan.ID(), found.ID())
		assert.Equal(t, "Find Me", found.Name())
	})

	t.Run("find by non-existent SID", func(t *testing.T) {
		found, err := repo.FindBySID(ctx, "plan_doesnotexist")
		assert.Error(t, err)
		assert.Nil(t, found)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestPlanRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, logger.NewLogger())
	ctx := context.Background()

	p1 := createTestPlan(t, "Plan A", vo.PlanTypePublic, 4990, true, 1)
	require.NoError(t, repo.Create(ctx, p1))

	p2 := createTestPlan(t, "Plan B", vo.PlanTypePublic, 9900, true, 2)
	require.NoError(t, repo.Create(ctx, p2))

	p3, err := subscription.NewPlan("Founder", "", vo.PlanTypeLifetime, 0, nil, 0, nil, false, 3)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p3))

	p2.Deactivate()
	require.NoError(t, repo.Update(ctx, p2))

	t.Run("list all plans ordered by display order", func(t *testing.T) {
		plans, total, err := repo.List(ctx, subscription.PlanFilter{Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, plans, 3)
		assert.Equal(t, "Plan A", plans[0].Name())
		assert.Equal(t, "Founder", plans[2].Name())
	})

	t.Run("filter by status", func(t *testing.T) {
		status := subscription.PlanStatusInactive
		plans, total, err := repo.List(ctx, subscription.PlanFilter{Status: &status, Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, plans, 1)
		assert.Equal(t, "Plan B", plans[0].Name())
	})

	t.Run("filter by plan type", func(t *testing.T) {
		planType := vo.PlanTypeLifetime
		plans, total, err := repo.List(ctx, subscription.PlanFilter{PlanType: &planType, Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, plans, 1)
		assert.Equal(t, "Founder", plans[0].Name())
	})

	t.Run("pagination", func(t *testing.T) {
		plans, total, err := repo.List(ctx, subscription.PlanFilter{Page: 1, PageSize: 2})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, plans, 2)

		plans, total, err = repo.List(ctx, subscription.PlanFilter{Page: 2, PageSize: 2})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, plans, 1)
	})

	t.Run("public visible excludes inactive and lifetime plans", func(t *testing.T) {
		plans, err := repo.ListPublicVisible(ctx)
		assert.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, "Plan A", plans[0].Name())
	})
}

func TestPlanRepository_DisplayOrders(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("max display order on empty catalog", func(t *testing.T) {
		maxOrder, err := repo.MaxDisplayOrder(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, maxOrder)
	})

	t.Run("reorder plans", func(t *testing.T) {
		p1 := createTestPlan(t, "First", vo.PlanTypePublic, 1000, true, 1)
		require.NoError(t, repo.Create(ctx, p1))
		p2 := createTestPlan(t, "Second", vo.PlanTypePublic, 2000, true, 2)
		require.NoError(t, repo.Create(ctx, p2))

		maxOrder, err := repo.MaxDisplayOrder(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, maxOrder)

		err = repo.UpdateDisplayOrders(ctx, map[uint]int{p1.ID(): 2, p2.ID(): 1})
		assert.NoError(t, err)

		plans, _, err := repo.List(ctx, subscription.PlanFilter{Page: 1, PageSize: 10})
		assert.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Equal(t, "Second", plans[0].Name())
		assert.Equal(t, "First", plans[1].Name())
	})
}

func TestPlanRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("delete existing plan", func(t *testing.T) {
		plan := createTestPlan(t, "Delete Me", vo.PlanTypePublic, 1000, false, 1)
		require.NoError(t, repo.Create(ctx, plan))

		err := repo.Delete(ctx, plan.ID())
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, plan.ID())
		assert.Error(t, err)
		assert.Nil(t, found)
	})

	t.Run("delete non-existent plan", func(t *testing.T) {
		err := repo.Delete(ctx, 99999)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestHistoryRepository_AppendAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db, logger.NewLogger())
	ctx := context.Background()

	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	due := start.AddDate(0, 1, 0)
	actorID := uint(7)

	t.Run("append entries and list newest first", func(t *testing.T) {
		assigned, err := subscription.NewHistory(1, 10, "Starter", subscription.ChangeAssigned,
			vo.PeriodMonthly, 10, 4491, start, &due, nil, &actorID)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, assigned))
		assert.NotZero(t, assigned.ID())

		reason := "switched trainers"
		canceled, err := subscription.NewHistory(1, 10, "Starter", subscription.ChangeCanceled,
			vo.PeriodMonthly, 10, 0, due, nil, &reason, &actorID)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, canceled))

		entries, total, err := repo.ListByTrainerID(ctx, 1, 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, entries, 2)
		assert.Equal(t, subscription.ChangeCanceled, entries[0].ChangeType())
		assert.Equal(t, subscription.ChangeAssigned, entries[1].ChangeType())

		require.NotNil(t, entries[1].DueDate())
		assert.Equal(t, uint64(4491), entries[1].ChargedPrice())
		require.NotNil(t, entries[0].Reason())
		assert.Equal(t, "switched trainers", *entries[0].Reason())
	})

	t.Run("history of another trainer stays isolated", func(t *testing.T) {
		entries, total, err := repo.ListByTrainerID(ctx, 2, 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Len(t, entries, 0)
	})
}

func TestPlanRepository_TransactionRollback(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("rollback leaves no plan behind", func(t *testing.T) {
		plan := createTestPlan(t, "Rolled Back", vo.PlanTypePublic, 1000, false, 1)

		err := db.Transaction(func(tx *gorm.DB) error {
			txRepo := NewPlanRepository(tx, logger.NewLogger())
			if err := txRepo.Create(ctx, plan); err != nil {
				return err
			}
			return assert.AnError
		})
		assert.Error(t, err)

		found, err := repo.FindBySID(ctx, plan.SID())
		assert.Error(t, err)
		assert.Nil(t, found)
	})

	t.Run("commit persists the plan", func(t *testing.T) {
		plan := createTestPlan(t, "Committed", vo.PlanTypePublic, 1000, false, 2)

		err := db.Transaction(func(tx *gorm.DB) error {
			txRepo := NewPlanRepository(tx, logger.NewLogger())
			return txRepo.Create(ctx, plan)
		})
		assert.NoError(t, err)

		found, err := repo.FindBySID(ctx, plan.SID())
		assert.NoError(t, err)
		assert.NotNil(t, found)
	})
}
