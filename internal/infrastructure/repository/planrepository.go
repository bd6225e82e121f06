package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"coachdesk/internal/domain/subscription"
	vo "coachdesk/internal/domain/subscription/valueobjects"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/db"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) subscription.PlanRepository {
	return &PlanRepositoryImpl{db: db, logger: logger}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *subscription.Plan) error {
	model, err := r.toModel(plan)
	if err != nil {
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "error", err, "sid", plan.SID())
		return fmt.Errorf("failed to create plan: %w", err)
	}

	return plan.SetID(model.ID)
}

// Update writes the plan guarded by its version: loaded at version N, the
// aggregate is now at N+1, and the row must still be at N for the write to
// land.
func (r *PlanRepositoryImpl) Update(ctx context.Context, plan *subscription.Plan) error {
	model, err := r.toModel(plan)
	if err != nil {
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.PlanModel{}).
		Where("id = ? AND version = ?", plan.ID(), plan.Version()-1).
		Updates(map[string]interface{}{
			"name":               model.Name,
			"description":        model.Description,
			"plan_type":          model.PlanType,
			"monthly_price":      model.MonthlyPrice,
			"annual_price":       model.AnnualPrice,
			"max_students":       model.MaxStudents,
			"features":           model.Features,
			"status":             model.Status,
			"visible_on_landing": model.VisibleOnLanding,
			"display_order":      model.DisplayOrder,
			"version":            model.Version,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update plan", "error", result.Error, "plan_id", plan.ID())
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrVersionConflict
	}

	return nil
}

func (r *PlanRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.PlanModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete plan", "error", result.Error, "plan_id", id)
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("plan not found").
			WithReason(apperrors.ReasonPlanNotFound)
	}
	return nil
}

func (r *PlanRepositoryImpl) FindByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	var model models.PlanModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found").
				WithReason(apperrors.ReasonPlanNotFound)
		}
		r.logger.Errorw("failed to get plan", "error", err, "plan_id", id)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) FindBySID(ctx context.Context, sid string) (*subscription.Plan, error) {
	var model models.PlanModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found").
				WithReason(apperrors.ReasonPlanNotFound)
		}
		r.logger.Errorw("failed to get plan by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get plan by SID: %w", err)
	}
	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) List(ctx context.Context, filter subscription.PlanFilter) ([]*subscription.Plan, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.PlanModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.PlanType != nil {
		query = query.Where("plan_type = ?", filter.PlanType.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count plans: %w", err)
	}

	var planModels []*models.PlanModel
	offset := (filter.Page - 1) * filter.PageSize
	err := query.Order("display_order ASC, id ASC").
		Offset(offset).Limit(filter.PageSize).
		Find(&planModels).Error
	if err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	plans, err := r.toEntities(planModels)
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (r *PlanRepositoryImpl) ListPublicVisible(ctx context.Context) ([]*subscription.Plan, error) {
	var planModels []*models.PlanModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.
		Where("status = ? AND plan_type = ? AND visible_on_landing = ?",
			string(subscription.PlanStatusActive), vo.PlanTypePublic.String(), true).
		Order("display_order ASC, id ASC").
		Find(&planModels).Error
	if err != nil {
		r.logger.Errorw("failed to list public plans", "error", err)
		return nil, fmt.Errorf("failed to list public plans: %w", err)
	}
	return r.toEntities(planModels)
}

func (r *PlanRepositoryImpl) MaxDisplayOrder(ctx context.Context) (int, error) {
	var maxOrder int
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.PlanModel{}).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get max display order: %w", err)
	}
	return maxOrder, nil
}

func (r *PlanRepositoryImpl) UpdateDisplayOrders(ctx context.Context, orders map[uint]int) error {
	tx := db.GetTxFromContext(ctx, r.db)
	for id, order := range orders {
		err := tx.Model(&models.PlanModel{}).
			Where("id = ?", id).
			Update("display_order", order).Error
		if err != nil {
			r.logger.Errorw("failed to update display order", "error", err, "plan_id", id)
			return fmt.Errorf("failed to update display order: %w", err)
		}
	}
	return nil
}

func (r *PlanRepositoryImpl) toModel(plan *subscription.Plan) (*models.PlanModel, error) {
	features, err := json.Marshal(plan.Features())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal features: %w", err)
	}

	return &models.PlanModel{
		ID:               plan.ID(),
		SID:              plan.SID(),
		Name:             plan.Name(),
		Description:      plan.Description(),
		PlanType:         plan.PlanType().String(),
		MonthlyPrice:     plan.MonthlyPrice(),
		AnnualPrice:      plan.AnnualPrice(),
		MaxStudents:      plan.MaxStudents(),
		Features:         features,
		Status:           string(plan.Status()),
		VisibleOnLanding: plan.VisibleOnLanding(),
		DisplayOrder:     plan.DisplayOrder(),
		Version:          plan.Version(),
		CreatedAt:        plan.CreatedAt(),
		UpdatedAt:        plan.UpdatedAt(),
	}, nil
}

func (r *PlanRepositoryImpl) toEntity(model *models.PlanModel) (*subscription.Plan, error) {
	var features []string
	if len(model.Features) > 0 {
		if err := json.Unmarshal(model.Features, &features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal features: %w", err)
		}
	}

	return subscription.ReconstructPlan(
		model.ID,
		model.SID,
		model.Name,
		model.Description,
		vo.PlanType(model.PlanType),
		model.MonthlyPrice,
		model.AnnualPrice,
		model.MaxStudents,
		features,
		subscription.PlanStatus(model.Status),
		model.VisibleOnLanding,
		model.DisplayOrder,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (r *PlanRepositoryImpl) toEntities(planModels []*models.PlanModel) ([]*subscription.Plan, error) {
	plans := make([]*subscription.Plan, 0, len(planModels))
	for _, model := range planModels {
		plan, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
