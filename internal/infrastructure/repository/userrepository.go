package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"coachdesk/internal/domain/user"
	"coachdesk/internal/infrastructure/persistence/models"
	"coachdesk/internal/shared/authorization"
	"coachdesk/internal/shared/db"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepositoryImpl{db: db, logger: logger}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	model := r.toModel(u)
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user", "error", err, "email", u.Email())
		return fmt.Errorf("failed to create user: %w", err)
	}
	return u.SetID(model.ID)
}

func (r *UserRepositoryImpl) Update(ctx context.Context, u *user.User) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.UserModel{}).
		Where("id = ?", u.ID()).
		Updates(map[string]interface{}{
			"name":          u.Name(),
			"password_hash": u.PasswordHash(),
			"active":        u.IsActive(),
			"updated_at":    u.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.toEntity(&model)
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return r.toEntity(&model)
}

func (r *UserRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.UserModel{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepositoryImpl) toModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		SID:          u.SID(),
		Email:        u.Email(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		Active:       u.IsActive(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func (r *UserRepositoryImpl) toEntity(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.SID,
		model.Email,
		model.Name,
		model.PasswordHash,
		authorization.UserRole(model.Role),
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
