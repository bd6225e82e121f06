package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/domain/user"
	"coachdesk/internal/shared/authorization"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type CreateAdminCommand struct {
	Email    string
	Name     string
	Password string
}

// CreateAdminUseCase bootstraps the first staff account from the CLI.
type CreateAdminUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewCreateAdminUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *CreateAdminUseCase {
	return &CreateAdminUseCase{userRepo: userRepo, hasher: hasher, logger: logger}
}

func (uc *CreateAdminUseCase) Execute(ctx context.Context, cmd CreateAdminCommand) (*user.User, error) {
	if len(cmd.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError(fmt.Sprintf("user %s already exists", cmd.Email))
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := user.NewUser(cmd.Email, cmd.Name, hash, authorization.RoleAdmin)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid admin account", err.Error())
	}

	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to persist admin: %w", err)
	}

	uc.logger.Infow("admin account created", "user_sid", admin.SID(), "email", admin.Email())
	return admin, nil
}
