package usecases

import (
	"context"
	"strings"

	"coachdesk/internal/domain/user"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{userRepo: userRepo, hasher: hasher, tokens: tokens, logger: logger}
}

// Execute authenticates a staff user. Wrong email and wrong password return
// the same error.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		uc.logger.Warnw("login failed", "email", email)
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}
	if !u.IsActive() {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	if err := uc.hasher.Verify(u.PasswordHash(), cmd.Password); err != nil {
		uc.logger.Warnw("login failed", "email", email)
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	token, expiresIn, err := uc.tokens.Issue(u)
	if err != nil {
		uc.logger.Errorw("failed to issue token", "error", err)
		return nil, apperrors.NewInternalError("failed to issue token")
	}

	uc.logger.Infow("staff login", "user_sid", u.SID())
	return &LoginResult{
		Token:     token,
		ExpiresIn: expiresIn,
		Email:     u.Email(),
		Name:      u.Name(),
		Role:      u.Role().String(),
	}, nil
}
