package usecases

import "coachdesk/internal/domain/user"

// PasswordHasher hashes and verifies staff passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) error
}

// TokenIssuer mints the access token a staff login returns.
type TokenIssuer interface {
	Issue(u *user.User) (token string, expiresIn int64, err error)
}
