package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"coachdesk/internal/shared/authorization"
	"coachdesk/internal/shared/id"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is a staff account that operates the admin panel. Trainers do not log
// in here; they live in their own context.
type User struct {
	userID       uint
	sid          string
	email        string
	name         string
	passwordHash string
	role         authorization.UserRole
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a staff account. The password arrives already hashed; the
// domain never sees plaintext.
func NewUser(email, name, passwordHash string, role authorization.UserRole) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("invalid email format")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("user name is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := time.Now().UTC()
	return &User{
		sid:          id.NewUserID(),
		email:        email,
		name:         strings.TrimSpace(name),
		passwordHash: passwordHash,
		role:         role,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(userID uint, sid, email, name, passwordHash string,
	role authorization.UserRole, active bool, createdAt, updatedAt time.Time) (*User, error) {

	if userID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("user SID cannot be empty")
	}

	return &User{
		userID:       userID,
		sid:          sid,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.userID
}

func (u *User) SetID(userID uint) error {
	if u.userID != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if userID == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.userID = userID
	return nil
}

func (u *User) SID() string {
	return u.sid
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Name() string {
	return u.name
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) IsActive() bool {
	return u.active
}

func (u *User) IsAdmin() bool {
	return u.role == authorization.RoleAdmin
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) Deactivate() {
	u.active = false
	u.updatedAt = time.Now().UTC()
}

func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = passwordHash
	u.updatedAt = time.Now().UTC()
	return nil
}
