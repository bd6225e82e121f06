package trainer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"coachdesk/internal/shared/id"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var nameCaser = cases.Title(language.BrazilianPortuguese)

// Trainer is a coach account on the platform. The subscription context owns
// the paid state of the account; this aggregate carries only identity.
type Trainer struct {
	trainerID uint
	sid       string
	name      string
	email     string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewTrainer creates a trainer with a normalized display name.
func NewTrainer(name, email string) (*Trainer, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, fmt.Errorf("trainer name is required")
	}
	if len(name) > 120 {
		return nil, fmt.Errorf("trainer name too long (max 120 characters)")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("invalid email format")
	}

	now := time.Now().UTC()
	return &Trainer{
		sid:       id.NewTrainerID(),
		name:      name,
		email:     email,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructTrainer rebuilds a trainer from persistence.
func ReconstructTrainer(trainerID uint, sid, name, email string, status Status,
	createdAt, updatedAt time.Time) (*Trainer, error) {

	if trainerID == 0 {
		return nil, fmt.Errorf("trainer ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("trainer SID cannot be empty")
	}
	if status != StatusActive && status != StatusSuspended {
		return nil, fmt.Errorf("invalid trainer status: %s", status)
	}

	return &Trainer{
		trainerID: trainerID,
		sid:       sid,
		name:      name,
		email:     email,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// NormalizeName collapses internal whitespace and title-cases the result.
func NormalizeName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return nameCaser.String(strings.Join(fields, " "))
}

func (t *Trainer) ID() uint {
	return t.trainerID
}

func (t *Trainer) SetID(trainerID uint) error {
	if t.trainerID != 0 {
		return fmt.Errorf("trainer ID is already set")
	}
	if trainerID == 0 {
		return fmt.Errorf("trainer ID cannot be zero")
	}
	t.trainerID = trainerID
	return nil
}

func (t *Trainer) SID() string {
	return t.sid
}

func (t *Trainer) Name() string {
	return t.name
}

func (t *Trainer) Email() string {
	return t.email
}

func (t *Trainer) Status() Status {
	return t.status
}

func (t *Trainer) IsActive() bool {
	return t.status == StatusActive
}

func (t *Trainer) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Trainer) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Trainer) Suspend() {
	if t.status == StatusSuspended {
		return
	}
	t.status = StatusSuspended
	t.updatedAt = time.Now().UTC()
}

func (t *Trainer) Reactivate() {
	if t.status == StatusActive {
		return
	}
	t.status = StatusActive
	t.updatedAt = time.Now().UTC()
}
