package subscription

import (
	"fmt"
	"time"

	vo "coachdesk/internal/domain/subscription/valueobjects"
)

// ChangeType identifies what kind of event produced a history entry.
type ChangeType string

const (
	ChangeAssigned   ChangeType = "assigned"
	ChangeCanceled   ChangeType = "canceled"
	ChangePastDue    ChangeType = "past_due"
	ChangeReactivate ChangeType = "reactivated"
)

// History is one immutable line in a trainer's subscription timeline. Plan
// name and charged price are snapshotted at write time so later plan edits
// never rewrite the past.
type History struct {
	id              uint
	trainerID       uint
	planID          uint
	planName        string
	changeType      ChangeType
	period          vo.BillingPeriod
	discountPercent uint8
	chargedPrice    uint64
	startDate       time.Time
	dueDate         *time.Time
	reason          *string
	actorID         *uint
	createdAt       time.Time
}

// NewHistory records a subscription event. chargedPrice is the final price
// after discount, in minor units.
func NewHistory(trainerID, planID uint, planName string, changeType ChangeType,
	period vo.BillingPeriod, discountPercent uint8, chargedPrice uint64,
	startDate time.Time, dueDate *time.Time, reason *string, actorID *uint) (*History, error) {

	if trainerID == 0 {
		return nil, fmt.Errorf("trainer ID cannot be zero")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if planName == "" {
		return nil, fmt.Errorf("plan name cannot be empty")
	}

	var due *time.Time
	if dueDate != nil {
		d := *dueDate
		due = &d
	}
	var r *string
	if reason != nil {
		v := *reason
		r = &v
	}

	return &History{
		trainerID:       trainerID,
		planID:          planID,
		planName:        planName,
		changeType:      changeType,
		period:          period,
		discountPercent: discountPercent,
		chargedPrice:    chargedPrice,
		startDate:       startDate,
		dueDate:         due,
		reason:          r,
		actorID:         actorID,
		createdAt:       time.Now().UTC(),
	}, nil
}

// ReconstructHistory rebuilds a history entry from persistence.
func ReconstructHistory(id, trainerID, planID uint, planName string, changeType ChangeType,
	period vo.BillingPeriod, discountPercent uint8, chargedPrice uint64,
	startDate time.Time, dueDate *time.Time, reason *string, actorID *uint,
	createdAt time.Time) *History {

	return &History{
		id:              id,
		trainerID:       trainerID,
		planID:          planID,
		planName:        planName,
		changeType:      changeType,
		period:          period,
		discountPercent: discountPercent,
		chargedPrice:    chargedPrice,
		startDate:       startDate,
		dueDate:         dueDate,
		reason:          reason,
		actorID:         actorID,
		createdAt:       createdAt,
	}
}

func (h *History) ID() uint                     { return h.id }
func (h *History) TrainerID() uint              { return h.trainerID }
func (h *History) PlanID() uint                 { return h.planID }
func (h *History) PlanName() string             { return h.planName }
func (h *History) ChangeType() ChangeType       { return h.changeType }
func (h *History) Period() vo.BillingPeriod     { return h.period }
func (h *History) DiscountPercent() uint8       { return h.discountPercent }
func (h *History) ChargedPrice() uint64         { return h.chargedPrice }
func (h *History) StartDate() time.Time         { return h.startDate }
func (h *History) DueDate() *time.Time          { return h.dueDate }
func (h *History) Reason() *string              { return h.reason }
func (h *History) ActorID() *uint               { return h.actorID }
func (h *History) CreatedAt() time.Time         { return h.createdAt }

// SetID assigns the database identity once.
func (h *History) SetID(id uint) error {
	if h.id != 0 {
		return fmt.Errorf("ID already set")
	}
	h.id = id
	return nil
}
