package subscription

import (
	"fmt"
	"time"

	vo "coachdesk/internal/domain/subscription/valueobjects"
)

// Subscription is the current paid state of one trainer account. It is
// stored denormalized on the trainer row; the append-only history keeps
// every past state.
type Subscription struct {
	trainerID          uint
	planID             *uint
	period             vo.BillingPeriod
	discountPercent    uint8
	startDate          time.Time
	dueDate            *time.Time
	status             vo.SubscriptionStatus
	cancellationReason *string
	version            int
}

// NewUnsubscribed returns the state of a trainer account before any plan was
// ever assigned.
func NewUnsubscribed(trainerID uint) *Subscription {
	return &Subscription{
		trainerID: trainerID,
		period:    vo.PeriodNone,
		status:    vo.StatusPending,
		version:   1,
	}
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(trainerID uint, planID *uint, period vo.BillingPeriod,
	discountPercent uint8, startDate time.Time, dueDate *time.Time,
	status vo.SubscriptionStatus, cancellationReason *string, version int) (*Subscription, error) {

	if trainerID == 0 {
		return nil, fmt.Errorf("trainer ID cannot be zero")
	}
	if !period.IsValid() {
		return nil, fmt.Errorf("invalid billing period: %s", period)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}
	// planID and period are set and cleared together; one without the other
	// marks a corrupted row
	if (planID == nil) != period.IsNone() {
		return nil, fmt.Errorf("inconsistent subscription: plan and period must be set together")
	}

	return &Subscription{
		trainerID:          trainerID,
		planID:             planID,
		period:             period,
		discountPercent:    discountPercent,
		startDate:          startDate,
		dueDate:            dueDate,
		status:             status,
		cancellationReason: cancellationReason,
		version:            version,
	}, nil
}

func (s *Subscription) TrainerID() uint {
	return s.trainerID
}

func (s *Subscription) PlanID() *uint {
	return s.planID
}

func (s *Subscription) Period() vo.BillingPeriod {
	return s.period
}

func (s *Subscription) DiscountPercent() uint8 {
	return s.discountPercent
}

func (s *Subscription) StartDate() time.Time {
	return s.startDate
}

func (s *Subscription) DueDate() *time.Time {
	return s.dueDate
}

func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

func (s *Subscription) CancellationReason() *string {
	return s.cancellationReason
}

// Version returns the aggregate version for optimistic locking.
func (s *Subscription) Version() int {
	return s.version
}

// HasPlan reports whether a plan is currently attached.
func (s *Subscription) HasPlan() bool {
	return s.planID != nil
}

// Assign moves the subscription onto the given plan. Validation order
// matters: an inactive plan is reported before any period mismatch.
//
// Lifetime plans force period=lifetime and a zero discount regardless of the
// requested values. Public plans accept monthly always, and annual only when
// the plan carries an annual price. Any previous state is overwritten; the
// history row for it was already written when it was created and stays
// untouched.
func (s *Subscription) Assign(plan *Plan, period vo.BillingPeriod, discountPercent uint8, startDate time.Time) error {
	if !plan.IsActive() {
		return ErrPlanInactive
	}
	if discountPercent > 100 {
		return ErrDiscountOutOfRange
	}

	if plan.PlanType().IsLifetime() {
		period = vo.PeriodLifetime
		discountPercent = 0
	} else {
		switch period {
		case vo.PeriodMonthly:
		case vo.PeriodAnnual:
			if !plan.HasAnnualPrice() {
				return ErrPeriodInvalidForPlanType
			}
		default:
			return ErrPeriodInvalidForPlanType
		}
	}

	newStatus := vo.StatusActive
	if period.IsLifetime() {
		newStatus = vo.StatusLifetime
	}
	if !s.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot assign plan from status %s", s.status)
	}

	planID := plan.ID()
	s.planID = &planID
	s.period = period
	s.discountPercent = discountPercent
	s.startDate = startDate
	s.dueDate = period.NextDueDate(startDate)
	s.status = newStatus
	s.cancellationReason = nil
	s.version++

	return nil
}

// Cancel applies the cancellation policy:
//
//	active/trial/past_due + immediate  -> canceled, due date = today
//	active/trial/past_due + deferred   -> canceled, due date unchanged
//	lifetime (either way)              -> canceled, due date = today
//	canceled/pending                   -> ErrNoActiveSubscription
//
// A deferred cancellation keeps access until the original due date; a
// lifetime plan has no period to run out, so it always ends today.
func (s *Subscription) Cancel(reason *string, immediate bool, today time.Time) error {
	if !s.status.CanCancel() {
		return ErrNoActiveSubscription
	}

	if immediate || s.status == vo.StatusLifetime {
		s.dueDate = &today
	}

	s.status = vo.StatusCanceled
	s.cancellationReason = reason
	s.version++

	return nil
}

// MarkPastDue flips an overdue active subscription to past_due. It is the
// only transition the background sweep performs, and it refuses anything
// that is not an overdue active subscription so concurrent sweeps and admin
// actions stay safe.
func (s *Subscription) MarkPastDue(now time.Time) error {
	if s.status != vo.StatusActive {
		return ErrNotPastDue
	}
	if s.dueDate == nil || !s.dueDate.Before(now) {
		return ErrNotPastDue
	}

	s.status = vo.StatusPastDue
	s.version++
	return nil
}
