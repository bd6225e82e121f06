package valueobjects

type SubscriptionStatus string

const (
	StatusPending  SubscriptionStatus = "pending"
	StatusTrial    SubscriptionStatus = "trial"
	StatusActive   SubscriptionStatus = "active"
	StatusPastDue  SubscriptionStatus = "past_due"
	StatusCanceled SubscriptionStatus = "canceled"
	StatusLifetime SubscriptionStatus = "lifetime"
)

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusPending:  true,
	StatusTrial:    true,
	StatusActive:   true,
	StatusPastDue:  true,
	StatusCanceled: true,
	StatusLifetime: true,
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	return ValidStatuses[s]
}

// CanCancel reports whether a cancellation applies to this status.
// Canceled and pending subscriptions have nothing to cancel.
func (s SubscriptionStatus) CanCancel() bool {
	switch s {
	case StatusActive, StatusTrial, StatusPastDue, StatusLifetime:
		return true
	default:
		return false
	}
}

// GrantsAccess reports whether the trainer currently has paid access.
func (s SubscriptionStatus) GrantsAccess() bool {
	return s == StatusActive || s == StatusTrial || s == StatusLifetime
}

// CanTransitionTo enumerates the legal status transitions.
//
//	pending  -assign-> active|lifetime
//	active   -sweep--> past_due, -cancel-> canceled
//	past_due -assign-> active|lifetime, -cancel-> canceled
//	canceled -assign-> active|lifetime (a new assignment restarts the cycle)
func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusPending:  {StatusActive, StatusLifetime},
		StatusTrial:    {StatusActive, StatusLifetime, StatusCanceled},
		StatusActive:   {StatusActive, StatusLifetime, StatusPastDue, StatusCanceled},
		StatusPastDue:  {StatusActive, StatusLifetime, StatusCanceled},
		StatusCanceled: {StatusActive, StatusLifetime},
		StatusLifetime: {StatusActive, StatusLifetime, StatusCanceled},
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
