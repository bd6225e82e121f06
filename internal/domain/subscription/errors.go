package subscription

import "errors"

var (
	// ErrPlanInactive means the plan exists but is not assignable.
	ErrPlanInactive = errors.New("plan is not active")
	// ErrPeriodInvalidForPlanType means the requested billing period is not
	// offered by the plan: public plans take monthly or annual (annual only
	// when an annual price exists), lifetime plans take only lifetime.
	ErrPeriodInvalidForPlanType = errors.New("billing period is not valid for this plan type")
	// ErrDiscountOutOfRange means the discount percent is outside [0,100].
	ErrDiscountOutOfRange = errors.New("discount percent must be between 0 and 100")
	// ErrNoActiveSubscription means there is nothing to cancel: the account
	// has no subscription, or it is already canceled or still pending.
	ErrNoActiveSubscription = errors.New("no active subscription")
	// ErrNotPastDue means the past-due sweep touched a subscription that is
	// not overdue; the sweep skips it.
	ErrNotPastDue = errors.New("subscription is not past due")
	// ErrVersionConflict means an optimistic write found the row changed
	// since it was read. Callers reload and retry.
	ErrVersionConflict = errors.New("version conflict")
)
