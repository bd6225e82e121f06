package subscription

import (
	vo "coachdesk/internal/domain/subscription/valueobjects"
)

// SelectBasePrice returns the plan's undiscounted price in minor units for
// the given period. An annual assignment without a configured annual price
// falls back to twelve monthly prices. Lifetime is always free at
// assignment time (the plan itself is the entitlement). PeriodNone carries
// no price; callers must not ask.
func SelectBasePrice(plan *Plan, period vo.BillingPeriod) (uint64, error) {
	switch period {
	case vo.PeriodMonthly:
		return plan.MonthlyPrice(), nil
	case vo.PeriodAnnual:
		if plan.HasAnnualPrice() {
			return *plan.AnnualPrice(), nil
		}
		return 12 * plan.MonthlyPrice(), nil
	case vo.PeriodLifetime:
		return 0, nil
	default:
		return 0, ErrPeriodInvalidForPlanType
	}
}

// ComputeFinalPrice applies a percentage discount to a price in minor units,
// rounding half-up to the nearest minor unit. Discounts outside [0,100] are
// a caller error; they are rejected at the boundary, never clamped here.
func ComputeFinalPrice(basePrice uint64, discountPercent uint8) (uint64, error) {
	if discountPercent > 100 {
		return 0, ErrDiscountOutOfRange
	}
	// basePrice * (100 - d) / 100 with half-up rounding, in integer math
	return (basePrice*uint64(100-discountPercent) + 50) / 100, nil
}
