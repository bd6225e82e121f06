package valueobjects

import (
	"fmt"
	"strings"
	"time"
)

// BillingPeriod is the billing cadence of a subscription. The same type is
// shared by the plan catalog, the ledger, and the cancellation rules, so a
// period is validated exactly once at the boundary.
type BillingPeriod string

const (
	PeriodMonthly  BillingPeriod = "monthly"
	PeriodAnnual   BillingPeriod = "annual"
	PeriodLifetime BillingPeriod = "lifetime"
	// PeriodNone marks an account with no plan assigned.
	PeriodNone BillingPeriod = "none"
)

var ValidPeriods = map[BillingPeriod]bool{
	PeriodMonthly:  true,
	PeriodAnnual:   true,
	PeriodLifetime: true,
	PeriodNone:     true,
}

// ParseBillingPeriod normalizes and validates a period string.
func ParseBillingPeriod(value string) (BillingPeriod, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	period := BillingPeriod(normalized)

	if normalized == "" {
		return "", fmt.Errorf("billing period cannot be empty")
	}

	if !ValidPeriods[period] {
		return "", fmt.Errorf("invalid billing period: %s", value)
	}

	return period, nil
}

func (p BillingPeriod) String() string {
	return string(p)
}

func (p BillingPeriod) IsValid() bool {
	return ValidPeriods[p]
}

func (p BillingPeriod) IsLifetime() bool {
	return p == PeriodLifetime
}

func (p BillingPeriod) IsNone() bool {
	return p == PeriodNone
}

// Recurs reports whether the period produces a due date.
func (p BillingPeriod) Recurs() bool {
	return p == PeriodMonthly || p == PeriodAnnual
}

// NextDueDate returns the due date for a period starting at the given date,
// or nil for lifetime and none.
//
// Calendar math is clamped, not normalized: Jan 31 + 1 month is Feb 28 (or
// 29), never Mar 2, and Feb 29 + 1 year is Feb 28 in a non-leap year.
// time.AddDate would normalize the overflow into the next month, which is
// the wrong answer for a billing date.
func (p BillingPeriod) NextDueDate(start time.Time) *time.Time {
	switch p {
	case PeriodMonthly:
		due := addMonthClamped(start)
		return &due
	case PeriodAnnual:
		due := addYearClamped(start)
		return &due
	default:
		return nil
	}
}

func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := daysIn(year, month); day > last {
		day = last
	}
	hour, minute, sec := t.Clock()
	return time.Date(year, month, day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func addYearClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	year++
	if last := daysIn(year, month); day > last {
		day = last
	}
	hour, minute, sec := t.Clock()
	return time.Date(year, month, day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month. Day zero of the
// following month normalizes back to the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (p BillingPeriod) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p *BillingPeriod) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	parsed, err := ParseBillingPeriod(str)
	if err != nil {
		return err
	}

	*p = parsed
	return nil
}
