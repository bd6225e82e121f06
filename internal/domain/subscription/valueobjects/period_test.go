package valueobjects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseBillingPeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    BillingPeriod
		wantErr bool
	}{
		{"monthly", PeriodMonthly, false},
		{"Annual", PeriodAnnual, false},
		{"  LIFETIME ", PeriodLifetime, false},
		{"none", PeriodNone, false},
		{"", "", true},
		{"weekly", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseBillingPeriod(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextDueDate_Monthly(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		want  time.Time
	}{
		{"mid month", date(2024, time.January, 15), date(2024, time.February, 15)},
		{"jan 31 clamps to feb 29 in leap year", date(2024, time.January, 31), date(2024, time.February, 29)},
		{"jan 31 clamps to feb 28 in non-leap year", date(2023, time.January, 31), date(2023, time.February, 28)},
		{"mar 31 clamps to apr 30", date(2024, time.March, 31), date(2024, time.April, 30)},
		{"dec rolls over the year", date(2024, time.December, 15), date(2025, time.January, 15)},
		{"first of month", date(2024, time.June, 1), date(2024, time.July, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PeriodMonthly.NextDueDate(tc.start)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestNextDueDate_MonthlyAlwaysNextCalendarMonth(t *testing.T) {
	// the due date always lands in the calendar month immediately after the
	// start's month, modulo year rollover
	start := date(2024, time.January, 1)
	for i := 0; i < 400; i++ {
		day := start.AddDate(0, 0, i)
		due := PeriodMonthly.NextDueDate(day)
		require.NotNil(t, due)

		wantMonth := day.Month()%12 + 1
		assert.Equal(t, wantMonth, due.Month(), "start %s", day)
	}
}

func TestNextDueDate_Annual(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		want  time.Time
	}{
		{"plain date", date(2024, time.January, 15), date(2025, time.January, 15)},
		{"feb 29 clamps to feb 28", date(2024, time.February, 29), date(2025, time.February, 28)},
		{"feb 28 stays feb 28", date(2023, time.February, 28), date(2024, time.February, 28)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PeriodAnnual.NextDueDate(tc.start)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestNextDueDate_NonRecurring(t *testing.T) {
	assert.Nil(t, PeriodLifetime.NextDueDate(date(2024, time.January, 15)))
	assert.Nil(t, PeriodNone.NextDueDate(date(2024, time.January, 15)))
}

func TestNextDueDate_PreservesClock(t *testing.T) {
	start := time.Date(2024, time.May, 10, 13, 45, 30, 0, time.UTC)
	due := PeriodMonthly.NextDueDate(start)
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2024, time.June, 10, 13, 45, 30, 0, time.UTC), *due)
}

func TestBillingPeriod_JSON(t *testing.T) {
	raw, err := PeriodAnnual.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"annual"`, string(raw))

	var p BillingPeriod
	require.NoError(t, p.UnmarshalJSON([]byte(`"monthly"`)))
	assert.Equal(t, PeriodMonthly, p)

	assert.Error(t, p.UnmarshalJSON([]byte(`"weekly"`)))
}

func TestBillingPeriod_Recurs(t *testing.T) {
	assert.True(t, PeriodMonthly.Recurs())
	assert.True(t, PeriodAnnual.Recurs())
	assert.False(t, PeriodLifetime.Recurs())
	assert.False(t, PeriodNone.Recurs())
}
