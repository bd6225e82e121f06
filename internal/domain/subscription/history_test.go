package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "coachdesk/internal/domain/subscription/valueobjects"
)

func TestNewHistory(t *testing.T) {
	start := fixtureTime()
	due := start.AddDate(0, 1, 0)
	actorID := uint(99)

	entry, err := NewHistory(10, 1, "Pro", ChangeAssigned, vo.PeriodMonthly,
		10, 8910, start, &due, nil, &actorID)
	require.NoError(t, err)

	assert.Equal(t, uint(10), entry.TrainerID())
	assert.Equal(t, "Pro", entry.PlanName())
	assert.Equal(t, ChangeAssigned, entry.ChangeType())
	assert.Equal(t, uint64(8910), entry.ChargedPrice())
	assert.Equal(t, uint(99), *entry.ActorID())
	assert.False(t, entry.CreatedAt().IsZero())
}

func TestNewHistory_Validation(t *testing.T) {
	start := fixtureTime()

	_, err := NewHistory(0, 1, "Pro", ChangeAssigned, vo.PeriodMonthly, 0, 0, start, nil, nil, nil)
	assert.Error(t, err)

	_, err = NewHistory(10, 0, "Pro", ChangeAssigned, vo.PeriodMonthly, 0, 0, start, nil, nil, nil)
	assert.Error(t, err)

	_, err = NewHistory(10, 1, "", ChangeAssigned, vo.PeriodMonthly, 0, 0, start, nil, nil, nil)
	assert.Error(t, err)
}

func TestNewHistory_CopiesPointers(t *testing.T) {
	start := fixtureTime()
	due := start.AddDate(0, 1, 0)
	reason := "switching plans"

	entry, err := NewHistory(10, 1, "Pro", ChangeCanceled, vo.PeriodMonthly,
		0, 9900, start, &due, &reason, nil)
	require.NoError(t, err)

	// the snapshot must not alias the caller's memory
	due = due.AddDate(0, 6, 0)
	reason = "edited later"

	assert.Equal(t, start.AddDate(0, 1, 0), *entry.DueDate())
	assert.Equal(t, "switching plans", *entry.Reason())
}

func TestHistory_SetID(t *testing.T) {
	entry, err := NewHistory(10, 1, "Pro", ChangeAssigned, vo.PeriodMonthly,
		0, 9900, fixtureTime(), nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, entry.SetID(42))
	assert.Equal(t, uint(42), entry.ID())
	assert.Error(t, entry.SetID(43))
}
