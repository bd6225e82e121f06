package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	generated, err := Generate(12)
	require.NoError(t, err)
	assert.Len(t, generated, 12)

	// non-positive lengths fall back to the default
	generated, err = Generate(0)
	require.NoError(t, err)
	assert.Len(t, generated, DefaultLength)
}

func TestGenerate_Alphabet(t *testing.T) {
	generated, err := Generate(64)
	require.NoError(t, err)
	for _, r := range generated {
		assert.Contains(t, alphabet, string(r))
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		generated := MustGenerate(DefaultLength)
		assert.False(t, seen[generated], "duplicate ID generated: %s", generated)
		seen[generated] = true
	}
}

func TestPrefixedIDs(t *testing.T) {
	planID := NewPlanID()
	assert.True(t, strings.HasPrefix(planID, "plan_"))
	assert.NoError(t, ValidatePrefix(planID, PrefixPlan))
	assert.Error(t, ValidatePrefix(planID, PrefixTrainer))

	prefix, short, err := ParsePrefixedID(planID)
	require.NoError(t, err)
	assert.Equal(t, PrefixPlan, prefix)
	assert.Len(t, short, DefaultLength)
}

func TestParsePrefixedID_Invalid(t *testing.T) {
	_, _, err := ParsePrefixedID("noprefix")
	assert.Error(t, err)
}

func TestFormatWithPrefix(t *testing.T) {
	assert.Equal(t, "tr_abc123", FormatWithPrefix(PrefixTrainer, "abc123"))
	assert.Equal(t, "", FormatWithPrefix(PrefixTrainer, ""))
}
