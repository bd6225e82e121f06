package valueobjects

import "fmt"

// PlanType represents the commercial type of a plan.
type PlanType string

const (
	// PlanTypePublic is a recurring plan with a monthly (and optionally
	// annual) price.
	PlanTypePublic PlanType = "public"
	// PlanTypeLifetime is a one-time plan with no recurring price and no
	// expiration.
	PlanTypeLifetime PlanType = "lifetime"
)

// IsValid checks if the plan type is valid
func (pt PlanType) IsValid() bool {
	return pt == PlanTypePublic || pt == PlanTypeLifetime
}

// String returns the string representation of the plan type
func (pt PlanType) String() string {
	return string(pt)
}

// NewPlanType creates a new PlanType from a string
func NewPlanType(s string) (PlanType, error) {
	pt := PlanType(s)
	if !pt.IsValid() {
		return "", fmt.Errorf("invalid plan type: %s, must be 'public' or 'lifetime'", s)
	}
	return pt, nil
}

// IsLifetime checks if the plan type is lifetime
func (pt PlanType) IsLifetime() bool {
	return pt == PlanTypeLifetime
}
