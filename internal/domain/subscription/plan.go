package subscription

import (
	"fmt"
	"strings"
	"time"

	vo "coachdesk/internal/domain/subscription/valueobjects"
	"coachdesk/internal/shared/id"
)

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
)

// Plan is a priced tier a trainer can be subscribed to. Prices are stored in
// the currency's minor unit (cents).
type Plan struct {
	planID           uint
	sid              string
	name             string
	description      string
	planType         vo.PlanType
	monthlyPrice     uint64
	annualPrice      *uint64
	maxStudents      uint
	features         []string
	status           PlanStatus
	visibleOnLanding bool
	displayOrder     int
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewPlan creates a new plan enforcing the pricing invariants:
// public plans must carry a positive monthly price, lifetime plans must not
// carry any price, and an annual price can never exceed twelve monthly ones.
func NewPlan(name, description string, planType vo.PlanType, monthlyPrice uint64,
	annualPrice *uint64, maxStudents uint, features []string,
	visibleOnLanding bool, displayOrder int) (*Plan, error) {

	if err := validatePlanFields(name, planType, monthlyPrice, annualPrice, features); err != nil {
		return nil, err
	}

	if planType.IsLifetime() {
		// lifetime plans never appear on the landing page price grid
		visibleOnLanding = false
	}

	now := time.Now().UTC()
	return &Plan{
		sid:              id.NewPlanID(),
		name:             name,
		description:      description,
		planType:         planType,
		monthlyPrice:     monthlyPrice,
		annualPrice:      annualPrice,
		maxStudents:      maxStudents,
		features:         append([]string(nil), features...),
		status:           PlanStatusActive,
		visibleOnLanding: visibleOnLanding,
		displayOrder:     displayOrder,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructPlan rebuilds a plan from persistence.
func ReconstructPlan(planID uint, sid, name, description string, planType vo.PlanType,
	monthlyPrice uint64, annualPrice *uint64, maxStudents uint, features []string,
	status PlanStatus, visibleOnLanding bool, displayOrder, version int,
	createdAt, updatedAt time.Time) (*Plan, error) {

	if planID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("plan SID cannot be empty")
	}
	if status != PlanStatusActive && status != PlanStatusInactive {
		return nil, fmt.Errorf("invalid plan status: %s", status)
	}
	if !planType.IsValid() {
		return nil, fmt.Errorf("invalid plan type: %s", planType)
	}

	if features == nil {
		features = []string{}
	}

	return &Plan{
		planID:           planID,
		sid:              sid,
		name:             name,
		description:      description,
		planType:         planType,
		monthlyPrice:     monthlyPrice,
		annualPrice:      annualPrice,
		maxStudents:      maxStudents,
		features:         features,
		status:           status,
		visibleOnLanding: visibleOnLanding,
		displayOrder:     displayOrder,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func validatePlanFields(name string, planType vo.PlanType, monthlyPrice uint64,
	annualPrice *uint64, features []string) error {

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("plan name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("plan name too long (max 100 characters)")
	}
	if !planType.IsValid() {
		return fmt.Errorf("invalid plan type: %s", planType)
	}

	if planType.IsLifetime() {
		if monthlyPrice != 0 {
			return fmt.Errorf("lifetime plans must not have a monthly price")
		}
		if annualPrice != nil {
			return fmt.Errorf("lifetime plans must not have an annual price")
		}
	} else {
		if monthlyPrice == 0 {
			return fmt.Errorf("public plans require a monthly price greater than zero")
		}
		if annualPrice != nil && *annualPrice > 12*monthlyPrice {
			return fmt.Errorf("annual price cannot exceed 12 monthly prices")
		}
	}

	for _, feature := range features {
		if strings.TrimSpace(feature) == "" {
			return fmt.Errorf("plan features cannot contain empty entries")
		}
	}

	return nil
}

func (p *Plan) ID() uint {
	return p.planID
}

func (p *Plan) SetID(planID uint) error {
	if p.planID != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if planID == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.planID = planID
	return nil
}

func (p *Plan) SID() string {
	return p.sid
}

func (p *Plan) Name() string {
	return p.name
}

func (p *Plan) Description() string {
	return p.description
}

func (p *Plan) PlanType() vo.PlanType {
	return p.planType
}

func (p *Plan) MonthlyPrice() uint64 {
	return p.monthlyPrice
}

func (p *Plan) AnnualPrice() *uint64 {
	return p.annualPrice
}

// HasAnnualPrice reports whether an annual price is configured. Annual
// assignments are rejected without one.
func (p *Plan) HasAnnualPrice() bool {
	return p.annualPrice != nil
}

func (p *Plan) MaxStudents() uint {
	return p.maxStudents
}

// IsUnlimited reports whether the plan places no cap on students.
func (p *Plan) IsUnlimited() bool {
	return p.maxStudents == 0
}

func (p *Plan) Features() []string {
	return p.features
}

func (p *Plan) Status() PlanStatus {
	return p.status
}

func (p *Plan) IsActive() bool {
	return p.status == PlanStatusActive
}

func (p *Plan) VisibleOnLanding() bool {
	return p.visibleOnLanding
}

func (p *Plan) DisplayOrder() int {
	return p.displayOrder
}

// Version returns the aggregate version for optimistic locking
func (p *Plan) Version() int {
	return p.version
}

func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Plan) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Plan) touch() {
	p.updatedAt = time.Now().UTC()
	p.version++
}

func (p *Plan) Activate() {
	if p.status == PlanStatusActive {
		return
	}
	p.status = PlanStatusActive
	p.touch()
}

func (p *Plan) Deactivate() {
	if p.status == PlanStatusInactive {
		return
	}
	p.status = PlanStatusInactive
	p.touch()
}

// Update replaces the editable fields, revalidating the pricing invariants.
// The plan type is updated here too; whether a type change is allowed at all
// (no trainers subscribed) is decided by the caller inside the same
// transaction that persists the change.
func (p *Plan) Update(name, description string, planType vo.PlanType, monthlyPrice uint64,
	annualPrice *uint64, maxStudents uint, features []string, visibleOnLanding bool) error {

	if err := validatePlanFields(name, planType, monthlyPrice, annualPrice, features); err != nil {
		return err
	}

	if planType.IsLifetime() {
		visibleOnLanding = false
	}

	p.name = name
	p.description = description
	p.planType = planType
	p.monthlyPrice = monthlyPrice
	p.annualPrice = annualPrice
	p.maxStudents = maxStudents
	p.features = append([]string(nil), features...)
	p.visibleOnLanding = visibleOnLanding
	p.touch()
	return nil
}

func (p *Plan) SetDisplayOrder(order int) {
	if p.displayOrder == order {
		return
	}
	p.displayOrder = order
	p.touch()
}

// Duplicate returns an unsaved copy of the plan with a fresh SID, the name
// suffixed with " (copy)", and the given display order (callers append the
// copy to the end of the catalog).
func (p *Plan) Duplicate(displayOrder int) *Plan {
	now := time.Now().UTC()

	var annualPrice *uint64
	if p.annualPrice != nil {
		price := *p.annualPrice
		annualPrice = &price
	}

	return &Plan{
		sid:              id.NewPlanID(),
		name:             p.name + " (copy)",
		description:      p.description,
		planType:         p.planType,
		monthlyPrice:     p.monthlyPrice,
		annualPrice:      annualPrice,
		maxStudents:      p.maxStudents,
		features:         append([]string(nil), p.features...),
		status:           p.status,
		visibleOnLanding: p.visibleOnLanding,
		displayOrder:     displayOrder,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}
}
