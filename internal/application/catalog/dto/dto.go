package dto

import (
	"time"

	"coachdesk/internal/domain/subscription"
)

// PlanDTO is the admin-facing plan representation. Prices are in the
// currency's minor unit.
type PlanDTO struct {
	ID               uint      `json:"id"`
	SID              string    `json:"sid"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	PlanType         string    `json:"plan_type"`
	MonthlyPrice     uint64    `json:"monthly_price"`
	AnnualPrice      *uint64   `json:"annual_price,omitempty"`
	MaxStudents      uint      `json:"max_students"`
	Unlimited        bool      `json:"unlimited"`
	Features         []string  `json:"features"`
	Status           string    `json:"status"`
	VisibleOnLanding bool      `json:"visible_on_landing"`
	DisplayOrder     int       `json:"display_order"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PublicPlanDTO is the landing-page plan representation: no internal IDs, no
// status, description already rendered to sanitized HTML.
type PublicPlanDTO struct {
	SID             string   `json:"sid"`
	Name            string   `json:"name"`
	DescriptionHTML string   `json:"description_html"`
	MonthlyPrice    uint64   `json:"monthly_price"`
	AnnualPrice     *uint64  `json:"annual_price,omitempty"`
	MaxStudents     uint     `json:"max_students"`
	Unlimited       bool     `json:"unlimited"`
	Features        []string `json:"features"`
	DisplayOrder    int      `json:"display_order"`
}

// PlanListDTO is a paginated plan listing.
type PlanListDTO struct {
	Plans    []*PlanDTO `json:"plans"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// ToPlanDTO converts a plan aggregate to its admin representation.
func ToPlanDTO(plan *subscription.Plan) *PlanDTO {
	if plan == nil {
		return nil
	}

	return &PlanDTO{
		ID:               plan.ID(),
		SID:              plan.SID(),
		Name:             plan.Name(),
		Description:      plan.Description(),
		PlanType:         plan.PlanType().String(),
		MonthlyPrice:     plan.MonthlyPrice(),
		AnnualPrice:      plan.AnnualPrice(),
		MaxStudents:      plan.MaxStudents(),
		Unlimited:        plan.IsUnlimited(),
		Features:         plan.Features(),
		Status:           string(plan.Status()),
		VisibleOnLanding: plan.VisibleOnLanding(),
		DisplayOrder:     plan.DisplayOrder(),
		CreatedAt:        plan.CreatedAt(),
		UpdatedAt:        plan.UpdatedAt(),
	}
}

// ToPlanDTOList converts a slice of plan aggregates.
func ToPlanDTOList(plans []*subscription.Plan) []*PlanDTO {
	dtos := make([]*PlanDTO, 0, len(plans))
	for _, plan := range plans {
		dtos = append(dtos, ToPlanDTO(plan))
	}
	return dtos
}
