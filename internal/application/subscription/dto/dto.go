package dto

import (
	"time"

	"coachdesk/internal/domain/subscription"
)

// SubscriptionDTO is the current paid state of one trainer.
type SubscriptionDTO struct {
	TrainerSID         string     `json:"trainer_sid"`
	PlanSID            *string    `json:"plan_sid,omitempty"`
	PlanName           *string    `json:"plan_name,omitempty"`
	Period             string     `json:"period"`
	DiscountPercent    uint8      `json:"discount_percent"`
	FinalPrice         *uint64    `json:"final_price,omitempty"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	DueDate            *time.Time `json:"due_date,omitempty"`
	Status             string     `json:"status"`
	GrantsAccess       bool       `json:"grants_access"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
}

// HistoryDTO is one line of a trainer's subscription timeline. Plan name and
// charged price are the values snapshotted when the event happened.
type HistoryDTO struct {
	ID              uint       `json:"id"`
	PlanName        string     `json:"plan_name"`
	ChangeType      string     `json:"change_type"`
	Period          string     `json:"period"`
	DiscountPercent uint8      `json:"discount_percent"`
	ChargedPrice    uint64     `json:"charged_price"`
	StartDate       time.Time  `json:"start_date"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Reason          *string    `json:"reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// HistoryListDTO is a paginated timeline.
type HistoryListDTO struct {
	Entries  []*HistoryDTO `json:"entries"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// ToSubscriptionDTO builds the subscription view. plan may be nil when no
// plan is attached or the plan was deleted after cancellation.
func ToSubscriptionDTO(trainerSID string, sub *subscription.Subscription, plan *subscription.Plan) *SubscriptionDTO {
	out := &SubscriptionDTO{
		TrainerSID:      trainerSID,
		Period:          sub.Period().String(),
		DiscountPercent: sub.DiscountPercent(),
		Status:          sub.Status().String(),
		GrantsAccess:    sub.Status().GrantsAccess(),
		DueDate:         sub.DueDate(),
	}

	if sub.HasPlan() {
		start := sub.StartDate()
		out.StartDate = &start
		out.CancellationReason = sub.CancellationReason()
	}

	if plan != nil {
		sid := plan.SID()
		name := plan.Name()
		out.PlanSID = &sid
		out.PlanName = &name

		if base, err := subscription.SelectBasePrice(plan, sub.Period()); err == nil {
			if final, err := subscription.ComputeFinalPrice(base, sub.DiscountPercent()); err == nil {
				out.FinalPrice = &final
			}
		}
	}

	return out
}

// ToHistoryDTO converts one timeline entry.
func ToHistoryDTO(entry *subscription.History) *HistoryDTO {
	return &HistoryDTO{
		ID:              entry.ID(),
		PlanName:        entry.PlanName(),
		ChangeType:      string(entry.ChangeType()),
		Period:          entry.Period().String(),
		DiscountPercent: entry.DiscountPercent(),
		ChargedPrice:    entry.ChargedPrice(),
		StartDate:       entry.StartDate(),
		DueDate:         entry.DueDate(),
		Reason:          entry.Reason(),
		CreatedAt:       entry.CreatedAt(),
	}
}

// ToHistoryDTOList converts a timeline page.
func ToHistoryDTOList(entries []*subscription.History) []*HistoryDTO {
	dtos := make([]*HistoryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, ToHistoryDTO(entry))
	}
	return dtos
}
