package audit

import (
	"fmt"
	"time"
)

// Action names follow "<entity>.<verb>".
type Action string

const (
	ActionPlanCreated          Action = "plan.created"
	ActionPlanUpdated          Action = "plan.updated"
	ActionPlanDeleted          Action = "plan.deleted"
	ActionPlanDuplicated       Action = "plan.duplicated"
	ActionPlanStatusChanged    Action = "plan.status_changed"
	ActionPlanReordered        Action = "plan.reordered"
	ActionSubscriptionAssigned Action = "subscription.assigned"
	ActionSubscriptionCanceled Action = "subscription.canceled"
	ActionSubscriptionPastDue  Action = "subscription.past_due"
)

// Entry is one immutable audit record. Metadata carries action-specific
// details and is stored as JSON.
type Entry struct {
	id         uint
	actorID    *uint
	actorEmail string
	action     Action
	entityType string
	entityID   string
	metadata   map[string]any
	createdAt  time.Time
}

// NewEntry records an administrative action. actorID is nil for system
// actions such as the past-due sweep; actorEmail then carries "system".
func NewEntry(actorID *uint, actorEmail string, action Action,
	entityType, entityID string, metadata map[string]any) (*Entry, error) {

	if action == "" {
		return nil, fmt.Errorf("audit action is required")
	}
	if entityType == "" || entityID == "" {
		return nil, fmt.Errorf("audit entity reference is required")
	}
	if actorEmail == "" {
		actorEmail = "system"
	}

	return &Entry{
		actorID:    actorID,
		actorEmail: actorEmail,
		action:     action,
		entityType: entityType,
		entityID:   entityID,
		metadata:   metadata,
		createdAt:  time.Now().UTC(),
	}, nil
}

// ReconstructEntry rebuilds an audit entry from persistence.
func ReconstructEntry(id uint, actorID *uint, actorEmail string, action Action,
	entityType, entityID string, metadata map[string]any, createdAt time.Time) *Entry {

	return &Entry{
		id:         id,
		actorID:    actorID,
		actorEmail: actorEmail,
		action:     action,
		entityType: entityType,
		entityID:   entityID,
		metadata:   metadata,
		createdAt:  createdAt,
	}
}

func (e *Entry) ID() uint                 { return e.id }
func (e *Entry) ActorID() *uint           { return e.actorID }
func (e *Entry) ActorEmail() string       { return e.actorEmail }
func (e *Entry) Action() Action           { return e.action }
func (e *Entry) EntityType() string       { return e.entityType }
func (e *Entry) EntityID() string         { return e.entityID }
func (e *Entry) Metadata() map[string]any { return e.metadata }
func (e *Entry) CreatedAt() time.Time     { return e.createdAt }

func (e *Entry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("ID already set")
	}
	e.id = id
	return nil
}
