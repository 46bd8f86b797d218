package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of a work order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusAssigned   OrderStatus = "assigned"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
)

// Priority is informational only; it plays no role in matching.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// AssignedByAutomatic is the actor recorded when the matching policy, rather
// than a supervisor, performed the assignment.
const AssignedByAutomatic = "automatic"

// validTransitions defines the allowed state machine transitions. All
// transitions are forward-only; there is no path back to pending.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusAssigned},
	StatusAssigned:   {StatusInProgress},
	StatusInProgress: {StatusCompleted},
}

var (
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrOrderNotFound         = errors.New("work order not found")
	ErrOrderNotPending       = errors.New("work order is not pending")
	ErrTechnicianNotFound    = errors.New("technician not found")
	ErrNoAvailableTechnician = errors.New("no technicians meet the criteria")
	ErrForbidden             = errors.New("access forbidden")
)

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// WorkOrder is the core aggregate root. The three assignment fields are set
// together exactly once, when the order leaves pending.
type WorkOrder struct {
	ID                   string      `json:"id" bson:"_id,omitempty"`
	ClientName           string      `json:"client_name" bson:"client_name"`
	Address              string      `json:"address" bson:"address"`
	Zone                 string      `json:"zone" bson:"zone"`
	Priority             Priority    `json:"priority" bson:"priority"`
	Specialty            string      `json:"specialty" bson:"specialty"`
	Description          string      `json:"description" bson:"description"`
	Status               OrderStatus `json:"status" bson:"status"`
	AssignedTechnicianID string      `json:"assigned_technician_id,omitempty" bson:"assigned_technician_id,omitempty"`
	AssignedAt           *time.Time  `json:"assigned_at,omitempty" bson:"assigned_at,omitempty"`
	AssignedBy           string      `json:"assigned_by,omitempty" bson:"assigned_by,omitempty"`
	CreatedAt            time.Time   `json:"created_at" bson:"created_at"`
}
