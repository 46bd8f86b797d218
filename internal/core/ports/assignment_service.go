package ports

import (
	"context"

	"github.com/fieldops/dispatch-system/internal/core/domain"
)

// AssignmentService binds pending work orders to technicians. Manual
// assignment is a deliberate supervisor override that skips all candidate
// filtering; automatic assignment runs the matching policy.
type AssignmentService interface {
	AssignManually(ctx context.Context, orderID, technicianID, actorID string) (*domain.WorkOrder, error)
	AssignAutomatically(ctx context.Context, orderID string) (*domain.WorkOrder, error)
}

// NotificationDispatcher delivers assignment notifications. Best-effort and
// asynchronous: callers must never treat a dispatch failure as an assignment
// failure.
type NotificationDispatcher interface {
	Dispatch(n domain.AssignmentNotification)
}
