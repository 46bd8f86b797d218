package ports

import (
	"context"

	"github.com/fieldops/dispatch-system/internal/core/domain"
)

// CreateWorkOrderInput carries the data for a new work order. Orders always
// enter the system pending.
type CreateWorkOrderInput struct {
	ClientName  string
	Address     string
	Zone        string
	Priority    string
	Specialty   string
	Description string
}

// WorkOrderService defines use-case operations over the work-order registry,
// including the forward-only status progression after assignment.
type WorkOrderService interface {
	CreateWorkOrder(ctx context.Context, input CreateWorkOrderInput) (*domain.WorkOrder, error)
	GetWorkOrder(ctx context.Context, id string) (*domain.WorkOrder, error)
	ListWorkOrders(ctx context.Context, filter ListWorkOrdersFilter) ([]*domain.WorkOrder, error)
	AdvanceStatus(ctx context.Context, id string, next domain.OrderStatus) (*domain.WorkOrder, error)
}
