package ports

import (
	"context"

	"github.com/fieldops/dispatch-system/internal/core/domain"
)

// ListWorkOrdersFilter carries the query parameters for listing work orders.
// Empty fields are not filtered on.
type ListWorkOrdersFilter struct {
	Status string
	Zone   string
}

// WorkOrderRepository defines persistence operations for work orders.
type WorkOrderRepository interface {
	Create(ctx context.Context, o *domain.WorkOrder) error
	FindByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	List(ctx context.Context, filter ListWorkOrdersFilter) ([]*domain.WorkOrder, error)
	Save(ctx context.Context, o *domain.WorkOrder) error
}
