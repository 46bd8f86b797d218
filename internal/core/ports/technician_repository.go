package ports

import (
	"context"

	"github.com/fieldops/dispatch-system/internal/core/domain"
)

// ListTechniciansFilter carries the query parameters for listing technicians.
// Empty fields are not filtered on.
type ListTechniciansFilter struct {
	Zone         string
	Specialty    string
	Availability string
}

// TechnicianRepository defines persistence operations for technicians. It is
// a plain keyed store: the load-to-availability policy lives in the service
// layer, not here.
type TechnicianRepository interface {
	Create(ctx context.Context, t *domain.Technician) error
	FindByID(ctx context.Context, id string) (*domain.Technician, error)
	// List returns technicians matching filter, ordered by ascending ID so
	// that candidate enumeration is stable across calls.
	List(ctx context.Context, filter ListTechniciansFilter) ([]*domain.Technician, error)
	Save(ctx context.Context, t *domain.Technician) error
}
