package ports

import (
	"context"

	"github.com/fieldops/dispatch-system/internal/core/domain"
)

// CreateTechnicianInput carries the registration data for a new technician.
// New technicians start available with zero load.
type CreateTechnicianInput struct {
	Name           string
	Email          string
	Phone          string
	Specialty      string
	Zone           string
	Certifications []string
}

// TechnicianService defines use-case operations over the technician registry.
type TechnicianService interface {
	CreateTechnician(ctx context.Context, input CreateTechnicianInput) (*domain.Technician, error)
	GetTechnician(ctx context.Context, id string) (*domain.Technician, error)
	ListTechnicians(ctx context.Context, filter ListTechniciansFilter) ([]*domain.Technician, error)
}
