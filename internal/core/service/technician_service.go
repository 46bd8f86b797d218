package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fieldops/dispatch-system/internal/core/domain"
	"github.com/fieldops/dispatch-system/internal/core/ports"
)

// TechnicianService exposes the technician registry. Registration is the
// external lifecycle entry point; load changes happen only through the
// assignment and completion paths.
type TechnicianService struct {
	repo   ports.TechnicianRepository
	clock  ports.Clock
	logger zerolog.Logger
}

func NewTechnicianService(repo ports.TechnicianRepository, clock ports.Clock, logger zerolog.Logger) *TechnicianService {
	return &TechnicianService{repo: repo, clock: clock, logger: logger}
}

func (s *TechnicianService) CreateTechnician(ctx context.Context, input ports.CreateTechnicianInput) (*domain.Technician, error) {
	tech := &domain.Technician{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Specialty:      input.Specialty,
		Zone:           input.Zone,
		Availability:   domain.AvailabilityAvailable,
		CurrentLoad:    0,
		Certifications: input.Certifications,
		CreatedAt:      s.clock.Now().UTC(),
	}

	if err := s.repo.Create(ctx, tech); err != nil {
		s.logger.Error().Err(err).Msg("failed to create technician")
		return nil, err
	}

	s.logger.Info().Str("technician_id", tech.ID).Str("specialty", tech.Specialty).Msg("technician registered")
	return tech, nil
}

func (s *TechnicianService) GetTechnician(ctx context.Context, id string) (*domain.Technician, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TechnicianService) ListTechnicians(ctx context.Context, filter ports.ListTechniciansFilter) ([]*domain.Technician, error) {
	return s.repo.List(ctx, filter)
}
