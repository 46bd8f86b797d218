package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fieldops/dispatch-system/internal/core/domain"
	"github.com/fieldops/dispatch-system/internal/core/ports"
)

// WorkOrderService exposes the work-order registry and drives post-assignment
// progression. Completing an order releases the assigned technician's load,
// which can flip a busy technician back to available.
type WorkOrderService struct {
	orders      ports.WorkOrderRepository
	technicians ports.TechnicianRepository
	clock       ports.Clock
	saturation  int
	logger      zerolog.Logger
}

func NewWorkOrderService(
	orders ports.WorkOrderRepository,
	technicians ports.TechnicianRepository,
	clock ports.Clock,
	saturation int,
	logger zerolog.Logger,
) *WorkOrderService {
	if saturation <= 0 {
		saturation = domain.DefaultSaturationThreshold
	}
	return &WorkOrderService{
		orders:      orders,
		technicians: technicians,
		clock:       clock,
		saturation:  saturation,
		logger:      logger,
	}
}

func (s *WorkOrderService) CreateWorkOrder(ctx context.Context, input ports.CreateWorkOrderInput) (*domain.WorkOrder, error) {
	order := &domain.WorkOrder{
		ID:          uuid.NewString(),
		ClientName:  input.ClientName,
		Address:     input.Address,
		Zone:        input.Zone,
		Priority:    domain.Priority(input.Priority),
		Specialty:   input.Specialty,
		Description: input.Description,
		Status:      domain.StatusPending,
		CreatedAt:   s.clock.Now().UTC(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create work order")
		return nil, err
	}

	s.logger.Info().Str("order_id", order.ID).Str("zone", order.Zone).Msg("work order created")
	return order, nil
}

func (s *WorkOrderService) GetWorkOrder(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *WorkOrderService) ListWorkOrders(ctx context.Context, filter ports.ListWorkOrdersFilter) ([]*domain.WorkOrder, error) {
	return s.orders.List(ctx, filter)
}

// AdvanceStatus moves an order one step forward in the state machine.
// Assignment itself is not reachable here; pending orders only leave pending
// through the AssignmentService.
func (s *WorkOrderService) AdvanceStatus(ctx context.Context, id string, next domain.OrderStatus) (*domain.WorkOrder, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if next == domain.StatusAssigned {
		return nil, fmt.Errorf("%w (assignment goes through the assignment service)", domain.ErrInvalidTransition)
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, next)
	}

	order.Status = next
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if next == domain.StatusCompleted {
		s.releaseLoad(ctx, order.AssignedTechnicianID)
	}

	s.logger.Info().Str("order_id", order.ID).Str("status", string(next)).Msg("work order status advanced")
	return order, nil
}

// releaseLoad decrements the technician's open-assignment count after a
// completion and re-derives availability. Failures are logged, not
// propagated: the completion itself is already committed.
func (s *WorkOrderService) releaseLoad(ctx context.Context, technicianID string) {
	if technicianID == "" {
		return
	}

	tech, err := s.technicians.FindByID(ctx, technicianID)
	if err != nil {
		s.logger.Warn().Err(err).Str("technician_id", technicianID).Msg("release load: technician lookup failed")
		return
	}

	if tech.CurrentLoad > 0 {
		tech.CurrentLoad--
	}
	tech.Availability = domain.AvailabilityForLoad(tech.Availability, tech.CurrentLoad, s.saturation)

	if err := s.technicians.Save(ctx, tech); err != nil {
		s.logger.Warn().Err(err).Str("technician_id", technicianID).Msg("release load: save failed")
	}
}
