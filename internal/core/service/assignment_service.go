package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fieldops/dispatch-system/internal/core/domain"
	"github.com/fieldops/dispatch-system/internal/core/ports"
)

// AssignmentService implements ports.AssignmentService. A single mutex
// serializes candidate selection and load mutation so two concurrent
// assignments cannot both pick the same least-loaded technician without the
// second seeing the first's incremented load.
type AssignmentService struct {
	technicians ports.TechnicianRepository
	orders      ports.WorkOrderRepository
	dispatcher  ports.NotificationDispatcher
	clock       ports.Clock
	saturation  int
	log         zerolog.Logger

	mu sync.Mutex
}

func NewAssignmentService(
	technicians ports.TechnicianRepository,
	orders ports.WorkOrderRepository,
	dispatcher ports.NotificationDispatcher,
	clock ports.Clock,
	saturation int,
	log zerolog.Logger,
) *AssignmentService {
	if saturation <= 0 {
		saturation = domain.DefaultSaturationThreshold
	}
	return &AssignmentService{
		technicians: technicians,
		orders:      orders,
		dispatcher:  dispatcher,
		clock:       clock,
		saturation:  saturation,
		log:         log,
	}
}

// AssignManually binds a pending order to the requested technician. No
// specialty or availability filtering is applied: supervisors may override
// the matching policy for operational exceptions, including assigning to a
// busy or wrong-specialty technician.
func (s *AssignmentService) AssignManually(ctx context.Context, orderID, technicianID, actorID string) (*domain.WorkOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.pendingOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	tech, err := s.technicians.FindByID(ctx, technicianID)
	if err != nil {
		return nil, err
	}

	return s.bind(ctx, order, tech, actorID)
}

// AssignAutomatically runs the matching policy for a pending order:
// technicians sharing the order's specialty and currently available,
// least-loaded first, ties broken by zone match and then ascending ID.
func (s *AssignmentService) AssignAutomatically(ctx context.Context, orderID string) (*domain.WorkOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.pendingOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.technicians.List(ctx, ports.ListTechniciansFilter{
		Specialty:    order.Specialty,
		Availability: string(domain.AvailabilityAvailable),
	})
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	tech := selectCandidate(candidates, order.Zone)
	if tech == nil {
		// Expected business outcome, not a defect: the order stays pending
		// for the caller to retry or queue.
		s.log.Info().
			Str("order_id", order.ID).
			Str("specialty", order.Specialty).
			Msg("no available technician for order")
		return nil, domain.ErrNoAvailableTechnician
	}

	return s.bind(ctx, order, tech, domain.AssignedByAutomatic)
}

// pendingOrder fetches an order and verifies it has not already been
// assigned. A second assignment attempt yields ErrOrderNotPending so callers
// cannot silently overwrite an existing binding.
func (s *AssignmentService) pendingOrder(ctx context.Context, orderID string) (*domain.WorkOrder, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w (status %s)", domain.ErrOrderNotPending, order.Status)
	}
	return order, nil
}

// selectCandidate picks the assignment target from an ID-ordered candidate
// slice: ascending current load, then zone match among the least-loaded tied
// set, then lowest ID. Pure function of its inputs, so a fixed registry
// snapshot always yields the same technician. Returns nil when no candidate
// exists.
func selectCandidate(candidates []*domain.Technician, zone string) *domain.Technician {
	if len(candidates) == 0 {
		return nil
	}

	sorted := make([]*domain.Technician, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CurrentLoad != sorted[j].CurrentLoad {
			return sorted[i].CurrentLoad < sorted[j].CurrentLoad
		}
		return sorted[i].ID < sorted[j].ID
	})

	minLoad := sorted[0].CurrentLoad
	for _, t := range sorted {
		if t.CurrentLoad != minLoad {
			break
		}
		if t.Zone == zone {
			return t
		}
	}
	return sorted[0]
}

// bind applies the shared assignment effect: load increment, availability
// re-derivation, and the order's pending→assigned transition. The technician
// is saved first; if the order save fails the load increment is compensated
// so no partial state survives.
func (s *AssignmentService) bind(ctx context.Context, order *domain.WorkOrder, tech *domain.Technician, actor string) (*domain.WorkOrder, error) {
	now := s.clock.Now().UTC()

	tech.CurrentLoad++
	tech.Availability = domain.AvailabilityForLoad(tech.Availability, tech.CurrentLoad, s.saturation)

	if err := s.technicians.Save(ctx, tech); err != nil {
		return nil, fmt.Errorf("save technician: %w", err)
	}

	order.Status = domain.StatusAssigned
	order.AssignedTechnicianID = tech.ID
	order.AssignedAt = &now
	order.AssignedBy = actor

	if err := s.orders.Save(ctx, order); err != nil {
		tech.CurrentLoad--
		tech.Availability = domain.AvailabilityForLoad(tech.Availability, tech.CurrentLoad, s.saturation)
		if rbErr := s.technicians.Save(ctx, tech); rbErr != nil {
			s.log.Error().Err(rbErr).
				Str("technician_id", tech.ID).
				Msg("failed to roll back technician load")
		}
		return nil, fmt.Errorf("save order: %w", err)
	}

	s.log.Info().
		Str("order_id", order.ID).
		Str("technician_id", tech.ID).
		Str("assigned_by", actor).
		Int("technician_load", tech.CurrentLoad).
		Msg("work order assigned")

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(domain.AssignmentNotification{
			OrderID:      order.ID,
			TechnicianID: tech.ID,
			AssignedBy:   actor,
			Channels:     domain.DefaultChannels,
			SentAt:       now,
		})
	}

	return order, nil
}
