package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fieldops/dispatch-system/internal/core/domain"
	"github.com/fieldops/dispatch-system/internal/core/ports"
)

func newWorkOrderFixture() (*WorkOrderService, *stubTechRepo, *stubOrderRepo) {
	techs := newStubTechRepo()
	orders := newStubOrderRepo()
	svc := NewWorkOrderService(orders, techs, newFakeClock(testRef), 3, zerolog.Nop())
	return svc, techs, orders
}

func TestWorkOrderService_Create(t *testing.T) {
	svc, _, orders := newWorkOrderFixture()

	order, err := svc.CreateWorkOrder(context.Background(), ports.CreateWorkOrderInput{
		ClientName:  "Acme Corp",
		Address:     "Av. Reforma 100",
		Zone:        "north",
		Priority:    "high",
		Specialty:   "electrical",
		Description: "panel fault",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID == "" {
		t.Fatal("expected generated ID")
	}
	if order.Status != domain.StatusPending {
		t.Errorf("new orders must be pending, got %q", order.Status)
	}
	if order.AssignedTechnicianID != "" {
		t.Errorf("pending order must have no technician, got %q", order.AssignedTechnicianID)
	}
	if !order.CreatedAt.Equal(testRef) {
		t.Errorf("createdAt: want %v, got %v", testRef, order.CreatedAt)
	}

	stored, _ := orders.FindByID(context.Background(), order.ID)
	if stored == nil {
		t.Fatal("order not persisted")
	}
}

func TestWorkOrderService_ListFilters(t *testing.T) {
	svc, _, orders := newWorkOrderFixture()
	seedOrder(orders, "o1", "electrical", "north")
	seedOrder(orders, "o2", "plumbing", "south")
	orders.byID["o2"].Status = domain.StatusAssigned

	pending, err := svc.ListWorkOrders(context.Background(), ports.ListWorkOrdersFilter{Status: "pending"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != "o1" {
		t.Errorf("status filter: expected [o1], got %v", pending)
	}

	south, err := svc.ListWorkOrders(context.Background(), ports.ListWorkOrdersFilter{Zone: "south"})
	if err != nil {
		t.Fatal(err)
	}
	if len(south) != 1 || south[0].ID != "o2" {
		t.Errorf("zone filter: expected [o2], got %v", south)
	}
}

func TestWorkOrderService_AdvanceForwardOnly(t *testing.T) {
	svc, techs, orders := newWorkOrderFixture()
	seedTech(techs, "t1", "electrical", "north", 1)
	seedOrder(orders, "o1", "electrical", "north")
	orders.byID["o1"].Status = domain.StatusAssigned
	orders.byID["o1"].AssignedTechnicianID = "t1"

	order, err := svc.AdvanceStatus(context.Background(), "o1", domain.StatusInProgress)
	if err != nil {
		t.Fatalf("assigned→in_progress: %v", err)
	}
	if order.Status != domain.StatusInProgress {
		t.Errorf("status: want in_progress, got %q", order.Status)
	}

	// Skipping ahead or moving backward is rejected.
	if _, err := svc.AdvanceStatus(context.Background(), "o1", domain.StatusPending); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("backward transition must fail, got %v", err)
	}

	seedOrder(orders, "o2", "electrical", "north")
	if _, err := svc.AdvanceStatus(context.Background(), "o2", domain.StatusCompleted); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("pending→completed must fail, got %v", err)
	}
	if _, err := svc.AdvanceStatus(context.Background(), "o2", domain.StatusAssigned); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("assignment via AdvanceStatus must fail, got %v", err)
	}
}

func TestWorkOrderService_CompletionReleasesLoad(t *testing.T) {
	svc, techs, orders := newWorkOrderFixture()
	seedTech(techs, "t1", "electrical", "north", 3) // saturated → busy
	seedOrder(orders, "o1", "electrical", "north")
	orders.byID["o1"].Status = domain.StatusInProgress
	orders.byID["o1"].AssignedTechnicianID = "t1"

	order, err := svc.AdvanceStatus(context.Background(), "o1", domain.StatusCompleted)
	if err != nil {
		t.Fatalf("in_progress→completed: %v", err)
	}
	if order.Status != domain.StatusCompleted {
		t.Errorf("status: want completed, got %q", order.Status)
	}
	// Completed orders keep their assignment fields.
	if order.AssignedTechnicianID != "t1" {
		t.Errorf("assignment fields must survive completion, got %q", order.AssignedTechnicianID)
	}

	tech, _ := techs.FindByID(context.Background(), "t1")
	if tech.CurrentLoad != 2 {
		t.Errorf("load: want 2 after release, got %d", tech.CurrentLoad)
	}
	if tech.Availability != domain.AvailabilityAvailable {
		t.Errorf("dropping below threshold must derive available, got %q", tech.Availability)
	}
}

func TestWorkOrderService_CompletionKeepsOfflineTechnicianOffline(t *testing.T) {
	svc, techs, orders := newWorkOrderFixture()
	seedTech(techs, "t1", "electrical", "north", 1)
	techs.byID["t1"].Availability = domain.AvailabilityOffline
	seedOrder(orders, "o1", "electrical", "north")
	orders.byID["o1"].Status = domain.StatusInProgress
	orders.byID["o1"].AssignedTechnicianID = "t1"

	if _, err := svc.AdvanceStatus(context.Background(), "o1", domain.StatusCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tech, _ := techs.FindByID(context.Background(), "t1")
	if tech.Availability != domain.AvailabilityOffline {
		t.Errorf("offline is externally controlled, got %q", tech.Availability)
	}
	if tech.CurrentLoad != 0 {
		t.Errorf("load: want 0, got %d", tech.CurrentLoad)
	}
}
