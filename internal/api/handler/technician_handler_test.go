package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fieldops/dispatch-system/internal/core/domain"
	"github.com/fieldops/dispatch-system/internal/core/ports"
)

type stubTechnicianService struct {
	createFn func(ctx context.Context, input ports.CreateTechnicianInput) (*domain.Technician, error)
	getFn    func(ctx context.Context, id string) (*domain.Technician, error)
	listFn   func(ctx context.Context, filter ports.ListTechniciansFilter) ([]*domain.Technician, error)
}

func (s *stubTechnicianService) CreateTechnician(ctx context.Context, input ports.CreateTechnicianInput) (*domain.Technician, error) {
	return s.createFn(ctx, input)
}

func (s *stubTechnicianService) GetTechnician(ctx context.Context, id string) (*domain.Technician, error) {
	return s.getFn(ctx, id)
}

func (s *stubTechnicianService) ListTechnicians(ctx context.Context, filter ports.ListTechniciansFilter) ([]*domain.Technician, error) {
	return s.listFn(ctx, filter)
}

func TestTechnicianHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubTechnicianService{
		createFn: func(ctx context.Context, input ports.CreateTechnicianInput) (*domain.Technician, error) {
			if input.Specialty != "plumbing" || input.Zone != "centro" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Technician{ID: "tech_1", Name: input.Name, Availability: domain.AvailabilityAvailable}, nil
		},
	}
	handler := NewTechnicianHandler(stub)

	body := strings.NewReader(`{"name":"Marco Pérez","email":"marco@fieldops.mx","phone":"+52 55 1111 2222","specialty":"plumbing","zone":"centro"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/technicians", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["availability"] != string(domain.AvailabilityAvailable) {
		t.Fatalf("new technician should start available, got %+v", resp)
	}
}

func TestTechnicianHandler_Create_MissingEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubTechnicianService{
		createFn: func(ctx context.Context, input ports.CreateTechnicianInput) (*domain.Technician, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTechnicianHandler(stub)

	body := strings.NewReader(`{"name":"Marco Pérez","phone":"+52 55 1111 2222","specialty":"plumbing","zone":"centro"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/technicians", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestTechnicianHandler_List_PassesFilters(t *testing.T) {
	e := newTestEcho()
	stub := &stubTechnicianService{
		listFn: func(ctx context.Context, filter ports.ListTechniciansFilter) ([]*domain.Technician, error) {
			if filter.Zone != "norte" || filter.Specialty != "hvac" || filter.Availability != "available" {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			return []*domain.Technician{{ID: "tech_2", Zone: "norte", Specialty: "hvac"}}, nil
		},
	}
	handler := NewTechnicianHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/technicians?zone=norte&specialty=hvac&availability=available", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTechnicianHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubTechnicianService{
		getFn: func(ctx context.Context, id string) (*domain.Technician, error) {
			return nil, domain.ErrTechnicianNotFound
		},
	}
	handler := NewTechnicianHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/technicians/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := handler.Get(c)
	if !errors.Is(err, domain.ErrTechnicianNotFound) {
		t.Fatalf("expected ErrTechnicianNotFound, got %v", err)
	}
}
