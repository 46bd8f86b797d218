package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fieldops/dispatch-system/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password, email, role string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, email, role string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, email, role)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, email, role string) (*domain.User, error) {
			if username != "alice" || role != "supervisor" {
				t.Fatalf("unexpected args: %s %s", username, role)
			}
			return &domain.User{Username: username, Role: role}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"secret-pass","email":"a@example.com","role":"supervisor"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != "supervisor" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, email, role string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"bob","password":"secret-pass","role":"admin"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_RejectsUnknownRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, email, role string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"bob","password":"secret-pass","role":"technician"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, email, role string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", &domain.User{Username: "alice", Role: domain.RoleSupervisor}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, &domain.InvalidCredentialsError{AttemptsRemaining: 2}
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_AccountLocked(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, &domain.AccountLockedError{RetryAfter: 10 * time.Minute}
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got %v", err)
	}
}
