package ports

import (
	"context"

	"github.com/fieldops/dispatch-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email, role string) (*domain.User, error)
	// Login authenticates a user and returns a signed token. Failed attempts
	// feed the per-account lockout; errors carry remaining attempts or
	// remaining lockout time for user-facing messages.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
