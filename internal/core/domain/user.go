package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
)

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// InvalidCredentialsError is a failed authentication attempt that has not yet
// triggered a lockout. It matches ErrInvalidCredentials under errors.Is.
type InvalidCredentialsError struct {
	AttemptsRemaining int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid credentials (%d attempts remaining)", e.AttemptsRemaining)
}

func (e *InvalidCredentialsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// AccountLockedError is returned while an account's lockout window is still
// open. It matches ErrAccountLocked under errors.Is.
type AccountLockedError struct {
	RetryAfter time.Duration
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked, retry in %s", e.RetryAfter.Round(time.Second))
}

func (e *AccountLockedError) Is(target error) bool {
	return target == ErrAccountLocked
}

// LoginAttemptRecord tracks consecutive authentication failures for one
// account. A nil BlockedUntil means the account is not locked.
type LoginAttemptRecord struct {
	FailureCount int        `json:"failure_count"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
}

// LockedAt reports whether the record holds a lock that is still in force at t.
func (r *LoginAttemptRecord) LockedAt(t time.Time) bool {
	return r.BlockedUntil != nil && t.Before(*r.BlockedUntil)
}
