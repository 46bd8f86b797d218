package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fieldops/dispatch-system/internal/core/domain"
	"github.com/fieldops/dispatch-system/internal/core/ports"
)

// LockoutStore persists per-account failure records. Implementations must
// make RecordFailure an atomic read-modify-write so concurrent attempts for
// the same account cannot lose increments.
type LockoutStore interface {
	Get(ctx context.Context, username string) (*domain.LoginAttemptRecord, error)
	RecordFailure(ctx context.Context, username string) (*domain.LoginAttemptRecord, error)
	Update(ctx context.Context, username string, rec *domain.LoginAttemptRecord) error
	Clear(ctx context.Context, username string) error
}

const (
	// DefaultMaxFailures is the consecutive-failure count that triggers a lock.
	DefaultMaxFailures = 3
	// DefaultLockoutWindow is how long a triggered lock stays in force.
	DefaultLockoutWindow = 15 * time.Minute
)

// LoginGuard enforces the failed-attempt lockout state machine. Expiry is
// lazy: a lock past its window is cleared on the next attempt rather than by
// a background timer.
type LoginGuard struct {
	store       LockoutStore
	clock       ports.Clock
	maxFailures int
	window      time.Duration
}

func NewLoginGuard(store LockoutStore, clock ports.Clock, maxFailures int, window time.Duration) *LoginGuard {
	if maxFailures <= 0 {
		maxFailures = DefaultMaxFailures
	}
	if window <= 0 {
		window = DefaultLockoutWindow
	}
	return &LoginGuard{store: store, clock: clock, maxFailures: maxFailures, window: window}
}

// Preflight runs before credentials are consulted. While a lock is in force
// it returns AccountLockedError with the remaining time and the attempt must
// not touch credentials or counters. An expired lock is cleared here, so the
// current attempt starts from a clean record.
func (g *LoginGuard) Preflight(ctx context.Context, username string) error {
	rec, err := g.store.Get(ctx, username)
	if err != nil {
		return fmt.Errorf("lockout lookup: %w", err)
	}
	if rec == nil || rec.BlockedUntil == nil {
		return nil
	}

	now := g.clock.Now()
	if rec.LockedAt(now) {
		return &domain.AccountLockedError{RetryAfter: rec.BlockedUntil.Sub(now)}
	}

	if err := g.store.Clear(ctx, username); err != nil {
		return fmt.Errorf("clear expired lockout: %w", err)
	}
	return nil
}

// Failure records a failed attempt. Reaching the threshold sets the lock and
// returns AccountLockedError; otherwise InvalidCredentialsError reports how
// many attempts remain. Unknown accounts are recorded identically to wrong
// passwords so the error shape never reveals account existence.
func (g *LoginGuard) Failure(ctx context.Context, username string) error {
	rec, err := g.store.RecordFailure(ctx, username)
	if err != nil {
		return fmt.Errorf("record auth failure: %w", err)
	}

	if rec.FailureCount >= g.maxFailures {
		until := g.clock.Now().Add(g.window)
		rec.BlockedUntil = &until
		if err := g.store.Update(ctx, username, rec); err != nil {
			return fmt.Errorf("set lockout: %w", err)
		}
		return &domain.AccountLockedError{RetryAfter: g.window}
	}

	return &domain.InvalidCredentialsError{AttemptsRemaining: g.maxFailures - rec.FailureCount}
}

// Success resets the account's failure record after a correct password.
func (g *LoginGuard) Success(ctx context.Context, username string) error {
	return g.store.Clear(ctx, username)
}

// MemoryLockoutStore is a process-local LockoutStore. Failure counters do
// not outlive the process; deployments sharing state across instances use
// the Redis store instead.
type MemoryLockoutStore struct {
	mu      sync.Mutex
	records map[string]*domain.LoginAttemptRecord
}

func NewMemoryLockoutStore() *MemoryLockoutStore {
	return &MemoryLockoutStore{records: make(map[string]*domain.LoginAttemptRecord)}
}

func (s *MemoryLockoutStore) Get(_ context.Context, username string) (*domain.LoginAttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[username]
	if !ok {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (s *MemoryLockoutStore) RecordFailure(_ context.Context, username string) (*domain.LoginAttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[username]
	if !ok {
		rec = &domain.LoginAttemptRecord{}
		s.records[username] = rec
	}
	rec.FailureCount++
	clone := *rec
	return &clone, nil
}

func (s *MemoryLockoutStore) Update(_ context.Context, username string, rec *domain.LoginAttemptRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *rec
	s.records[username] = &clone
	return nil
}

func (s *MemoryLockoutStore) Clear(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, username)
	return nil
}
