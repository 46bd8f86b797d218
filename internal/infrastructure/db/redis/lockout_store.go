package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fieldops/dispatch-system/internal/core/domain"
)

// Keys expire well after any lockout window so stale counters from abandoned
// attempts clean themselves up.
const lockoutTTL = time.Hour

// LockoutStore keeps per-account login failure records in Redis so that
// multiple processes share one lockout state. Key format: lockout:<username>.
// HIncrBy makes the failure increment atomic across processes.
type LockoutStore struct {
	client *redis.Client
}

// NewLockoutStore creates a LockoutStore wrapping the given Redis client.
func NewLockoutStore(client *redis.Client) *LockoutStore {
	return &LockoutStore{client: client}
}

func (s *LockoutStore) Get(ctx context.Context, username string) (*domain.LoginAttemptRecord, error) {
	vals, err := s.client.HGetAll(ctx, s.key(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("lockout get: %w", err)
	}
	if len(vals) == 0 {
		return nil, nil
	}
	return recordFromHash(vals), nil
}

func (s *LockoutStore) RecordFailure(ctx context.Context, username string) (*domain.LoginAttemptRecord, error) {
	key := s.key(username)

	count, err := s.client.HIncrBy(ctx, key, "failures", 1).Result()
	if err != nil {
		return nil, fmt.Errorf("lockout increment: %w", err)
	}
	if err := s.client.Expire(ctx, key, lockoutTTL).Err(); err != nil {
		return nil, fmt.Errorf("lockout expire: %w", err)
	}

	rec := &domain.LoginAttemptRecord{FailureCount: int(count)}
	blocked, err := s.client.HGet(ctx, key, "blocked_until").Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("lockout read block: %w", err)
	}
	if blocked != "" {
		if t, parseErr := time.Parse(time.RFC3339Nano, blocked); parseErr == nil {
			rec.BlockedUntil = &t
		}
	}
	return rec, nil
}

func (s *LockoutStore) Update(ctx context.Context, username string, rec *domain.LoginAttemptRecord) error {
	key := s.key(username)

	fields := map[string]interface{}{"failures": rec.FailureCount}
	if rec.BlockedUntil != nil {
		fields["blocked_until"] = rec.BlockedUntil.UTC().Format(time.RFC3339Nano)
	}

	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("lockout update: %w", err)
	}
	return s.client.Expire(ctx, key, lockoutTTL).Err()
}

func (s *LockoutStore) Clear(ctx context.Context, username string) error {
	return s.client.Del(ctx, s.key(username)).Err()
}

func (s *LockoutStore) key(username string) string {
	return fmt.Sprintf("lockout:%s", username)
}

func recordFromHash(vals map[string]string) *domain.LoginAttemptRecord {
	rec := &domain.LoginAttemptRecord{}
	if f, ok := vals["failures"]; ok {
		if n, err := strconv.Atoi(f); err == nil {
			rec.FailureCount = n
		}
	}
	if b, ok := vals["blocked_until"]; ok && b != "" {
		if t, err := time.Parse(time.RFC3339Nano, b); err == nil {
			rec.BlockedUntil = &t
		}
	}
	return rec
}
