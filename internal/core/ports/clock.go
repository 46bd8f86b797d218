package ports

import "time"

// Clock is the injectable time source. Production code uses SystemClock;
// tests substitute a fake so lockout expiry and assignment timestamps are
// deterministic.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
