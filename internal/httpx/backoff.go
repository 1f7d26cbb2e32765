package httpx

import (
	"math"
	"math/rand"
	"time"
)

// Backoff computes exponential backoff delays with optional jitter.
type Backoff struct {
	base   time.Duration
	max    time.Duration
	jitter float64
}

// NewBackoff returns a Backoff clamped to sane defaults.
func NewBackoff(base, max time.Duration, jitter float64) Backoff {
	if base <= 0 {
		base = 50 * time.Millisecond
	}
	if max <= 0 {
		max = time.Second
	}
	if jitter < 0 {
		jitter = 0
	}
	return Backoff{base: base, max: max, jitter: math.Min(jitter, 1)}
}

// ForAttempt returns the delay before retrying the given attempt (0-indexed).
func (b Backoff) ForAttempt(attempt int) time.Duration {
	delay := b.base
	if attempt > 0 {
		if attempt > 30 {
			attempt = 30
		}
		delay = time.Duration(float64(b.base) * float64(uint(1)<<uint(attempt)))
	}
	if delay <= 0 || delay > b.max {
		delay = b.max
	}
	if b.jitter > 0 {
		factor := 1 + (rand.Float64()*2-1)*b.jitter
		delay = time.Duration(float64(delay) * factor)
	}
	return delay
}
