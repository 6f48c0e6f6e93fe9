package service

import (
	"math"
	"math/rand/v2"
	"time"
)

// Backoff spaces out polls of an empty queue and retries after registry errors.
type Backoff struct {
	Min    time.Duration
	Max    time.Duration
	Factor float64
	Jitter bool
}

func NewBackoff(min, max time.Duration, factor float64) *Backoff {
	return &Backoff{
		Min:    min,
		Max:    max,
		Factor: factor,
		Jitter: true,
	}
}

// Duration returns the wait before attempt. Attempt 0 and below wait Min.
func (b *Backoff) Duration(attempt int) time.Duration {
	if attempt <= 0 {
		return b.Min
	}

	d := float64(b.Min) * math.Pow(b.Factor, float64(attempt-1))
	if d > float64(b.Max) {
		d = float64(b.Max)
	}

	if b.Jitter {
		d *= 0.5 + rand.Float64()*0.5
	}
	return time.Duration(d)
}
