package source

import (
	"time"

	"golang.org/x/time/rate"
)

// Gate enforces a minimum interval between marked events.
// It is safe for concurrent use, so one Gate can be shared by every Source
// to space downloads across all configured locations.
type Gate struct {
	interval time.Duration
	limiter  *rate.Limiter
}

// NewGate creates a Gate that allows one event per interval.
// An interval of zero or less disables the gate.
func NewGate(interval time.Duration) *Gate {
	g := &Gate{interval: interval}
	if interval > 0 {
		g.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return g
}

// Interval returns the configured minimum interval.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

// Allow reports whether at least one interval has elapsed since the last
// Mark. It does not record anything.
func (g *Gate) Allow(now time.Time) bool {
	if g.limiter == nil {
		return true
	}
	return g.limiter.TokensAt(now) >= 1
}

// Take claims the gate at now if it is open and reports whether it did.
// Check and claim happen atomically, so among concurrent callers sharing
// the Gate only one wins per interval.
func (g *Gate) Take(now time.Time) bool {
	if g.limiter == nil {
		return true
	}
	return g.limiter.AllowN(now, 1)
}

// Mark records an event at now. Marks made while the gate is closed push
// the next opening further out.
func (g *Gate) Mark(now time.Time) {
	if g.limiter == nil {
		return
	}
	g.limiter.ReserveN(now, 1)
}
