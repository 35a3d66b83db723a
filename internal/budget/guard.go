// Package budget enforces process-wide ceilings on billed external calls.
package budget

import (
	"sync"

	"github.com/rotisserie/eris"
)

// ErrExhausted signals that a channel's call budget has been fully spent.
// Callers treat this as a graceful stop, not a failure.
var ErrExhausted = eris.New("budget: exhausted")

// Guard counts billed calls per named channel against a hard ceiling.
// It is shared by all concurrent discovery runs in the process; a run's
// own per-invocation cap is tracked separately by the run itself.
type Guard struct {
	mu     sync.Mutex
	limits map[string]int
	used   map[string]int
}

// NewGuard creates a Guard with the given per-channel limits. A channel
// absent from limits is unlimited.
func NewGuard(limits map[string]int) *Guard {
	l := make(map[string]int, len(limits))
	for ch, n := range limits {
		l[ch] = n
	}
	return &Guard{
		limits: l,
		used:   make(map[string]int),
	}
}

// CanSpend reports whether one more call on the channel would stay within
// the limit. The answer may be stale by the time the caller acts on it;
// use TrySpend to check and reserve in one step.
func (g *Guard) CanSpend(channel string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remainingLocked(channel) != 0
}

// TrySpend reserves one call on the channel if the limit allows it.
// Check and increment happen under one lock, so concurrent runs can
// never jointly overshoot the limit.
func (g *Guard) TrySpend(channel string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.remainingLocked(channel) == 0 {
		return false
	}
	g.used[channel]++
	return true
}

// Spend records one call on the channel unconditionally. Used when the
// call has already been made (e.g. reconciling after a provider response).
func (g *Guard) Spend(channel string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.used[channel]++
}

// Used returns the number of calls recorded against the channel.
func (g *Guard) Used(channel string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.used[channel]
}

// Remaining returns how many more calls the channel allows. Unlimited
// channels report -1.
func (g *Guard) Remaining(channel string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remainingLocked(channel)
}

func (g *Guard) remainingLocked(channel string) int {
	limit, ok := g.limits[channel]
	if !ok {
		return -1
	}
	left := limit - g.used[channel]
	if left < 0 {
		return 0
	}
	return left
}
