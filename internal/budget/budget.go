// Package budget provides a bounded token ledger shared by the engines.
package budget

import (
	"errors"
	"fmt"
)

// ErrExhausted reports a consume request that exceeds the remaining balance.
var ErrExhausted = errors.New("token budget exhausted")

// Tracker is a bounded counter of reasoning-effort tokens. The remaining
// balance is monotonically non-increasing and never goes negative.
type Tracker struct {
	budget    int
	remaining int
}

// NewTracker creates a tracker with the given total budget.
func NewTracker(total int) (*Tracker, error) {
	if total < 0 {
		return nil, fmt.Errorf("budget must be non-negative, got %d", total)
	}
	return &Tracker{budget: total, remaining: total}, nil
}

// Budget returns the initial allowance.
func (t *Tracker) Budget() int { return t.budget }

// Remaining returns the unconsumed balance.
func (t *Tracker) Remaining() int { return t.remaining }

// Used returns the consumed amount.
func (t *Tracker) Used() int { return t.budget - t.remaining }

// Consume deducts n tokens. It fails without deducting anything when n
// exceeds the remaining balance.
func (t *Tracker) Consume(n int) error {
	if n < 0 {
		return fmt.Errorf("cannot consume negative amount %d", n)
	}
	if n > t.remaining {
		return fmt.Errorf("%w: requested %d, remaining %d", ErrExhausted, n, t.remaining)
	}
	t.remaining -= n
	return nil
}
