package model

import (
	"fmt"
	"sync"
)

// Counts is an immutable snapshot of a run tally
type Counts struct {
	Total        int
	Completed    int
	Failed       int
	Skipped      int
	Cancelled    int
	NotAttempted int
}

// Accounted returns the number of items that reached a terminal outcome
func (c Counts) Accounted() int {
	return c.Completed + c.Failed + c.Skipped + c.Cancelled + c.NotAttempted
}

// Settled reports whether every item has reached a terminal outcome
func (c Counts) Settled() bool {
	return c.Accounted() == c.Total
}

// Summary returns the end-of-run summary line
func (c Counts) Summary() string {
	s := fmt.Sprintf("%d completed, %d skipped, %d failed", c.Completed, c.Skipped, c.Failed)
	if c.Cancelled > 0 || c.NotAttempted > 0 {
		s += fmt.Sprintf(", %d cancelled, %d not attempted", c.Cancelled, c.NotAttempted)
	}
	return s
}

// Tally is the shared run counter. Workers report outcomes concurrently;
// every update happens under a single mutex so snapshots are always exact.
// Invariant: Accounted() <= Total at all times, == Total once the run ends.
type Tally struct {
	mu     sync.Mutex
	counts Counts
}

// NewTally creates a tally for a run over total items
func NewTally(total int) *Tally {
	return &Tally{counts: Counts{Total: total}}
}

// Apply records one terminal outcome
func (t *Tally) Apply(o Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch o.Kind {
	case OutcomeSuccess:
		t.counts.Completed++
	case OutcomeFailed:
		t.counts.Failed++
	case OutcomeSkippedExists, OutcomeSkippedAgeRestricted, OutcomeSkippedAuthRequired:
		t.counts.Skipped++
	case OutcomeCancelled:
		t.counts.Cancelled++
	case OutcomeNotAttempted:
		t.counts.NotAttempted++
	}
}

// Snapshot returns a consistent copy of the current counts
func (t *Tally) Snapshot() Counts {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts
}
