// Package throttle implements the politeness delays applied between
// extraction requests and the exponential backoff applied between retry
// attempts. Delays carry bounded random jitter; the random source is
// injectable so tests are reproducible.
package throttle

import (
	"math/rand"
	"sync"
	"time"
)

// Default delay parameters
const (
	// DefaultDispatchDelay is the base pause between dispatching
	// consecutive downloads, kept conservative to avoid upstream abuse
	// defenses.
	DefaultDispatchDelay = 1500 * time.Millisecond

	// DefaultDispatchJitter is the upper bound of the random addition to
	// the dispatch delay.
	DefaultDispatchJitter = 500 * time.Millisecond

	// DefaultBackoffBase is the first retry delay; attempt n waits
	// base * 2^n.
	DefaultBackoffBase = 1 * time.Second

	// DefaultBackoffCap bounds the retry delay regardless of attempt count.
	DefaultBackoffCap = 30 * time.Second

	// DefaultBackoffJitter is the upper bound of the random addition to a
	// retry delay.
	DefaultBackoffJitter = 1 * time.Second
)

// Policy computes dispatch and retry delays. A Policy has no side effects
// beyond elapsed real time; callers sleep on the returned durations.
// Safe for concurrent use.
type Policy struct {
	DispatchDelay  time.Duration
	DispatchJitter time.Duration
	BackoffBase    time.Duration
	BackoffCap     time.Duration
	BackoffJitter  time.Duration

	mu  sync.Mutex // guards rng, which is not safe for concurrent use
	rng *rand.Rand
}

// NewPolicy creates a policy with default delays and a time-seeded random
// source
func NewPolicy() *Policy {
	return NewPolicyWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewPolicyWithRand creates a policy with default delays and the given
// random source. Tests inject a fixed seed for deterministic delays.
func NewPolicyWithRand(rng *rand.Rand) *Policy {
	return &Policy{
		DispatchDelay:  DefaultDispatchDelay,
		DispatchJitter: DefaultDispatchJitter,
		BackoffBase:    DefaultBackoffBase,
		BackoffCap:     DefaultBackoffCap,
		BackoffJitter:  DefaultBackoffJitter,
		rng:            rng,
	}
}

// NextDispatchDelay returns the pause to apply before dispatching the next
// download: base delay plus bounded random jitter.
func (p *Policy) NextDispatchDelay() time.Duration {
	return p.DispatchDelay + p.jitter(p.DispatchJitter)
}

// NextBackoff returns the pause to apply before retry number attempt
// (starting at 0): min(cap, base * 2^attempt + jitter). The result is
// non-decreasing in attempt and never exceeds the configured cap.
func (p *Policy) NextBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	d := p.BackoffCap
	// 1<<attempt overflows past 62; anything that far out is capped anyway
	if attempt < 62 {
		d = p.BackoffBase * time.Duration(1<<uint(attempt))
		if d <= 0 || d > p.BackoffCap {
			d = p.BackoffCap
		} else {
			d += p.jitter(p.BackoffJitter)
			if d > p.BackoffCap {
				d = p.BackoffCap
			}
		}
	}
	return d
}

// jitter returns a uniformly random duration in [0, max)
func (p *Policy) jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Duration(p.rng.Int63n(int64(max)))
}
