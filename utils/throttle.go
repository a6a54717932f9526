package utils

import (
	"context"
	"sync"
	"time"
)

// Throttle enforces a minimum gap between the end of one external call and
// the start of the next.
type Throttle struct {
	interval time.Duration
	mu       sync.Mutex
	last     time.Time
}

// NewThrottle creates a Throttle with the given minimum gap.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Interval reports the configured gap.
func (t *Throttle) Interval() time.Duration { return t.interval }

// Do waits out the remaining gap, runs fn, and records when it finished.
func (t *Throttle) Do(ctx context.Context, fn func() error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.last.IsZero() {
		if wait := t.interval - time.Since(t.last); wait > 0 {
			if err := Sleep(ctx, wait); err != nil {
				return err
			}
		}
	}
	err := fn()
	t.last = time.Now()
	return err
}

// IDSet is a set of listing identifiers.
type IDSet map[string]struct{}

// NewIDSet creates a set holding ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add returns true if the id was newly added, false if already present.
func (s IDSet) Add(id string) bool {
	if _, exists := s[id]; exists {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Contains returns true if the id is in the set.
func (s IDSet) Contains(id string) bool {
	_, exists := s[id]
	return exists
}

// Size returns the number of ids tracked.
func (s IDSet) Size() int { return len(s) }
