package engine

import (
	"sync"
	"time"
)

// CadenceTracker exposes the progress of the wait between two cycles as an observable
// value. The engine marks each cycle start; any caller can poll elapsed and remaining time
// for progress reporting.
type CadenceTracker struct {
	mut        sync.RWMutex
	interval   time.Duration
	cycleStart time.Time
}

// NewCadenceTracker creates a tracker for the provided poll interval
func NewCadenceTracker(interval time.Duration) *CadenceTracker {
	return &CadenceTracker{
		interval: interval,
	}
}

// MarkCycleStart records the moment the current cycle began
func (tracker *CadenceTracker) MarkCycleStart(now time.Time) {
	tracker.mut.Lock()
	tracker.cycleStart = now
	tracker.mut.Unlock()
}

// Interval returns the poll cadence
func (tracker *CadenceTracker) Interval() time.Duration {
	return tracker.interval
}

// Elapsed returns the time spent since the current cycle began
func (tracker *CadenceTracker) Elapsed(now time.Time) time.Duration {
	tracker.mut.RLock()
	defer tracker.mut.RUnlock()

	if tracker.cycleStart.IsZero() {
		return 0
	}

	return now.Sub(tracker.cycleStart)
}

// Remaining returns the time left until the next cycle is due, never negative
func (tracker *CadenceTracker) Remaining(now time.Time) time.Duration {
	remaining := tracker.interval - tracker.Elapsed(now)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// NextCycleAt returns the moment the next cycle is due
func (tracker *CadenceTracker) NextCycleAt() time.Time {
	tracker.mut.RLock()
	defer tracker.mut.RUnlock()

	return tracker.cycleStart.Add(tracker.interval)
}
