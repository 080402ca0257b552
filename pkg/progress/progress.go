// Package progress tracks multi-step operations and pushes snapshots to a
// caller-supplied hook. Installations know their step count up front, so the
// tracker works with a fixed total and a completed counter.
package progress

import "sync"

// Snapshot is an immutable view of tracker state at notification time.
type Snapshot struct {
	Completed int
	Total     int
	Fraction  float64 // 0..1
	Status    string
}

// Hooks carries callbacks for progress notifications.
// All fields are optional; nil callbacks are skipped.
type Hooks struct {
	OnProgress func(Snapshot)
}

// Tracker counts completed steps out of a fixed total. Safe for concurrent
// use; the hook is invoked outside the tracker lock.
type Tracker struct {
	mu        sync.Mutex
	total     int
	completed int
	status    string
	hooks     Hooks
}

// New creates a tracker for the given number of steps. Totals below one are
// raised to one so Fraction stays well-defined.
func New(total int, hooks Hooks) *Tracker {
	if total < 1 {
		total = 1
	}
	return &Tracker{total: total, hooks: hooks}
}

// SetStatus updates the status line and notifies the hook without advancing
// the step counter.
func (t *Tracker) SetStatus(status string) {
	t.mu.Lock()
	t.status = status
	snap := t.snapshotLocked()
	t.mu.Unlock()
	t.emit(snap)
}

// StepDone marks one step complete and notifies the hook. The counter is
// clamped at the configured total.
func (t *Tracker) StepDone() {
	t.mu.Lock()
	if t.completed < t.total {
		t.completed++
	}
	snap := t.snapshotLocked()
	t.mu.Unlock()
	t.emit(snap)
}

// Snapshot returns the current tracker state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() Snapshot {
	return Snapshot{
		Completed: t.completed,
		Total:     t.total,
		Fraction:  float64(t.completed) / float64(t.total),
		Status:    t.status,
	}
}

func (t *Tracker) emit(s Snapshot) {
	if t.hooks.OnProgress != nil {
		t.hooks.OnProgress(s)
	}
}
