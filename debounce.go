package arcgallery

import "time"

const (
	// SnapDelay is how long input must be idle before the target snaps.
	SnapDelay = 200 * time.Millisecond
	// ResizeSettle is how long the width must stay unchanged before the
	// layout is recomputed.
	ResizeSettle = 200 * time.Millisecond
)

// delayedTask is a single cancellable deadline on the gallery clock.
// Scheduling again replaces the previous deadline, so a burst of input keeps
// exactly one pending task instead of one per event.
type delayedTask struct {
	deadline time.Duration
	pending  bool
}

// schedule arms the task to fire delay after now, replacing any pending deadline.
func (t *delayedTask) schedule(now, delay time.Duration) {
	t.deadline = now + delay
	t.pending = true
}

func (t *delayedTask) cancel() {
	t.pending = false
}

// due reports whether the task is pending and its deadline has passed. A due
// task is disarmed before returning true.
func (t *delayedTask) due(now time.Duration) bool {
	if !t.pending || now < t.deadline {
		return false
	}
	t.pending = false
	return true
}

// secondsToDuration converts a frame dt in seconds to the clock unit.
// Non-finite or negative values advance nothing.
func secondsToDuration(dt float64) time.Duration {
	if !finite(dt) || dt <= 0 {
		return 0
	}
	return time.Duration(dt * float64(time.Second))
}
