package feed

import "time"

// task is a cancellable delayed callback. It is only touched from the
// controller loop; the timer goroutine just reports back the sequence
// number it was scheduled with, and the loop ignores stale numbers.
type task struct {
	timer *time.Timer
	seq   uint64
}

// schedule cancels any pending run and arranges for fire(seq) after d.
func (t *task) schedule(d time.Duration, fire func(seq uint64)) {
	t.cancel()
	seq := t.seq
	t.timer = time.AfterFunc(d, func() { fire(seq) })
}

// cancel stops the pending run. A run whose timer already fired is
// invalidated through the sequence bump.
func (t *task) cancel() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
}

// current reports whether seq belongs to the latest scheduled run, and
// consumes it.
func (t *task) current(seq uint64) bool {
	if t.timer == nil || seq != t.seq {
		return false
	}
	t.timer = nil
	return true
}
