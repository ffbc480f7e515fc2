package webapp

import "time"

// Debouncer delays fn until no Trigger has happened for the interval. Each
// Trigger cancels the pending run and schedules a fresh one.
type Debouncer struct {
	sched Scheduler
	delay time.Duration
	fn    func()

	stop func() bool
	seq  uint64
}

// NewDebouncer creates a debouncer running fn on sched.
func NewDebouncer(sched Scheduler, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{sched: sched, delay: delay, fn: fn}
}

// Trigger restarts the timer.
func (d *Debouncer) Trigger() {
	d.Cancel()
	seq := d.seq
	d.stop = d.sched.AfterFunc(d.delay, func() {
		// A stale expiration may already be queued when Stop loses the race.
		if seq != d.seq {
			return
		}
		d.stop = nil
		d.fn()
	})
}

// Cancel drops any pending run.
func (d *Debouncer) Cancel() {
	d.seq++
	if d.stop != nil {
		d.stop()
		d.stop = nil
	}
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool { return d.stop != nil }
