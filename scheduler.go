package webapp

import (
	"slices"
	"time"
)

// Scheduler runs fn after d on the runtime's thread. The returned func
// stops the timer and reports whether it was still pending.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

// timerScheduler backs timers with time.AfterFunc and hands expirations to
// the runtime queue, so callbacks never run concurrently with the tree.
type timerScheduler struct {
	post func(func()) bool
}

func (s timerScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, func() { s.post(fn) })
	return t.Stop
}

// ManualScheduler is a Scheduler driven by Advance. Callbacks run on the
// caller's goroutine, which makes debounced behaviour deterministic in
// tests and headless tools.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

// NewManualScheduler creates a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc schedules fn at now+d.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	s.seq++
	t := &manualTimer{at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return func() bool {
		i := slices.Index(s.timers, t)
		if i < 0 {
			return false
		}
		s.timers = slices.Delete(s.timers, i, i+1)
		return true
	}
}

// Advance moves time forward by d, firing due timers in deadline order.
func (s *ManualScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		i := s.nextDue(end)
		if i < 0 {
			break
		}
		t := s.timers[i]
		s.timers = slices.Delete(s.timers, i, i+1)
		s.now = t.at
		t.fn()
	}
	s.now = end
}

func (s *ManualScheduler) nextDue(end time.Duration) int {
	best := -1
	for i, t := range s.timers {
		if t.at > end {
			continue
		}
		if best < 0 || t.at < s.timers[best].at || (t.at == s.timers[best].at && t.seq < s.timers[best].seq) {
			best = i
		}
	}
	return best
}

// Pending returns the number of scheduled timers.
func (s *ManualScheduler) Pending() int { return len(s.timers) }
