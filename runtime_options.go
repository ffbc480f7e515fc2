package webapp

import (
	"fmt"

	"github.com/grindlemire/go-webapp/internal/debug"
)

// Option is a functional option for configuring a Runtime.
type Option func(*Runtime) error

// WithLogger sets the logger for diagnostics and traces.
func WithLogger(l *debug.Logger) Option {
	return func(r *Runtime) error {
		if l == nil {
			return fmt.Errorf("logger must not be nil")
		}
		r.log = l
		return nil
	}
}

// WithScheduler replaces the timer source used by debounced operations.
func WithScheduler(s Scheduler) Option {
	return func(r *Runtime) error {
		if s == nil {
			return fmt.Errorf("scheduler must not be nil")
		}
		r.sched = s
		return nil
	}
}

// WithIDAllocator shares an id allocator between runtimes.
func WithIDAllocator(ids *IDAllocator) Option {
	return func(r *Runtime) error {
		r.ids = ids
		return nil
	}
}

// WithBus uses an existing event bus.
func WithBus(b *Bus) Option {
	return func(r *Runtime) error {
		r.bus = b
		return nil
	}
}

// WithResolver replaces the address resolver injected into every element.
func WithResolver(fn Resolver) Option {
	return func(r *Runtime) error {
		if fn == nil {
			return fmt.Errorf("resolver must not be nil")
		}
		r.resolver = fn
		return nil
	}
}

// WithLoader sets the text resource loader.
func WithLoader(l *Loader) Option {
	return func(r *Runtime) error {
		r.loader = l
		return nil
	}
}

// WithConfig sets the configuration. Options applied later still win.
func WithConfig(cfg Config) Option {
	return func(r *Runtime) error {
		if cfg.QueueSize < 0 {
			return fmt.Errorf("queue size must not be negative")
		}
		r.cfg = cfg
		return nil
	}
}
