package webapp

import (
	"context"
)

// Post enqueues fn to run on the runtime's thread. Safe to call from any
// goroutine. It reports false when the queue is full or the runtime stopped.
func (r *Runtime) Post(fn func()) bool {
	select {
	case <-r.stopCh:
		return false
	default:
	}
	select {
	case r.queue <- fn:
		return true
	default:
		r.log.Errorf("update queue full; dropping update")
		return false
	}
}

// Drain runs queued updates until the queue is empty and returns how many
// ran. Updates queued by those updates run too.
func (r *Runtime) Drain() int {
	n := 0
	for {
		select {
		case fn := <-r.queue:
			fn()
			n++
		default:
			return n
		}
	}
}

// Run processes queued updates until ctx is done or Stop is called.
func (r *Runtime) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-r.queue:
			fn()
		case <-r.stopCh:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop makes Run return and rejects further posts. Stop is idempotent.
func (r *Runtime) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}
