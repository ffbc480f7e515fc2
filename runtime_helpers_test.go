package webapp

import (
	"testing"
)

// newTestRuntime returns a runtime on an 800x600 memory backend with a
// manual scheduler.
func newTestRuntime(t *testing.T, opts ...Option) (*Runtime, *MemoryBackend, *ManualScheduler) {
	t.Helper()
	backend := NewMemoryBackend(800, 600)
	sched := NewManualScheduler()
	rt, err := New(backend, append([]Option{WithScheduler(sched)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rt, backend, sched
}

func memSurface(e *Element) *MemorySurface {
	return e.Surface().(*MemorySurface)
}

// counter returns a compute func that counts its calls and copies src.
func counter(n *int, src string) AttrDef {
	return Compute(func(e *Element) any {
		*n++
		return e.Lookup(MustParseAddresses(src)[0])
	}, src)
}
