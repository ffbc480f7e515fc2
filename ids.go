package webapp

import "sync/atomic"

// IDAllocator hands out monotonic ids. Each Runtime owns one, so tests
// never share id state.
type IDAllocator struct {
	next atomic.Uint64
}

// NewIDAllocator returns an allocator whose first id is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns the next id.
func (a *IDAllocator) Next() uint64 {
	return a.next.Add(1)
}
