package webapp

import (
	"fmt"
	"slices"
	"sync"
)

// Bus topics published by the runtime.
const (
	TopicCreated   = "created"   // data: *Element, after a subtree is initialized
	TopicDestroyed = "destroyed" // data: *Element, after a subtree is destroyed
	TopicCycle     = "cycle"     // data: *CycleReport
	TopicResize    = "resize"    // data: Rect, the new window size
)

// Bus is a topic-keyed event bus for cross-component communication. Each
// Runtime owns one; nothing is global.
type Bus struct {
	mu     sync.RWMutex
	topics map[string][]busListener
	once   map[string]func(any)
	seq    uint64
}

type busListener struct {
	id uint64
	fn func(any)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		topics: make(map[string][]busListener),
		once:   make(map[string]func(any)),
	}
}

// On adds a listener for topic and returns a func that removes it.
func (b *Bus) On(topic string, fn func(any)) func() {
	b.mu.Lock()
	b.seq++
	id := b.seq
	b.topics[topic] = append(b.topics[topic], busListener{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.topics[topic] = slices.DeleteFunc(b.topics[topic], func(l busListener) bool { return l.id == id })
	}
}

// Emit sends data to every listener of topic in registration order.
func (b *Bus) Emit(topic string, data any) {
	b.mu.RLock()
	listeners := slices.Clone(b.topics[topic])
	b.mu.RUnlock()

	for _, l := range listeners {
		l.fn(data)
	}
}

// Once registers a one-shot handler under a fresh token and returns it.
func (b *Bus) Once(fn func(any)) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	token := fmt.Sprintf("once-%d", b.seq)
	b.once[token] = fn
	return token
}

// EmitOnce runs and forgets the handler registered under token. Unknown
// tokens are ignored.
func (b *Bus) EmitOnce(token string, data any) {
	b.mu.Lock()
	fn := b.once[token]
	delete(b.once, token)
	b.mu.Unlock()

	if fn != nil {
		fn(data)
	}
}

// Listeners returns the number of listeners registered for topic.
func (b *Bus) Listeners(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
