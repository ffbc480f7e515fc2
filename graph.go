package webapp

import (
	"fmt"
	"slices"

	"github.com/grindlemire/go-webapp/internal/debug"
)

// maxPropagationSteps bounds a single write's cascade. Exceeding it means a
// dependency loop was introduced after initialization.
const maxPropagationSteps = 1 << 20

// ComputeFunc derives a cell's value from its owning element. It must
// tolerate Unset inputs.
type ComputeFunc func(e *Element) any

// CellRef is an index handle into a Graph. The zero CellRef is absent.
// A ref whose generation no longer matches its slot is also absent.
type CellRef struct {
	index uint32
	gen   uint32
}

// Valid reports whether the ref was ever assigned. It does not check that
// the cell is still alive; use Graph.Alive for that.
func (r CellRef) Valid() bool { return r.gen != 0 }

type listener struct {
	id uint64
	fn func(any)
}

type cell struct {
	gen  uint32
	live bool

	id       uint64
	owner    *Element
	name     string
	value    any
	sources  []Address
	resolved []CellRef
	compute  ComputeFunc

	subs       []CellRef
	listeners  []listener
	subscribed bool

	// pending is set while the cell awaits the initialization sweep.
	pending bool
}

// GraphStats summarizes the arena for teardown audits.
type GraphStats struct {
	Live          int // allocated cells
	Subscribed    int // cells with resolved sources installed
	Subscriptions int // total subscriber back-links
	Listeners     int // total update listeners
}

// Graph is the arena holding every cell of a runtime. Sources and
// subscribers are stored as CellRef pairs, so teardown is an explicit
// slice operation and stale links simply stop resolving.
type Graph struct {
	cells []cell
	free  []uint32
	stack []CellRef

	ids *IDAllocator
	log *debug.Logger

	listenerSeq uint64
}

// NewGraph creates an empty arena.
func NewGraph(ids *IDAllocator, log *debug.Logger) *Graph {
	if ids == nil {
		ids = NewIDAllocator()
	}
	if log == nil {
		log = debug.Discard()
	}
	return &Graph{ids: ids, log: log}
}

// get returns the live cell for ref, or nil. The pointer is only valid until
// the next allocation.
func (g *Graph) get(ref CellRef) *cell {
	if !ref.Valid() || int(ref.index) >= len(g.cells) {
		return nil
	}
	c := &g.cells[ref.index]
	if !c.live || c.gen != ref.gen {
		return nil
	}
	return c
}

// Alive reports whether ref addresses an allocated cell.
func (g *Graph) Alive(ref CellRef) bool {
	return g.get(ref) != nil
}

// Alloc creates an unsubscribed cell owned by owner.
func (g *Graph) Alloc(owner *Element, name string, def AttrDef) CellRef {
	var idx uint32
	if n := len(g.free); n > 0 {
		idx = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		g.cells = append(g.cells, cell{})
		idx = uint32(len(g.cells) - 1)
	}
	c := &g.cells[idx]
	gen := c.gen + 1
	*c = cell{
		gen:     gen,
		live:    true,
		id:      g.ids.Next(),
		owner:   owner,
		name:    name,
		value:   Unset,
		sources: slices.Clone(def.Sources),
		compute: def.Compute,
	}
	return CellRef{index: idx, gen: gen}
}

// Free releases the cell slot. The cell is unsubscribed first if needed.
func (g *Graph) Free(ref CellRef) {
	c := g.get(ref)
	if c == nil {
		return
	}
	if !g.log.Assert(!c.subscribed, "free of subscribed cell %s", g.Name(ref)) {
		g.Unsubscribe(ref)
		c = g.get(ref)
	}
	gen := c.gen
	*c = cell{gen: gen}
	g.free = append(g.free, ref.index)
}

// Name returns "id(element.attr)" for diagnostics.
func (g *Graph) Name(ref CellRef) string {
	c := g.get(ref)
	if c == nil {
		return "<dead>"
	}
	owner := "?"
	if c.owner != nil {
		owner = c.owner.ID()
	}
	return fmt.Sprintf("%d(%s.%s)", c.id, owner, c.name)
}

// Value returns the current value, or Unset.
func (g *Graph) Value(ref CellRef) any {
	c := g.get(ref)
	if c == nil {
		return Unset
	}
	return c.value
}

// Sources returns the declared source addresses.
func (g *Graph) Sources(ref CellRef) []Address {
	c := g.get(ref)
	if c == nil {
		return nil
	}
	return c.sources
}

// Resolved returns the sources resolved at subscribe time. Absent sources
// are zero refs.
func (g *Graph) Resolved(ref CellRef) []CellRef {
	c := g.get(ref)
	if c == nil {
		return nil
	}
	return c.resolved
}

// Subscribers returns the cells recomputed when ref changes, in
// registration order.
func (g *Graph) Subscribers(ref CellRef) []CellRef {
	c := g.get(ref)
	if c == nil {
		return nil
	}
	return c.subs
}

// Subscribe resolves the cell's sources relative to its owner and installs
// a back-link into every resolved source.
func (g *Graph) Subscribe(ref CellRef) {
	c := g.get(ref)
	if c == nil {
		return
	}
	if !g.log.Assert(!c.subscribed, "double subscribe of %s", g.Name(ref)) {
		return
	}
	owner, sources := c.owner, c.sources
	resolved := make([]CellRef, len(sources))
	for i, addr := range sources {
		target := owner.resolveCell(addr)
		if t := g.get(target); t != nil {
			t.subs = append(t.subs, ref)
			resolved[i] = target
		} else {
			g.log.Tracef("unresolved source %s of %s", addr, g.Name(ref))
		}
	}
	c = g.get(ref)
	c.resolved = resolved
	c.subscribed = true
}

// Unsubscribe removes the back-links installed by Subscribe.
func (g *Graph) Unsubscribe(ref CellRef) {
	c := g.get(ref)
	if c == nil || !c.subscribed {
		return
	}
	for _, src := range c.resolved {
		s := g.get(src)
		if s == nil {
			continue
		}
		if i := slices.Index(s.subs, ref); i >= 0 {
			s.subs = slices.Delete(s.subs, i, i+1)
		}
	}
	c.resolved = nil
	c.subscribed = false
}

// Reset re-declares the cell's sources, and its compute function when one is
// given, re-resolving immediately. The value is kept.
func (g *Graph) Reset(ref CellRef, sources []Address, compute ComputeFunc) {
	c := g.get(ref)
	if c == nil {
		return
	}
	wasSubscribed := c.subscribed
	g.Unsubscribe(ref)
	c = g.get(ref)
	c.sources = slices.Clone(sources)
	if compute != nil {
		c.compute = compute
	}
	if wasSubscribed {
		g.Subscribe(ref)
	}
}

// OnUpdated registers fn to run with each new value. The returned func
// removes it.
func (g *Graph) OnUpdated(ref CellRef, fn func(any)) func() {
	c := g.get(ref)
	if c == nil || fn == nil {
		return func() {}
	}
	g.listenerSeq++
	id := g.listenerSeq
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	return func() {
		c := g.get(ref)
		if c == nil {
			return
		}
		c.listeners = slices.DeleteFunc(c.listeners, func(l listener) bool { return l.id == id })
	}
}

// Set writes v and synchronously recomputes every dependent cell before
// returning. It reports whether the value changed.
func (g *Graph) Set(ref CellRef, v any) bool {
	base := len(g.stack)
	if !g.store(ref, v) {
		return false
	}
	g.drain(base)
	return true
}

// Update recomputes the cell if all of its sources hold values.
func (g *Graph) Update(ref CellRef) {
	base := len(g.stack)
	g.recompute(ref)
	g.drain(base)
}

// Ready reports whether every resolved source is present and holds a value.
func (g *Graph) Ready(ref CellRef) bool {
	c := g.get(ref)
	if c == nil {
		return false
	}
	return g.sourcesReady(c)
}

func (g *Graph) sourcesReady(c *cell) bool {
	for _, src := range c.resolved {
		s := g.get(src)
		if s == nil || IsUnset(s.value) {
			return false
		}
	}
	return len(c.resolved) == len(c.sources)
}

// store writes without draining. Subscribers are pushed so that the first
// registered is popped first.
func (g *Graph) store(ref CellRef, v any) bool {
	c := g.get(ref)
	if c == nil {
		g.log.Assert(false, "write to dead cell %v", ref)
		return false
	}
	if IsUnset(v) || sameValue(c.value, v) {
		return false
	}
	c.value = v
	if g.log.Enabled(debug.LevelTrace) {
		g.log.Tracef("update: %s = %v", g.Name(ref), v)
	}

	if len(c.listeners) > 0 {
		for _, l := range slices.Clone(c.listeners) {
			l.fn(v)
		}
		// Listeners may destroy the owner or grow the arena.
		if c = g.get(ref); c == nil {
			return true
		}
	}

	for i := len(c.subs) - 1; i >= 0; i-- {
		sub := c.subs[i]
		if s := g.get(sub); s != nil && !s.pending {
			g.stack = append(g.stack, sub)
		}
	}
	return true
}

func (g *Graph) recompute(ref CellRef) {
	c := g.get(ref)
	if c == nil || c.compute == nil || !g.sourcesReady(c) {
		return
	}
	owner, compute := c.owner, c.compute
	g.store(ref, compute(owner))
}

// drain pops and recomputes until the stack is back to base.
func (g *Graph) drain(base int) {
	for steps := 0; len(g.stack) > base; steps++ {
		if steps >= maxPropagationSteps {
			g.log.Assert(false, "propagation exceeded %d steps; dropping %d pending updates", maxPropagationSteps, len(g.stack)-base)
			g.stack = g.stack[:base]
			return
		}
		top := len(g.stack) - 1
		ref := g.stack[top]
		g.stack = g.stack[:top]
		g.recompute(ref)
	}
}

// Stats counts live cells and links.
func (g *Graph) Stats() GraphStats {
	var s GraphStats
	for i := range g.cells {
		c := &g.cells[i]
		if !c.live {
			continue
		}
		s.Live++
		if c.subscribed {
			s.Subscribed++
		}
		s.Subscriptions += len(c.subs)
		s.Listeners += len(c.listeners)
	}
	return s
}
