package webapp

import "slices"

type lifecycle uint8

const (
	stateConstructed lifecycle = iota
	stateAttached
	stateInitialized
	stateDetached
	stateDestroyed
)

// Element is a node of the composed tree. It owns its attribute cells, its
// children and exactly one backing surface.
type Element struct {
	rt       *Runtime
	id       string
	template *Template
	depth    int

	// Tree structure (single source of truth)
	parent   *Element
	children []*Element

	cells   map[string]CellRef
	order   []string
	statics map[string]any

	surface     Surface
	resolver    Resolver
	sideEffects map[string]func()
	behavior    behavior
	item        *Item // assigned list record

	hooks   []updateHook
	hookSeq int

	state lifecycle
}

type updateHook struct {
	id int
	fn func(name string, v any)
}

// ID returns the hierarchical id: the parent's id, a dot, and the template
// name.
func (e *Element) ID() string { return e.id }

// Name returns the template name.
func (e *Element) Name() string { return e.template.Name }

// Kind returns the template kind.
func (e *Element) Kind() Kind { return e.template.Kind }

// Template returns the template the element was built from.
func (e *Element) Template() *Template { return e.template }

// Parent returns the parent element, or nil if this is a root.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child elements.
func (e *Element) Children() []*Element { return e.children }

// Child returns the i-th child, or nil.
func (e *Element) Child(i int) *Element {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// Root returns the ancestor at the template's nesting depth, i.e. the root
// of the template instance this element belongs to.
func (e *Element) Root() *Element {
	r := e
	for i := 0; i < e.depth && r != nil; i++ {
		r = r.parent
	}
	return r
}

// Surface returns the backing surface.
func (e *Element) Surface() Surface { return e.surface }

// Runtime returns the runtime that built the element.
func (e *Element) Runtime() *Runtime { return e.rt }

// Alive reports whether the element is attached and not yet detached.
func (e *Element) Alive() bool {
	return e.state == stateAttached || e.state == stateInitialized
}

// Attrs returns the attribute names in sorted order.
func (e *Element) Attrs() []string { return e.order }

// Cell returns the cell backing name; the zero ref if there is none.
func (e *Element) Cell(name string) CellRef { return e.cells[name] }

// Get returns the attribute value, or Unset.
func (e *Element) Get(name string) any {
	ref, ok := e.cells[name]
	if !ok {
		return Unset
	}
	return e.rt.graph.Value(ref)
}

// Set writes an attribute and runs the full update cascade before
// returning. It reports whether the value changed.
func (e *Element) Set(name string, v any) bool {
	ref, ok := e.cells[name]
	if !e.rt.log.Assert(ok, "set of unknown attribute %s.%s", e.id, name) {
		return false
	}
	return e.rt.graph.Set(ref, v)
}

// Float returns a numeric attribute, 0 when unset.
func (e *Element) Float(name string) float64 { return toFloat(e.Get(name)) }

// Bool returns a flag attribute.
func (e *Element) Bool(name string) bool { return truthy(e.Get(name)) }

// String returns a string attribute, "" when unset or not a string.
func (e *Element) String(name string) string {
	s, _ := e.Get(name).(string)
	return s
}

// Static returns a static constant.
func (e *Element) Static(name string) any { return e.statics[name] }

// SetStatic stores a static constant. Statics are plain fields and never
// notify.
func (e *Element) SetStatic(name string, v any) {
	if e.statics == nil {
		e.statics = make(map[string]any)
	}
	e.statics[name] = v
}

// Lookup resolves addr relative to e and returns the cell's value, or Unset.
func (e *Element) Lookup(addr Address) any {
	return e.rt.graph.Value(e.resolveCell(addr))
}

// Reset re-declares an attribute's sources, and its compute function when one
// is given.
func (e *Element) Reset(name string, sources []Address, compute ComputeFunc) {
	if ref, ok := e.cells[name]; ok {
		e.rt.graph.Reset(ref, sources, compute)
	}
}

// OnUpdated registers fn to run after any attribute of e changes. The
// returned func removes it.
func (e *Element) OnUpdated(fn func(name string, v any)) func() {
	e.hookSeq++
	id := e.hookSeq
	e.hooks = append(e.hooks, updateHook{id: id, fn: fn})
	return func() {
		e.hooks = slices.DeleteFunc(e.hooks, func(h updateHook) bool { return h.id == id })
	}
}

// AddSideEffect stores cancel under key, cancelling whatever was stored
// there before. A nil cancel just clears the slot. Remaining side effects
// are cancelled exactly once when the element detaches.
func (e *Element) AddSideEffect(key string, cancel func()) {
	if prev := e.sideEffects[key]; prev != nil {
		prev()
	}
	delete(e.sideEffects, key)
	if cancel == nil {
		return
	}
	if e.sideEffects == nil {
		e.sideEffects = make(map[string]func())
	}
	e.sideEffects[key] = cancel
}

// SideEffects returns the number of active side effects.
func (e *Element) SideEffects() int { return len(e.sideEffects) }

func (e *Element) resolveCell(addr Address) CellRef {
	if addr.Attr == "" {
		return CellRef{}
	}
	target := e.resolver(e, addr)
	if target == nil {
		return CellRef{}
	}
	return target.cells[addr.Attr]
}

func (e *Element) childIndex(child *Element) int {
	return slices.Index(e.children, child)
}

// findDescendant searches breadth first for an element named name.
func (e *Element) findDescendant(name string) *Element {
	queue := slices.Clone(e.children)
	for len(queue) > 0 {
		el := queue[0]
		queue = queue[1:]
		if el.template.Name == name {
			return el
		}
		queue = append(queue, el.children...)
	}
	return nil
}

// attributeUpdated runs after a cell of e stores a new value and before its
// subscribers recompute.
func (e *Element) attributeUpdated(name string, v any) {
	if e.state == stateDestroyed {
		return
	}
	e.mirror(name, v)
	e.behavior.updated(e, name, v)
	if fn := e.template.OnUpdated; fn != nil {
		fn(e, name, v)
	}
	for _, h := range slices.Clone(e.hooks) {
		h.fn(name, v)
	}
}

// walk visits e and its descendants in tree order.
func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		c.walk(fn)
	}
}
