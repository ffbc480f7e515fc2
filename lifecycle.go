package webapp

import (
	"slices"
)

// Create builds t under parent (nil for a detached root hosted by the
// window): construct, attach, initialize. It returns the new element, fully
// computed, with its created callbacks run.
func (r *Runtime) Create(t *Template, parent *Element) *Element {
	if parent != nil && !r.log.Assert(parent.Alive(), "create %q under dead parent %s", t.Name, parent.id) {
		return nil
	}
	e := r.construct(t, parent, 0)
	r.attach(e, parent)
	r.initialize(e)
	return e
}

// Mount creates t as the application root: it replaces any previous root,
// sizes the root to the window, keeps it sized through debounced resize
// events, and makes it visible.
func (r *Runtime) Mount(t *Template) *Element {
	if r.root != nil {
		r.Destroy(r.root)
	}
	e := r.Create(t, nil)
	r.root = e

	win := r.backend.Window()
	fit := func() {
		rect := win.Rect()
		e.Set("w", rect.Width)
		e.Set("h", rect.Height)
		r.bus.Emit(TopicResize, rect)
	}
	r.resize = NewDebouncer(r.sched, r.cfg.ResizeDebounce, fit)
	cancel := win.Listen("resize", func(*Event) { r.resize.Trigger() })
	resize := r.resize
	e.AddSideEffect("window.resize", func() {
		cancel()
		resize.Cancel()
	})
	fit()
	e.Set("v", 1.0)
	r.log.Infof("mounted %s (%d cells)", e.id, r.graph.Stats().Live)
	return e
}

// Destroy detaches and destroys e and its subtree. Children go first in
// both phases; every side effect is cancelled and every cell unsubscribed
// before any surface is removed.
func (r *Runtime) Destroy(e *Element) {
	if e == nil || !r.log.Assert(e.Alive(), "destroy of %s in state %d", e.id, e.state) {
		return
	}
	e.detach()
	e.destroy()
	if r.root == e {
		r.root = nil
	}
	r.bus.Emit(TopicDestroyed, e)
}

func (r *Runtime) construct(t *Template, parent *Element, depth int) *Element {
	name := orDefault(t.Name, t.tag())
	e := &Element{
		rt:       r,
		id:       name,
		template: t,
		depth:    depth,
		resolver: r.resolver,
		behavior: newBehavior(t.Kind),
	}
	if parent != nil {
		e.id = parent.id + "." + name
	}

	e.surface = r.backend.NewSurface(t.tag())
	e.surface.SetAttr("id", e.id)
	e.surface.SetStyle("position", orDefault(t.Position, "absolute"))
	e.surface.SetStyle("overflow", orDefault(t.Overflow, "hidden"))
	e.surface.SetStyle("boxSizing", "border-box")

	for k, v := range t.Statics {
		e.SetStatic(k, v)
	}

	names, defs := t.attrDefs()
	e.order = names
	e.cells = make(map[string]CellRef, len(names))
	for _, n := range names {
		ref := r.graph.Alloc(e, n, defs[n])
		e.cells[n] = ref
		r.graph.OnUpdated(ref, func(v any) { e.attributeUpdated(n, v) })
	}

	children := t.Children
	if t.Kind == KindContainer {
		children = append([]*Template{scrollbarTemplate(false), scrollbarTemplate(true)}, children...)
	}
	for _, ct := range children {
		child := r.construct(ct, e, depth+1)
		child.parent = e
		e.children = append(e.children, child)
	}
	return e
}

// attach links e under parent and subscribes every cell of the subtree.
func (r *Runtime) attach(e *Element, parent *Element) {
	if parent != nil {
		e.parent = parent
		parent.children = append(parent.children, e)
		parent.surface.Append(e.surface)
	} else {
		r.backend.Window().Append(e.surface)
	}
	e.attachTree()
}

func (e *Element) attachTree() {
	e.state = stateAttached
	for _, n := range e.order {
		e.rt.graph.Subscribe(e.cells[n])
	}
	for _, c := range e.children {
		e.surface.Append(c.surface)
		c.attachTree()
	}
}

// initialize computes the subtree in dependency order, then runs created
// callbacks children first.
func (r *Runtime) initialize(e *Element) {
	var refs []CellRef
	e.walk(func(el *Element) {
		for _, n := range el.order {
			refs = append(refs, el.cells[n])
		}
	})
	if report := r.sweep(e.id, refs); report != nil {
		r.diagnostics = append(r.diagnostics, report)
		r.log.Errorf("%s", report.Error())
		r.bus.Emit(TopicCycle, report)
	}

	e.walk(func(el *Element) { el.state = stateInitialized })
	e.created()
	r.bus.Emit(TopicCreated, e)
}

func (e *Element) created() {
	for _, c := range slices.Clone(e.children) {
		c.created()
	}
	if e.state != stateInitialized {
		return
	}
	e.behavior.created(e)
	if fn := e.template.OnCreated; fn != nil {
		fn(e)
	}
}

// detach cancels side effects and unsubscribes cells, children first.
func (e *Element) detach() {
	for _, c := range e.children {
		c.detach()
	}
	e.behavior.detached(e)
	for _, cancel := range e.sideEffects {
		cancel()
	}
	e.sideEffects = nil
	for _, n := range e.order {
		e.rt.graph.Unsubscribe(e.cells[n])
	}
	e.state = stateDetached
}

// destroy unlinks the subtree, removes its surfaces and frees its cells.
func (e *Element) destroy() {
	for _, c := range slices.Clone(e.children) {
		c.destroy()
	}
	if p := e.parent; p != nil {
		if i := p.childIndex(e); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
	}
	e.surface.Remove()
	for _, n := range e.order {
		e.rt.graph.Free(e.cells[n])
	}
	e.hooks = nil
	e.state = stateDestroyed
}
