package webapp

import (
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/mattn/go-runewidth"
)

// reservedChildren is the number of leading container children that are not
// recycled: the horizontal and vertical scrollbar thumbs.
const reservedChildren = 2

// maxReconcilePasses bounds the re-runs caused by scroll clamping.
const maxReconcilePasses = 4

// Alignment modes for list children.
const (
	AlignNone = "none" // children keep their own width
	AlignMax  = "max"  // every child takes the content width
	AlignFill = "fill" // every child takes max(content width, viewport width)
)

// Item is the computed geometry of one list record. Positions are in
// content coordinates; children receive them offset by the scroll position.
type Item struct {
	Key   string
	Index int
	X, Y  float64
	W, H  float64
	Data  any
}

// Keyed records supply their own recycling key.
type Keyed interface {
	Key() string
}

// RecordKey returns the key used for a record: its Key method, the record
// itself when it is a string, or its index.
func RecordKey(rec any, index int) string {
	switch k := rec.(type) {
	case Keyed:
		return k.Key()
	case string:
		return k
	}
	return fmt.Sprintf("#%d", index)
}

// ReconcileStats describes the last reconciliation pass of a list.
type ReconcileStats struct {
	Records    int
	Visible    int
	Hits       int // children reused for the same key
	Misses     int // children assigned from the leftover pool or created
	Created    int
	Destroyed  int
	Duplicates int // visible records sharing a key with an earlier one
}

// Item returns the record assigned to a list child, or nil.
func (e *Element) Item() *Item { return e.item }

// ListStats returns the last reconciliation stats of a container.
func (e *Element) ListStats() ReconcileStats {
	if b, ok := e.behavior.(*containerBehavior); ok {
		return b.stats
	}
	return ReconcileStats{}
}

// Scrollbars returns the scrollbar controllers of a scrollable container.
func (e *Element) Scrollbars() (h, v *Scrollbar) {
	if b, ok := e.behavior.(*containerBehavior); ok {
		return b.hBar, b.vBar
	}
	return nil, nil
}

// StackLayout stacks records vertically at a fixed row height, each as wide
// as the viewport.
func StackLayout(rowHeight float64) ItemLayout {
	return func(c *Element, index int, prev *Item) Item {
		rec := c.record(index)
		it := Item{Key: RecordKey(rec, index), W: c.Float("cw"), H: rowHeight, Data: rec}
		if prev != nil {
			it.Y = prev.Y + prev.H
		}
		return it
	}
}

// TextRowLayout stacks records as text rows whose width is the display
// width of their label times charWidth.
func TextRowLayout(rowHeight, charWidth float64, label func(rec any) string) ItemLayout {
	return func(c *Element, index int, prev *Item) Item {
		rec := c.record(index)
		it := Item{
			Key:  RecordKey(rec, index),
			W:    TextWidth(label(rec)) * charWidth,
			H:    rowHeight,
			Data: rec,
		}
		if prev != nil {
			it.Y = prev.Y + prev.H
		}
		return it
	}
}

// TextWidth returns the display width of s in cells. Wide runes count as
// two.
func TextWidth(s string) float64 {
	return float64(runewidth.StringWidth(s))
}

func (e *Element) record(index int) any {
	return recordAt(e.Get("items"), index)
}

// recordCount returns the length of an items value. Any slice or array
// kind is accepted; ok is false for anything else.
func recordCount(items any) (n int, ok bool) {
	if rs, ok := items.([]any); ok {
		return len(rs), true
	}
	v := reflect.ValueOf(items)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return v.Len(), true
	}
	return 0, false
}

// recordAt returns record index of an items value, or nil when out of
// range.
func recordAt(items any, index int) any {
	if rs, ok := items.([]any); ok {
		if index < 0 || index >= len(rs) {
			return nil
		}
		return rs[index]
	}
	v := reflect.ValueOf(items)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if index >= 0 && index < v.Len() {
			return v.Index(index).Interface()
		}
	}
	return nil
}

// containerBehavior hosts either one slot child or a recycled list, plus
// the scrollbar controllers when scrollable.
type containerBehavior struct {
	hBar, vBar *Scrollbar
	stats      ReconcileStats

	reconciling bool
	dirty       bool
}

func (b *containerBehavior) created(e *Element) {
	list := e.Bool("list")
	if !list && e.template.Slot != nil {
		child := e.rt.Create(e.template.Slot, e)
		if child != nil {
			e.Set("childWidth", child.Float("w"))
			e.Set("childHeight", child.Float("h"))
			child.OnUpdated(func(name string, v any) {
				switch name {
				case "w":
					e.Set("childWidth", v)
				case "h":
					e.Set("childHeight", v)
				}
			})
		}
	}

	if e.Bool("scrollable") {
		b.hBar = newScrollbar(e, false)
		b.vBar = newScrollbar(e, true)
		bars := []*Scrollbar{b.hBar, b.vBar}
		for _, bar := range bars {
			bar.initDraggable()
		}
		e.Set("onWheel", EventHandler(func(_ *Element, ev *Event) {
			ev.PreventDefault()
			for _, bar := range bars {
				bar.Wheel(ev)
			}
		}))
	}

	if list {
		b.reconcile(e)
	} else {
		b.showBars()
	}
}

func (b *containerBehavior) updated(e *Element, name string, v any) {
	if e.state != stateInitialized {
		return
	}
	if !e.Bool("list") {
		switch name {
		case "w", "h", "childWidth", "childHeight", "scrollLeft", "scrollTop":
			b.showBars()
		}
		return
	}

	switch name {
	case "items":
		b.reconcile(e)
	case "scrollLeft", "scrollTop":
		if e.Bool("virtual") {
			b.reconcile(e)
			return
		}
		b.reposition(e, name)
	case "w", "h", "cw", "ch":
		b.reconcile(e)
	}
}

func (b *containerBehavior) detached(*Element) {
	b.hBar, b.vBar = nil, nil
}

func (b *containerBehavior) showBars() {
	if b.hBar != nil {
		b.hBar.Show(true)
	}
	if b.vBar != nil {
		b.vBar.Show(true)
	}
}

// reposition applies a scroll change to already assigned children.
func (b *containerBehavior) reposition(e *Element, name string) {
	for _, child := range slices.Clone(e.children[min(reservedChildren, len(e.children)):]) {
		it := child.item
		if it == nil {
			continue
		}
		if name == "scrollLeft" {
			child.Set("x", it.X-e.Float("scrollLeft"))
		} else {
			child.Set("y", it.Y-e.Float("scrollTop"))
		}
	}
	b.showBars()
}

// reconcile runs passes until scroll clamping stops changing the input.
// Writes made by a pass that would re-enter are folded into the next pass.
func (b *containerBehavior) reconcile(e *Element) {
	if b.reconciling {
		b.dirty = true
		return
	}
	b.reconciling = true
	defer func() { b.reconciling = false }()
	for range maxReconcilePasses {
		b.dirty = false
		b.pass(e)
		if !b.dirty || !e.Alive() {
			return
		}
	}
	e.rt.log.Errorf("list %s did not settle after %d passes", e.id, maxReconcilePasses)
}

func (b *containerBehavior) pass(e *Element) {
	rt := e.rt
	items := e.Get("items")
	count, ok := recordCount(items)
	if !rt.log.Assert(ok, "list %s: items is %T, want a slice", e.id, items) {
		return
	}
	slot, layout := e.template.Slot, e.template.Layout
	if !rt.log.Assert(slot != nil && layout != nil, "list %s: missing slot or layout", e.id) {
		return
	}

	scrollLeft, scrollTop := e.Float("scrollLeft"), e.Float("scrollTop")
	viewport := NewRect(0, 0, e.Float("w"), e.Float("h"))
	virtual := e.Bool("virtual")

	computed := make([]*Item, count)
	var visible []int
	var mw, mh float64
	var prev *Item
	for i := range count {
		it := layout(e, i, prev)
		it.Index = i
		if it.Data == nil {
			it.Data = recordAt(items, i)
		}
		computed[i] = &it
		prev = computed[i]

		mw = math.Max(it.X+it.W, mw)
		mh = math.Max(it.Y+it.H, mh)

		if !virtual || NewRect(it.X-scrollLeft, it.Y-scrollTop, it.W, it.H).Intersects(viewport) {
			visible = append(visible, i)
		}
	}

	stats := ReconcileStats{Records: count, Visible: len(visible)}
	seen := make(map[string]bool, len(visible))
	for _, i := range visible {
		if seen[computed[i].Key] {
			stats.Duplicates++
		}
		seen[computed[i].Key] = true
	}
	if stats.Duplicates > 0 {
		rt.log.Debugf("list %s: %d visible records share a key; first one wins", e.id, stats.Duplicates)
	}

	var assigned []*Element
	if e.Bool("reuseItem") {
		assigned = b.matchByKey(e, slot, computed, visible, &stats)
	} else {
		assigned = b.matchByPosition(e, slot, len(visible), &stats)
	}

	for n, i := range visible {
		if n >= len(assigned) {
			break
		}
		child, it := assigned[n], computed[i]
		child.item = it
		if _, ok := child.cells["data"]; ok {
			child.Set("data", it)
		}
		child.Set("x", it.X-scrollLeft)
		child.Set("y", it.Y-scrollTop)
		child.Set("w", it.W)
		child.Set("h", it.H)
	}

	childWidth := mw
	if minWidth := e.Float("minWidth"); minWidth > 0 {
		childWidth = math.Max(mw, minWidth)
	}
	e.Set("childWidth", childWidth)
	e.Set("childHeight", mh)
	if align := e.String("align"); align != "" && align != AlignNone {
		w := childWidth
		if align != AlignMax {
			w = math.Max(childWidth, e.Float("cw"))
		}
		for _, child := range e.children[min(reservedChildren, len(e.children)):] {
			child.Set("w", w)
		}
	}

	b.stats = stats
	rt.log.Tracef("list %s: records %d visible %d hit %d miss %d created %d destroyed %d",
		e.id, stats.Records, stats.Visible, stats.Hits, stats.Misses, stats.Created, stats.Destroyed)

	if e.Bool("scrollable") {
		if cw := e.Float("cw"); mw-scrollLeft < cw {
			e.Set("scrollLeft", math.Max(mw-cw, 0))
		}
		if ch := e.Float("ch"); mh-scrollTop < ch {
			e.Set("scrollTop", math.Max(mh-ch, 0))
		}
		b.showBars()
	}
}

// matchByKey assigns a child to every visible record: the first free child
// that last showed the same key, else one from the leftover pool, else a new
// one. Unused children are destroyed.
func (b *containerBehavior) matchByKey(e *Element, slot *Template, computed []*Item, visible []int, stats *ReconcileStats) []*Element {
	old := make(map[string][]*Element)
	var keys []string
	var other []*Element
	for _, child := range e.children[min(reservedChildren, len(e.children)):] {
		if child.item == nil {
			other = append(other, child)
			continue
		}
		k := child.item.Key
		if _, ok := old[k]; !ok {
			keys = append(keys, k)
		}
		old[k] = append(old[k], child)
	}

	assigned := make([]*Element, len(visible))
	for n, i := range visible {
		k := computed[i].Key
		if q := old[k]; len(q) > 0 {
			assigned[n] = q[0]
			old[k] = q[1:]
			stats.Hits++
		}
	}
	for _, k := range keys {
		other = append(other, old[k]...)
	}

	for n := range visible {
		if assigned[n] != nil {
			continue
		}
		stats.Misses++
		if len(other) > 0 {
			assigned[n] = other[0]
			other = other[1:]
			continue
		}
		assigned[n] = b.newChild(e, slot, stats)
	}
	for _, child := range other {
		e.rt.Destroy(child)
		stats.Destroyed++
	}
	return assigned
}

// matchByPosition trims or grows the pool to the visible count and assigns
// records in child order.
func (b *containerBehavior) matchByPosition(e *Element, slot *Template, count int, stats *ReconcileStats) []*Element {
	for len(e.children) > count+reservedChildren {
		e.rt.Destroy(e.children[len(e.children)-1])
		stats.Destroyed++
	}
	for len(e.children) < count+reservedChildren {
		if b.newChild(e, slot, stats) == nil {
			break
		}
	}
	pool := e.children[min(reservedChildren, len(e.children)):]
	return slices.Clone(pool[:min(count, len(pool))])
}

// newChild instantiates the slot. Its geometry is owned by the list from
// now on, so declared sources for x, y, w and h are dropped.
func (b *containerBehavior) newChild(e *Element, slot *Template, stats *ReconcileStats) *Element {
	child := e.rt.Create(slot, e)
	if child == nil {
		return nil
	}
	for _, name := range []string{"x", "y", "w", "h"} {
		child.Reset(name, nil, nil)
	}
	stats.Created++
	return child
}
