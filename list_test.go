package webapp

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func keys(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = fmt.Sprintf("k%d", i)
	}
	return out
}

func listTemplate(items []any, attrs map[string]AttrDef) *Template {
	t := &Template{
		Name: "list",
		Kind: KindContainer,
		Attrs: map[string]AttrDef{
			"w":     Value(100.0),
			"h":     Value(200.0),
			"items": Value(items),
			"list":  Value(true),
		},
		Slot:   &Template{Name: "row", Kind: KindItem},
		Layout: StackLayout(20),
	}
	for k, v := range attrs {
		t.Attrs[k] = v
	}
	return t
}

// rows returns the list children in child order.
func rows(list *Element) []*Element {
	return list.Children()[reservedChildren:]
}

func visibleIndexes(list *Element) []int {
	var out []int
	for _, r := range rows(list) {
		out = append(out, r.Item().Index)
	}
	slices.Sort(out)
	return out
}

func TestList_VirtualVisibleRange(t *testing.T) {
	type tc struct {
		virtual   bool
		wantCount int
		wantFirst int
		wantLast  int
	}

	tests := map[string]tc{
		"virtual renders the viewport": {virtual: true, wantCount: 10, wantFirst: 20, wantLast: 29},
		"non-virtual renders all":      {virtual: false, wantCount: 1000, wantFirst: 0, wantLast: 999},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rt, _, _ := newTestRuntime(t)
			list := rt.Create(listTemplate(keys(1000), map[string]AttrDef{
				"virtual":   Value(tt.virtual),
				"reuseItem": Value(true),
			}), nil)
			list.Set("scrollTop", 400.0)

			got := visibleIndexes(list)
			if len(got) != tt.wantCount {
				t.Fatalf("visible count = %d, want %d", len(got), tt.wantCount)
			}
			if got[0] != tt.wantFirst || got[len(got)-1] != tt.wantLast {
				t.Errorf("visible range = [%d,%d], want [%d,%d]", got[0], got[len(got)-1], tt.wantFirst, tt.wantLast)
			}
			if stats := list.ListStats(); stats.Records != 1000 || stats.Visible != tt.wantCount {
				t.Errorf("ListStats() = %+v", stats)
			}
		})
	}
}

func TestList_ChildGeometry(t *testing.T) {
	rt, _, _ := newTestRuntime(t)
	list := rt.Create(listTemplate(keys(50), map[string]AttrDef{"virtual": Value(true)}), nil)
	list.Set("scrollTop", 30.0)

	for _, r := range rows(list) {
		it := r.Item()
		if r.Float("y") != it.Y-30 || r.Float("x") != it.X || r.Float("w") != 100 || r.Float("h") != 20 {
			t.Errorf("row %d geometry = (%v,%v %vx%v)", it.Index, r.Float("x"), r.Float("y"), r.Float("w"), r.Float("h"))
		}
		if data, _ := r.Get("data").(*Item); data != it {
			t.Errorf("row %d data attribute not set", it.Index)
		}
		if want := fmt.Sprintf("k%d", it.Index); it.Key != want || it.Data != want {
			t.Errorf("row %d key/data = %q/%v", it.Index, it.Key, it.Data)
		}
	}
	if got := visibleIndexes(list); got[0] != 1 || got[len(got)-1] != 11 {
		t.Errorf("visible = %v, want 1..11", got)
	}
	if list.Float("childHeight") != 1000 || list.Float("childWidth") != 100 {
		t.Errorf("content = %vx%v, want 100x1000", list.Float("childWidth"), list.Float("childHeight"))
	}
}

func TestList_RecyclingStableForSameKeys(t *testing.T) {
	type tc struct {
		reuse bool
	}

	tests := map[string]tc{
		"key matching":      {reuse: true},
		"position matching": {reuse: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rt, backend, _ := newTestRuntime(t)
			list := rt.Create(listTemplate([]any{"a", "b", "c", "d", "e"}, map[string]AttrDef{
				"reuseItem": Value(tt.reuse),
			}), nil)
			before := slices.Clone(rows(list))
			byKey := map[string]*Element{}
			for _, r := range before {
				byKey[r.Item().Key] = r
			}
			surfaces := backend.Created()

			list.Set("items", []any{"e", "d", "c", "b", "a"})

			stats := list.ListStats()
			if stats.Created != 0 || stats.Destroyed != 0 {
				t.Errorf("created/destroyed = %d/%d, want 0/0", stats.Created, stats.Destroyed)
			}
			if backend.Created() != surfaces {
				t.Errorf("new surfaces: %d", backend.Created()-surfaces)
			}
			if diff := cmp.Diff(before, rows(list), cmp.Comparer(func(a, b *Element) bool { return a == b })); diff != "" {
				t.Errorf("children changed (-want +got):\n%s", diff)
			}
			if tt.reuse {
				if stats.Hits != 5 {
					t.Errorf("Hits = %d, want 5", stats.Hits)
				}
				for key, r := range byKey {
					if r.Item().Key != key {
						t.Errorf("child for %q now shows %q", key, r.Item().Key)
					}
				}
				if got := byKey["a"].Float("y"); got != 80 {
					t.Errorf("row a y = %v, want 80", got)
				}
			}
		})
	}
}

func TestList_KeyMatchingReusesLeftovers(t *testing.T) {
	rt, _, _ := newTestRuntime(t)
	list := rt.Create(listTemplate(keys(1000), map[string]AttrDef{
		"virtual":   Value(true),
		"reuseItem": Value(true),
	}), nil)

	if got := list.ListStats().Created; got != 10 {
		t.Fatalf("initial Created = %d, want 10", got)
	}
	list.Set("scrollTop", 100.0)
	stats := list.ListStats()
	// Records 5..9 keep their rows; 10..14 take the rows of 0..4.
	want := ReconcileStats{Records: 1000, Visible: 10, Hits: 5, Misses: 5}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("ListStats mismatch (-want +got):\n%s", diff)
	}
}

func TestList_PositionMatchingTrimsAndGrows(t *testing.T) {
	rt, _, _ := newTestRuntime(t)
	list := rt.Create(listTemplate(keys(3), nil), nil)

	list.Set("items", keys(6))
	if got := len(rows(list)); got != 6 {
		t.Fatalf("rows = %d, want 6", got)
	}
	if got := list.ListStats().Created; got != 3 {
		t.Errorf("Created = %d, want 3", got)
	}

	list.Set("items", keys(2))
	if got := len(rows(list)); got != 2 {
		t.Fatalf("rows = %d, want 2", got)
	}
	if got := list.ListStats().Destroyed; got != 4 {
		t.Errorf("Destroyed = %d, want 4", got)
	}
	if got := len(list.Children()); got != 4 {
		t.Errorf("children including scrollbars = %d, want 4", got)
	}
}

func TestList_DuplicateKeysFirstComeWins(t *testing.T) {
	rt, _, _ := newTestRuntime(t)
	list := rt.Create(listTemplate([]any{"a", "a", "b"}, map[string]AttrDef{"reuseItem": Value(true)}), nil)

	if got := list.ListStats().Duplicates; got != 1 {
		t.Errorf("Duplicates = %d, want 1", got)
	}
	first := rows(list)[0]
	list.Set("items", []any{"a", "a", "b"})

	if rows(list)[0] != first || first.Item().Index != 0 {
		t.Error("first row for key a did not stay on the first record")
	}
	if got := list.ListStats(); got.Hits != 3 || got.Created != 0 {
		t.Errorf("ListStats() = %+v, want 3 hits and no creations", got)
	}
}

func TestList_NonVirtualScrollRepositions(t *testing.T) {
	rt, _, _ := newTestRuntime(t)
	list := rt.Create(listTemplate(keys(5), nil), nil)
	stats := list.ListStats()

	list.Set("scrollTop", 40.0)

	if list.ListStats() != stats {
		t.Error("scroll on a non-virtual list ran a full reconciliation")
	}
	for _, r := range rows(list) {
		if want := r.Item().Y - 40; r.Float("y") != want {
			t.Errorf("row %d y = %v, want %v", r.Item().Index, r.Float("y"), want)
		}
	}
}

func TestList_ScrollClamp(t *testing.T) {
	rt, _, _ := newTestRuntime(t)
	list := rt.Create(listTemplate(keys(10), map[string]AttrDef{
		"h":          Value(100.0),
		"virtual":    Value(true),
		"scrollable": Value(true),
	}), nil)

	list.Set("scrollTop", 500.0)

	if got := list.Float("scrollTop"); got != 100 {
		t.Errorf("scrollTop = %v, want 100", got)
	}
	if diff := cmp.Diff([]int{5, 6, 7, 8, 9}, visibleIndexes(list)); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}
}

func TestList_AlignAndMinWidth(t *testing.T) {
	type tc struct {
		align     string
		minWidth  float64
		wantWidth float64
		wantRow   float64
	}

	tests := map[string]tc{
		"none keeps item widths": {align: AlignNone, wantWidth: 30, wantRow: -1},
		"max uses content width": {align: AlignMax, wantWidth: 30, wantRow: 30},
		"fill uses viewport":     {align: AlignFill, wantWidth: 30, wantRow: 100},
		"min width clamps":       {align: AlignMax, minWidth: 50, wantWidth: 50, wantRow: 50},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rt, _, _ := newTestRuntime(t)
			tmpl := listTemplate([]any{"a", "bbb"}, map[string]AttrDef{
				"align":    Value(tt.align),
				"minWidth": Value(tt.minWidth),
			})
			tmpl.Layout = TextRowLayout(20, 10, func(rec any) string { return rec.(string) })
			list := rt.Create(tmpl, nil)

			if got := list.Float("childWidth"); got != tt.wantWidth {
				t.Errorf("childWidth = %v, want %v", got, tt.wantWidth)
			}
			for i, r := range rows(list) {
				want := tt.wantRow
				if want < 0 {
					want = r.Item().W
				}
				if got := r.Float("w"); got != want {
					t.Errorf("row %d w = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestContainer_SlotSizeTracked(t *testing.T) {
	rt, _, _ := newTestRuntime(t)
	c := rt.Create(&Template{
		Name: "pane",
		Kind: KindContainer,
		Slot: &Template{Name: "content", Attrs: map[string]AttrDef{"w": Value(300.0), "h": Value(900.0)}},
	}, nil)

	if c.Float("childWidth") != 300 || c.Float("childHeight") != 900 {
		t.Fatalf("child size = %vx%v, want 300x900", c.Float("childWidth"), c.Float("childHeight"))
	}
	slot := c.Child(reservedChildren)
	if slot == nil || slot.Name() != "content" {
		t.Fatal("slot child not created after the scrollbars")
	}
	slot.Set("h", 1000.0)
	if got := c.Float("childHeight"); got != 1000 {
		t.Errorf("childHeight = %v, want 1000", got)
	}
}

func TestTextWidth(t *testing.T) {
	type tc struct {
		s    string
		want float64
	}

	tests := map[string]tc{
		"ascii": {s: "abc", want: 3},
		"wide":  {s: "日本", want: 4},
		"empty": {s: "", want: 0},
		"mixed": {s: "a日", want: 3},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := TextWidth(tt.s); got != tt.want {
				t.Errorf("TextWidth(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestList_ViewportResizeReconciles(t *testing.T) {
	type tc struct {
		attrs     map[string]AttrDef
		set       string
		to        float64
		wantCount int
		wantRowW  float64
	}

	tests := map[string]tc{
		"virtual list grows taller": {
			attrs:     map[string]AttrDef{"virtual": Value(true)},
			set:       "h",
			to:        400,
			wantCount: 20,
			wantRowW:  100,
		},
		"virtual list shrinks": {
			attrs:     map[string]AttrDef{"virtual": Value(true)},
			set:       "h",
			to:        100,
			wantCount: 5,
			wantRowW:  100,
		},
		"stacked rows follow width": {
			attrs:     map[string]AttrDef{"virtual": Value(true)},
			set:       "w",
			to:        150,
			wantCount: 10,
			wantRowW:  150,
		},
		"scrollable rows follow width": {
			attrs:     map[string]AttrDef{"virtual": Value(true), "scrollable": Value(true)},
			set:       "w",
			to:        160,
			wantCount: 10,
			wantRowW:  160,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rt, _, _ := newTestRuntime(t)
			list := rt.Create(listTemplate(keys(1000), tt.attrs), nil)
			if n := len(rows(list)); n != 10 {
				t.Fatalf("initial rows = %d, want 10", n)
			}

			list.Set(tt.set, tt.to)

			got := visibleIndexes(list)
			if len(got) != tt.wantCount || got[0] != 0 || got[len(got)-1] != tt.wantCount-1 {
				t.Errorf("visible = %v, want 0..%d", got, tt.wantCount-1)
			}
			if stats := list.ListStats(); stats.Visible != tt.wantCount {
				t.Errorf("ListStats().Visible = %d, want %d", stats.Visible, tt.wantCount)
			}
			for _, r := range rows(list) {
				if w := r.Float("w"); w != tt.wantRowW {
					t.Errorf("row %d w = %v, want %v", r.Item().Index, w, tt.wantRowW)
				}
			}
		})
	}
}

func TestList_AnySliceKindAsItems(t *testing.T) {
	rt, _, _ := newTestRuntime(t)
	list := rt.Create(listTemplate(keys(3), nil), nil)

	list.Set("items", []string{"a", "b", "c", "d"})

	if stats := list.ListStats(); stats.Records != 4 || stats.Visible != 4 {
		t.Errorf("ListStats() = %+v, want 4 records visible", stats)
	}
	var got []string
	for _, r := range rows(list) {
		got = append(got, r.Item().Key)
		if r.Item().Data != r.Item().Key {
			t.Errorf("row %d data = %v", r.Item().Index, r.Item().Data)
		}
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, got); diff != "" {
		t.Errorf("row keys mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordAt(t *testing.T) {
	type tc struct {
		items     any
		index     int
		want      any
		wantCount int
		wantOK    bool
	}

	tests := map[string]tc{
		"any slice":    {items: []any{"x", 2.0}, index: 1, want: 2.0, wantCount: 2, wantOK: true},
		"typed slice":  {items: []int{4, 5, 6}, index: 2, want: 6, wantCount: 3, wantOK: true},
		"array":        {items: [2]string{"p", "q"}, index: 0, want: "p", wantCount: 2, wantOK: true},
		"out of range": {items: []string{"a"}, index: 3, wantCount: 1, wantOK: true},
		"not a slice":  {items: "abc", index: 0},
		"unset":        {items: Unset, index: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			n, ok := recordCount(tt.items)
			if n != tt.wantCount || ok != tt.wantOK {
				t.Errorf("recordCount() = %d, %v, want %d, %v", n, ok, tt.wantCount, tt.wantOK)
			}
			if got := recordAt(tt.items, tt.index); got != tt.want {
				t.Errorf("recordAt() = %v, want %v", got, tt.want)
			}
		})
	}
}
