package webapp

import (
	"testing"
)

func TestMirror_Styles(t *testing.T) {
	type tc struct {
		attr  string
		value any
		prop  string
		want  string
	}

	tests := map[string]tc{
		"x as left":       {attr: "x", value: 12.5, prop: "left", want: "12.5px"},
		"h as height":     {attr: "h", value: 40.0, prop: "height", want: "40px"},
		"border width":    {attr: "borderTop", value: 2.0, prop: "borderTopWidth", want: "2px"},
		"color verbatim":  {attr: "color", value: "#fff", prop: "color", want: "#fff"},
		"opacity number":  {attr: "opacity", value: 0.5, prop: "opacity", want: "0.5"},
		"visible flag":    {attr: "v", value: 1.0, prop: "visibility", want: "visible"},
		"hidden flag":     {attr: "v", value: false, prop: "visibility", want: "hidden"},
		"zIndex as plain": {attr: "zIndex", value: 3.0, prop: "zIndex", want: "3"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rt, _, _ := newTestRuntime(t)
			e := rt.Create(&Template{Name: "box"}, nil)
			e.Set(tt.attr, tt.value)
			if got := memSurface(e).Style(tt.prop); got != tt.want {
				t.Errorf("style %s = %q, want %q", tt.prop, got, tt.want)
			}
		})
	}
}

func TestMirror_LogicAttributesStayOff(t *testing.T) {
	rt, _, _ := newTestRuntime(t)
	e := rt.Create(&Template{Name: "list", Kind: KindContainer}, nil)

	before := memSurface(e).Writes()
	e.Set("x2", 5.0)
	e.Set("childWidth", 50.0)
	e.Set("hovered", true)
	if got := memSurface(e).Writes(); got != before {
		t.Errorf("logic attributes wrote %d times to the surface", got-before)
	}
	for _, name := range []string{"x2", "cw", "childWidth", "hovered"} {
		if IsMirrored(name) {
			t.Errorf("IsMirrored(%q) = true", name)
		}
	}
}

func TestMirror_TextContent(t *testing.T) {
	rt, _, _ := newTestRuntime(t)
	label := rt.Create(&Template{
		Name:  "label",
		Kind:  KindText,
		Attrs: map[string]AttrDef{"text": Value("hello")},
	}, nil)

	if got := memSurface(label).Text(); got != "hello" {
		t.Errorf("Text() = %q, want hello", got)
	}
	label.Set("text", "bye")
	if got := memSurface(label).Text(); got != "bye" {
		t.Errorf("Text() = %q, want bye", got)
	}
}

func TestMirror_HandlerReplacement(t *testing.T) {
	rt, backend, _ := newTestRuntime(t)
	e := rt.Create(&Template{Name: "button"}, nil)

	var first, second int
	e.Set("onClick", EventHandler(func(*Element, *Event) { first++ }))
	e.Set("onClick", func(*Element, *Event) { second++ })

	memSurface(e).Dispatch(&Event{Type: "click"})
	if first != 0 || second != 1 {
		t.Errorf("calls = %d/%d, want 0/1", first, second)
	}
	if got := backend.Listening(); got != 1 {
		t.Errorf("Listening() = %d, want 1", got)
	}
	if got := e.SideEffects(); got != 1 {
		t.Errorf("SideEffects() = %d, want 1", got)
	}
}

func TestMirror_ActiveReleasesOnce(t *testing.T) {
	rt, _, _ := newTestRuntime(t)
	e := rt.Create(&Template{Name: "button"}, nil)

	var presses, releases int
	e.Set("onActive", ActiveHandler(func(*Element, *Event) EventHandler {
		presses++
		return func(*Element, *Event) { releases++ }
	}))

	s := memSurface(e)
	s.Dispatch(&Event{Type: "mousedown"})
	s.Dispatch(&Event{Type: "mouseup"})
	s.Dispatch(&Event{Type: "mouseup"})

	if presses != 1 || releases != 1 {
		t.Errorf("presses/releases = %d/%d, want 1/1", presses, releases)
	}
	if got := s.Listeners("mouseup"); got != 0 {
		t.Errorf("mouseup listeners = %d, want 0", got)
	}
}

func TestMirror_HoverTracksMouse(t *testing.T) {
	rt, _, _ := newTestRuntime(t)
	e := rt.Create(&Template{
		Name:  "card",
		Attrs: map[string]AttrDef{"hovered": From(".hoveredByMouse")},
	}, nil)

	var seen []bool
	e.Set("onHover", HoverHandler(func(_ *Element, h bool) { seen = append(seen, h) }))

	s := memSurface(e)
	s.Dispatch(&Event{Type: "mouseenter"})
	s.Dispatch(&Event{Type: "mouseleave"})

	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Errorf("hover calls = %v, want [true false]", seen)
	}
}

func TestMirror_ClickOutside(t *testing.T) {
	rt, backend, _ := newTestRuntime(t)
	e := rt.Create(&Template{
		Name:  "menu",
		Attrs: map[string]AttrDef{"x": Value(10.0), "y": Value(10.0), "w": Value(50.0), "h": Value(50.0)},
	}, nil)

	var outside int
	e.Set("onClickOutside", OutsideHandler(func(*Element, *Event) bool {
		outside++
		return true
	}))

	win := backend.MemoryWindow()
	win.Dispatch(&Event{Type: "click", X: 20, Y: 20})
	win.Dispatch(&Event{Type: "click", X: 200, Y: 200})
	win.Dispatch(&Event{Type: "click", X: 300, Y: 300})

	if outside != 1 {
		t.Errorf("outside handler ran %d times, want 1", outside)
	}
	if got := win.Listeners("click"); got != 0 {
		t.Errorf("window click listeners = %d, want 0", got)
	}
}
