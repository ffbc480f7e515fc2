package webapp

import (
	"strings"
	"testing"
)

func TestMemorySurface_DispatchBubbles(t *testing.T) {
	backend := NewMemoryBackend(100, 100)
	parent := backend.NewSurface("div").(*MemorySurface)
	child := backend.NewSurface("div").(*MemorySurface)
	backend.Window().Append(parent)
	parent.Append(child)

	var order []string
	parent.Listen("click", func(*Event) { order = append(order, "parent") })
	child.Listen("click", func(*Event) { order = append(order, "child") })
	child.Dispatch(&Event{Type: "click"})

	if strings.Join(order, ",") != "child,parent" {
		t.Errorf("order = %v, want child,parent", order)
	}

	order = nil
	child.Listen("click", func(ev *Event) { ev.StopPropagation() })
	child.Dispatch(&Event{Type: "click"})
	if strings.Join(order, ",") != "child" {
		t.Errorf("order with StopPropagation = %v, want child", order)
	}
}

func TestMemorySurface_RectAccumulates(t *testing.T) {
	backend := NewMemoryBackend(800, 600)
	outer := backend.NewSurface("div").(*MemorySurface)
	inner := backend.NewSurface("div").(*MemorySurface)
	backend.Window().Append(outer)
	outer.Append(inner)
	outer.SetStyle("left", "10px")
	outer.SetStyle("top", "20px")
	inner.SetStyle("left", "5px")
	inner.SetStyle("top", "5px")
	inner.SetStyle("width", "30px")
	inner.SetStyle("height", "40px")

	want := NewRect(15, 25, 30, 40)
	if got := inner.Rect(); got != want {
		t.Errorf("Rect() = %+v, want %+v", got, want)
	}
	if got := backend.Window().Rect(); got != NewRect(0, 0, 800, 600) {
		t.Errorf("window Rect() = %+v", got)
	}
}

func TestMemorySurface_RemoveDetachesSubtree(t *testing.T) {
	backend := NewMemoryBackend(100, 100)
	outer := backend.NewSurface("div").(*MemorySurface)
	inner := backend.NewSurface("span").(*MemorySurface)
	outer.Append(inner)
	if inner.Attached() {
		t.Fatal("surface attached before reaching the window")
	}
	backend.Window().Append(outer)
	if !inner.Attached() || backend.Attached() != 2 {
		t.Fatal("subtree not attached")
	}

	outer.Remove()
	if inner.Attached() || backend.Attached() != 0 || backend.Removed() != 1 {
		t.Errorf("after Remove: inner attached %v, Attached() %d, Removed() %d",
			inner.Attached(), backend.Attached(), backend.Removed())
	}
}

func TestMemoryBackend_Snapshot(t *testing.T) {
	rt, backend, _ := newTestRuntime(t)
	rt.Create(&Template{
		Name:  "app",
		Attrs: map[string]AttrDef{"w": Value(10.0), "h": Value(5.0), "v": Value(1.0)},
		Children: []*Template{{
			Name:  "label",
			Kind:  KindText,
			Attrs: map[string]AttrDef{"text": Value("hi"), "v": Value(1.0)},
		}},
	}, nil)

	want := "div#app (0,0 10x5)\n  span#app.label (0,0 0x0) \"hi\"\n"
	if got := backend.Snapshot(); got != want {
		t.Errorf("Snapshot() =\n%s\nwant\n%s", got, want)
	}
}
