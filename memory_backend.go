package webapp

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// MemoryBackend is an in-memory Backend. It records every surface operation
// and can dispatch synthetic events, which makes it the backend of choice
// for tests and for headless tools.
type MemoryBackend struct {
	window *MemorySurface

	created   int
	removed   int
	listening int
}

// Ensure MemoryBackend implements Backend.
var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates a backend whose window has the given size.
func NewMemoryBackend(width, height float64) *MemoryBackend {
	b := &MemoryBackend{}
	b.window = b.newSurface("window")
	b.window.attached = true
	b.window.size = &Rect{Width: width, Height: height}
	return b
}

func (b *MemoryBackend) newSurface(tag string) *MemorySurface {
	return &MemorySurface{
		backend:   b,
		tag:       tag,
		style:     make(map[string]string),
		attrs:     make(map[string]string),
		listeners: make(map[string][]memoryListener),
	}
}

// NewSurface creates a detached surface.
func (b *MemoryBackend) NewSurface(tag string) Surface {
	b.created++
	return b.newSurface(tag)
}

// Window returns the top-level surface.
func (b *MemoryBackend) Window() Surface {
	return b.window
}

// MemoryWindow returns the window with its concrete type.
func (b *MemoryBackend) MemoryWindow() *MemorySurface {
	return b.window
}

// Resize changes the window size and dispatches a resize event.
func (b *MemoryBackend) Resize(width, height float64) {
	b.window.size = &Rect{Width: width, Height: height}
	b.window.Dispatch(&Event{Type: "resize"})
}

// Created returns the number of surfaces created, excluding the window.
func (b *MemoryBackend) Created() int { return b.created }

// Removed returns the number of Remove calls on attached surfaces.
func (b *MemoryBackend) Removed() int { return b.removed }

// Listening returns the number of active event listeners across all surfaces.
func (b *MemoryBackend) Listening() int { return b.listening }

// Attached returns the number of surfaces currently reachable from the
// window, excluding the window itself.
func (b *MemoryBackend) Attached() int {
	n := 0
	var walk func(s *MemorySurface)
	walk = func(s *MemorySurface) {
		for _, c := range s.children {
			n++
			walk(c)
		}
	}
	walk(b.window)
	return n
}

// Snapshot renders the attached tree, one surface per line.
func (b *MemoryBackend) Snapshot() string {
	var sb strings.Builder
	var walk func(s *MemorySurface, depth int)
	walk = func(s *MemorySurface, depth int) {
		for _, c := range s.children {
			fmt.Fprintf(&sb, "%s%s", strings.Repeat("  ", depth), c.tag)
			if id := c.attrs["id"]; id != "" {
				fmt.Fprintf(&sb, "#%s", id)
			}
			r := c.Rect()
			fmt.Fprintf(&sb, " (%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
			if c.style["visibility"] == "hidden" {
				sb.WriteString(" hidden")
			}
			if c.text != "" {
				fmt.Fprintf(&sb, " %q", c.text)
			}
			sb.WriteByte('\n')
			walk(c, depth+1)
		}
	}
	walk(b.window, 0)
	return sb.String()
}

type memoryListener struct {
	id int
	fn func(*Event)
}

// MemorySurface is the Surface created by MemoryBackend.
type MemorySurface struct {
	backend  *MemoryBackend
	tag      string
	parent   *MemorySurface
	children []*MemorySurface
	attached bool

	style     map[string]string
	attrs     map[string]string
	text      string
	listeners map[string][]memoryListener
	nextID    int

	size   *Rect // fixed size; only the window has one
	writes int
}

// Ensure MemorySurface implements Surface.
var _ Surface = (*MemorySurface)(nil)

// Append links child under s.
func (s *MemorySurface) Append(child Surface) {
	c, ok := child.(*MemorySurface)
	if !ok || c == nil {
		return
	}
	if c.parent != nil {
		c.Remove()
	}
	c.parent = s
	s.children = append(s.children, c)
	c.setAttached(s.attached)
}

func (s *MemorySurface) setAttached(v bool) {
	s.attached = v
	for _, c := range s.children {
		c.setAttached(v)
	}
}

// Remove unlinks s from its parent.
func (s *MemorySurface) Remove() {
	p := s.parent
	if p == nil {
		return
	}
	if i := slices.Index(p.children, s); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	s.parent = nil
	s.setAttached(false)
	s.backend.removed++
}

// SetStyle records a style property.
func (s *MemorySurface) SetStyle(prop, value string) {
	s.style[prop] = value
	s.writes++
}

// SetText records the text content.
func (s *MemorySurface) SetText(text string) {
	s.text = text
	s.writes++
}

// SetAttr records an attribute.
func (s *MemorySurface) SetAttr(name, value string) {
	s.attrs[name] = value
	s.writes++
}

// Listen registers fn for events of the given type.
func (s *MemorySurface) Listen(event string, fn func(*Event)) func() {
	s.nextID++
	id := s.nextID
	s.listeners[event] = append(s.listeners[event], memoryListener{id: id, fn: fn})
	s.backend.listening++
	return func() {
		ls := s.listeners[event]
		i := slices.IndexFunc(ls, func(l memoryListener) bool { return l.id == id })
		if i < 0 {
			return
		}
		s.listeners[event] = slices.Delete(ls, i, i+1)
		s.backend.listening--
	}
}

// Rect returns the surface's screen rectangle, accumulated from the
// left/top offsets of its ancestors.
func (s *MemorySurface) Rect() Rect {
	if s.size != nil {
		return *s.size
	}
	r := Rect{
		X:      px(s.style["left"]),
		Y:      px(s.style["top"]),
		Width:  px(s.style["width"]),
		Height: px(s.style["height"]),
	}
	if s.parent != nil && s.parent.size == nil {
		pr := s.parent.Rect()
		r = r.Translate(pr.X, pr.Y)
	}
	return r
}

func px(v string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	return f
}

// Dispatch delivers ev to s and then to each ancestor until a listener
// stops propagation.
func (s *MemorySurface) Dispatch(ev *Event) {
	for cur := s; cur != nil && !ev.stopped; cur = cur.parent {
		for _, l := range slices.Clone(cur.listeners[ev.Type]) {
			l.fn(ev)
		}
	}
}

// Tag returns the tag the surface was created with.
func (s *MemorySurface) Tag() string { return s.tag }

// Style returns a recorded style property.
func (s *MemorySurface) Style(prop string) string { return s.style[prop] }

// Styles returns a copy of all recorded style properties.
func (s *MemorySurface) Styles() map[string]string { return maps.Clone(s.style) }

// Attr returns a recorded attribute.
func (s *MemorySurface) Attr(name string) string { return s.attrs[name] }

// Text returns the recorded text content.
func (s *MemorySurface) Text() string { return s.text }

// Writes returns the number of style, text and attribute writes.
func (s *MemorySurface) Writes() int { return s.writes }

// Attached reports whether the surface is reachable from the window.
func (s *MemorySurface) Attached() bool { return s.attached }

// Children returns the linked child surfaces.
func (s *MemorySurface) Children() []*MemorySurface { return s.children }

// Listeners returns the number of listeners for an event type.
func (s *MemorySurface) Listeners(event string) int { return len(s.listeners[event]) }
