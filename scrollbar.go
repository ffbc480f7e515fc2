package webapp

import (
	"math"
	"time"
)

// ThumbGeometry returns the thumb length and position along one axis. The
// thumb is only visible while the content is longer than the viewport.
func ThumbGeometry(viewport, content, scroll, margin, minLen float64) (length, pos float64, visible bool) {
	if content <= viewport || content <= 0 {
		return 0, 0, false
	}
	length = math.Max(viewport*viewport/content, minLen)
	pos = (viewport-length-2*margin)*scroll/(content-viewport) + margin
	return length, pos, true
}

// Scrollbar drives one thumb of a scrollable container. Its only state is
// whether a drag is in progress; geometry is derived from the container
// every time it is shown.
type Scrollbar struct {
	vertical  bool
	key       string
	container *Element
	thumb     *Element
	fade      *Debouncer
	dragging  bool
}

func newScrollbar(c *Element, vertical bool) *Scrollbar {
	s := &Scrollbar{vertical: vertical, container: c, key: "hBar"}
	idx := 0
	if vertical {
		s.key, idx = "vBar", 1
	}
	s.thumb = c.Child(idx)
	c.rt.log.Assert(s.thumb != nil && s.thumb.Kind() == KindScrollbar, "container %s has no %s thumb", c.id, s.key)

	delay := time.Duration(c.Float("scrollBarFadeTime") * float64(time.Millisecond))
	s.fade = NewDebouncer(c.rt.sched, delay, func() { s.SetActive(false) })
	c.AddSideEffect(s.key+".fade", s.fade.Cancel)
	return s
}

// Vertical reports the axis.
func (s *Scrollbar) Vertical() bool { return s.vertical }

// Thumb returns the thumb element.
func (s *Scrollbar) Thumb() *Element { return s.thumb }

// Dragging reports whether a drag is in progress.
func (s *Scrollbar) Dragging() bool { return s.dragging }

func (s *Scrollbar) contentLen() float64 {
	if s.vertical {
		return s.container.Float("childHeight")
	}
	return s.container.Float("childWidth")
}

func (s *Scrollbar) viewportLen() float64 {
	if s.vertical {
		return s.container.Float("h")
	}
	return s.container.Float("w")
}

func (s *Scrollbar) scrollAttr() string {
	if s.vertical {
		return "scrollTop"
	}
	return "scrollLeft"
}

// Scroll returns the container's offset along the axis.
func (s *Scrollbar) Scroll() float64 { return s.container.Float(s.scrollAttr()) }

// SetScroll writes the offset, clamped to [0, content-viewport].
func (s *Scrollbar) SetScroll(v float64) {
	limit := math.Max(s.contentLen()-s.viewportLen(), 0)
	s.container.Set(s.scrollAttr(), math.Min(limit, math.Max(v, 0)))
}

// Show places the thumb, or hides it when flag is false or there is
// nothing to scroll.
func (s *Scrollbar) Show(flag bool) {
	if s.thumb == nil || !s.thumb.Alive() {
		return
	}
	c := s.container
	length, pos, visible := ThumbGeometry(s.viewportLen(), s.contentLen(), s.Scroll(),
		c.Float("scrollBarMargin"), c.Float("scrollBarMinLength"))
	if !flag || !visible {
		s.thumb.Set("v", 0.0)
		return
	}
	if s.vertical {
		s.thumb.Set("h", length)
		s.thumb.Set("y", pos)
	} else {
		s.thumb.Set("w", length)
		s.thumb.Set("x", pos)
	}
	s.thumb.Set("v", 1.0)
}

// SetActive makes the thumb opaque or transparent.
func (s *Scrollbar) SetActive(active bool) {
	if s.thumb == nil || !s.thumb.Alive() {
		return
	}
	if active {
		s.thumb.Set("opacity", 1.0)
	} else {
		s.thumb.Set("opacity", 0.0)
	}
}

// Wheel scrolls by the raw wheel delta, shows the thumb and restarts the
// fade timer.
func (s *Scrollbar) Wheel(ev *Event) {
	if s.contentLen() <= s.viewportLen() {
		return
	}
	s.SetActive(true)
	delta := ev.DeltaX
	if s.vertical {
		delta = ev.DeltaY
	}
	s.SetScroll(s.Scroll() + delta)
	s.Show(true)
	s.fade.Trigger()
}

func (s *Scrollbar) eventPos(ev *Event) float64 {
	if s.vertical {
		return ev.Y
	}
	return ev.X
}

func (s *Scrollbar) containerSpan() (lo, hi float64) {
	r := s.container.surface.Rect()
	if s.vertical {
		return r.Y, r.Bottom()
	}
	return r.X, r.Right()
}

// Drag converts a pointer movement along the axis from prev to pos into a
// scroll change. It returns the clamped pointer position to pass as prev
// next time.
func (s *Scrollbar) Drag(prev, pos float64) float64 {
	lo, hi := s.containerSpan()
	if (pos < lo && prev == lo) || (pos > hi && prev == hi) {
		return prev
	}
	mouse := math.Min(hi, math.Max(pos, lo))

	c := s.container
	viewport, content := s.viewportLen(), s.contentLen()
	length, _, visible := ThumbGeometry(viewport, content, 0, 0, c.Float("scrollBarMinLength"))
	track := viewport - length - 2*c.Float("scrollBarMargin")
	if !visible || track <= 0 {
		return mouse
	}
	s.SetScroll(s.Scroll() + (mouse-prev)*(content-viewport)/track)
	s.Show(true)
	s.SetActive(true)
	return mouse
}

func (s *Scrollbar) initDraggable() {
	if s.thumb == nil {
		return
	}
	c := s.container
	win := c.rt.backend.Window()
	s.thumb.Set("onMouseDown", EventHandler(func(_ *Element, ev0 *Event) {
		ev0.StopPropagation()
		s.dragging = true
		s.fade.Cancel()
		prev := s.eventPos(ev0)
		c.AddSideEffect(s.key+".drag", win.Listen("mousemove", func(ev *Event) {
			prev = s.Drag(prev, s.eventPos(ev))
		}))
		c.once(s.key+".release", win, "mouseup", func(*Event) {
			s.dragging = false
			c.AddSideEffect(s.key+".drag", nil)
			s.fade.Trigger()
		})
	}))
}
