package webapp

// Event is an input event delivered by a Surface. Coordinates are in
// screen space.
type Event struct {
	Type           string
	X, Y           float64
	DeltaX, DeltaY float64
	Key            string
	Text           string

	defaultPrevented bool
	stopped          bool
}

// PreventDefault marks the event as handled by the application.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation keeps the event from reaching ancestor surfaces.
func (ev *Event) StopPropagation() { ev.stopped = true }

// Stopped reports whether StopPropagation was called.
func (ev *Event) Stopped() bool { return ev.stopped }

// Surface is the backing visual primitive an element mirrors its attributes
// onto. Implementations live outside the core.
type Surface interface {
	// Append links child under this surface.
	Append(child Surface)
	// Remove unlinks this surface from its parent.
	Remove()
	// SetStyle writes a geometry or style property.
	SetStyle(prop, value string)
	// SetText replaces the text content.
	SetText(text string)
	// SetAttr writes a non-style attribute such as src or placeholder.
	SetAttr(name, value string)
	// Listen subscribes to an input event type. The returned func cancels.
	Listen(event string, fn func(*Event)) (cancel func())
	// Rect returns the current screen-space bounding rectangle.
	Rect() Rect
}

// Backend creates surfaces and exposes the top-level window, which hosts
// mounted roots and delivers window-wide events (pointer moves during
// drags, releases, resizes).
type Backend interface {
	NewSurface(tag string) Surface
	Window() Surface
}
