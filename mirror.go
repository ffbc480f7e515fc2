package webapp

import (
	"strconv"
)

// EventHandler handles a surface event for an element.
type EventHandler func(e *Element, ev *Event)

// ActiveHandler runs on press and may return a handler for the release.
type ActiveHandler func(e *Element, ev *Event) EventHandler

// OutsideHandler runs for window clicks outside the element. Returning
// true removes the handler.
type OutsideHandler func(e *Element, ev *Event) bool

// HoverHandler observes the hovered attribute.
type HoverHandler func(e *Element, hovered bool)

// ScrollHandler observes a scroll offset attribute.
type ScrollHandler func(e *Element, offset float64)

// pxStyles are mirrored as "<n>px".
var pxStyles = map[string]string{
	"x":            "left",
	"y":            "top",
	"w":            "width",
	"h":            "height",
	"borderBottom": "borderBottomWidth",
	"borderLeft":   "borderLeftWidth",
	"borderRight":  "borderRightWidth",
	"borderTop":    "borderTopWidth",
	"borderRadius": "borderRadius",
	"fontSize":     "fontSize",
	"lineHeight":   "lineHeight",
}

// plainStyles are mirrored verbatim.
var plainStyles = map[string]bool{
	"background":           true,
	"backgroundColor":      true,
	"borderColor":          true,
	"borderStyle":          true,
	"boxShadow":            true,
	"caretColor":           true,
	"color":                true,
	"cursor":               true,
	"fontFamily":           true,
	"fontVariantLigatures": true,
	"opacity":              true,
	"outline":              true,
	"position":             true,
	"userSelect":           true,
	"zIndex":               true,
}

// domEvents maps handler attributes to surface event types.
var domEvents = map[string]string{
	"onClick":             "click",
	"onCompositionEnd":    "compositionend",
	"onCompositionStart":  "compositionstart",
	"onCompositionUpdate": "compositionupdate",
	"onCopy":              "copy",
	"onCut":               "cut",
	"onDoubleClick":       "dblclick",
	"onInput":             "input",
	"onKeyDown":           "keydown",
	"onKeyUp":             "keyup",
	"onMouseDown":         "mousedown",
	"onMouseMove":         "mousemove",
	"onMouseUp":           "mouseup",
	"onPaste":             "paste",
	"onWheel":             "wheel",
}

// IsMirrored reports whether writes to the attribute reach the surface.
func IsMirrored(name string) bool {
	_, px := pxStyles[name]
	return px || plainStyles[name] || name == "v" || name == "innerText"
}

func formatNumber(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(toFloat(v), 'f', -1, 64)
}

// mirror reflects a changed attribute onto the surface and installs handler
// side effects. Element-logic attributes fall through untouched.
func (e *Element) mirror(name string, v any) {
	s := e.surface
	if prop, ok := pxStyles[name]; ok {
		s.SetStyle(prop, formatNumber(v)+"px")
		return
	}
	if plainStyles[name] {
		s.SetStyle(name, formatNumber(v))
		return
	}
	switch name {
	case "v":
		if truthy(v) {
			s.SetStyle("visibility", "visible")
		} else {
			s.SetStyle("visibility", "hidden")
		}
		return
	case "innerText":
		if text, ok := v.(string); ok && e.template.tag() == "span" {
			s.SetText(text)
		}
		return
	case "hovered":
		if h := asHoverHandler(e.Get("onHover")); h != nil {
			h(e, truthy(v))
		}
		return
	case "scrollLeft":
		if h := asScrollHandler(e.Get("onScrollLeft")); h != nil {
			h(e, toFloat(v))
		}
		return
	case "scrollTop":
		if h := asScrollHandler(e.Get("onScrollTop")); h != nil {
			h(e, toFloat(v))
		}
		return
	}
	e.installHandler(name, v)
}

func (e *Element) installHandler(name string, v any) {
	s := e.surface
	if event, ok := domEvents[name]; ok {
		if h := asEventHandler(v); h != nil {
			e.AddSideEffect(name, s.Listen(event, func(ev *Event) { h(e, ev) }))
		}
		return
	}
	switch name {
	case "onActive":
		h := asActiveHandler(v)
		if h == nil {
			return
		}
		e.AddSideEffect(name, s.Listen("mousedown", func(ev *Event) {
			release := h(e, ev)
			e.once(name+".release", s, "mouseup", func(ev *Event) {
				if release != nil {
					release(e, ev)
				}
			})
		}))
	case "onFocus":
		h := asActiveHandler(v)
		if h == nil {
			return
		}
		e.AddSideEffect(name, s.Listen("focus", func(ev *Event) {
			blur := h(e, ev)
			e.once(name+".blur", s, "blur", func(ev *Event) {
				if blur != nil {
					blur(e, ev)
				}
			})
		}))
	case "onHover":
		if asHoverHandler(v) == nil {
			return
		}
		e.AddSideEffect("mouseenter", s.Listen("mouseenter", func(*Event) {
			e.once("mouseleave", s, "mouseleave", func(*Event) { e.Set("hoveredByMouse", false) })
			e.Set("hoveredByMouse", true)
		}))
	case "onClickOutside":
		h := asOutsideHandler(v)
		if h == nil {
			return
		}
		e.AddSideEffect(name, e.rt.backend.Window().Listen("click", func(ev *Event) {
			if e.surface.Rect().Contains(ev.X, ev.Y) {
				return
			}
			if h(e, ev) {
				e.AddSideEffect(name, nil)
			}
		}))
	}
}

// once registers a listener that removes itself after the first event. It
// is tracked as a side effect so detaching before the event cancels it.
func (e *Element) once(key string, s Surface, event string, fn func(*Event)) {
	e.AddSideEffect(key, s.Listen(event, func(ev *Event) {
		e.AddSideEffect(key, nil)
		fn(ev)
	}))
}

func asEventHandler(v any) EventHandler {
	switch h := v.(type) {
	case EventHandler:
		return h
	case func(*Element, *Event):
		return h
	}
	return nil
}

func asActiveHandler(v any) ActiveHandler {
	switch h := v.(type) {
	case ActiveHandler:
		return h
	case func(*Element, *Event) EventHandler:
		return h
	}
	return nil
}

func asOutsideHandler(v any) OutsideHandler {
	switch h := v.(type) {
	case OutsideHandler:
		return h
	case func(*Element, *Event) bool:
		return h
	}
	return nil
}

func asHoverHandler(v any) HoverHandler {
	switch h := v.(type) {
	case HoverHandler:
		return h
	case func(*Element, bool):
		return h
	}
	return nil
}

func asScrollHandler(v any) ScrollHandler {
	switch h := v.(type) {
	case ScrollHandler:
		return h
	case func(*Element, float64):
		return h
	}
	return nil
}
