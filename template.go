package webapp

import (
	"maps"
	"slices"
)

// Kind selects the built-in behaviour and default attributes of an element.
type Kind int

const (
	// KindDiv is a plain element.
	KindDiv Kind = iota
	// KindText is a text element; its text attribute is mirrored as content.
	KindText
	// KindContainer hosts a scrollable slot child or a recycled item list.
	KindContainer
	// KindItem is a list item created from a container's slot.
	KindItem
	// KindScrollbar is a scrollbar thumb.
	KindScrollbar
	// KindImage shows src; with tag "svg" the source is loaded as text.
	KindImage
	// KindInput is a text input.
	KindInput
)

var kindNames = [...]string{"div", "text", "container", "item", "scrollbar", "image", "input"}

// String returns the kind's name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// AttrDef declares one attribute: its compute function and the symbolic
// sources it depends on.
type AttrDef struct {
	Compute ComputeFunc
	Sources []Address
}

// Value declares an attribute with a constant value and no sources.
func Value(v any) AttrDef {
	return AttrDef{Compute: func(*Element) any { return v }}
}

// Compute declares a derived attribute. Sources use the string address form
// and an invalid one panics.
func Compute(fn ComputeFunc, sources ...string) AttrDef {
	return AttrDef{Compute: fn, Sources: MustParseAddresses(sources...)}
}

// From declares an attribute that copies the value of source.
func From(source string) AttrDef {
	addr := MustParseAddresses(source)[0]
	return AttrDef{
		Compute: func(e *Element) any { return e.Lookup(addr) },
		Sources: []Address{addr},
	}
}

// ItemLayout computes the geometry of record index, given the previous
// computed item (nil for the first). It is called once per record per
// reconciliation pass in increasing index order.
type ItemLayout func(container *Element, index int, prev *Item) Item

// Template describes an element subtree. Templates are plain data and may be
// instantiated any number of times; sources are resolved per instance.
type Template struct {
	Name     string
	Kind     Kind
	Tag      string // defaults per kind: "div", "span", "img", "input"
	Position string // defaults to "absolute"
	Overflow string // defaults to "hidden"

	Attrs    map[string]AttrDef
	Statics  map[string]any
	Children []*Template

	// Slot is the item template of a container. List containers instantiate
	// it once per visible record; other containers instantiate it once.
	Slot *Template
	// Layout positions list records. Required when the list attribute is set.
	Layout ItemLayout

	OnCreated func(e *Element)
	OnUpdated func(e *Element, name string, v any)
}

func (t *Template) tag() string {
	if t.Tag != "" {
		return t.Tag
	}
	switch t.Kind {
	case KindText:
		return "span"
	case KindImage:
		return "img"
	case KindInput:
		return "input"
	}
	return "div"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// attrDefs merges the kind defaults under the declared attributes and
// returns them with their names in sorted order.
func (t *Template) attrDefs() ([]string, map[string]AttrDef) {
	defs := make(map[string]AttrDef, len(baseAttrs)+len(t.Attrs)+16)
	maps.Copy(defs, baseAttrs)
	maps.Copy(defs, kindAttrs[t.Kind])
	maps.Copy(defs, t.Attrs)
	return slices.Sorted(maps.Keys(defs)), defs
}

// eventAttrs are handler attributes. They have no compute function and stay
// Unset until a handler is written.
var eventAttrs = []string{
	"onActive", "onClick", "onClickOutside",
	"onCompositionEnd", "onCompositionStart", "onCompositionUpdate",
	"onCopy", "onCut", "onDoubleClick", "onFocus", "onHover", "onInput",
	"onKeyDown", "onKeyUp", "onMouseDown", "onMouseMove", "onMouseUp",
	"onPaste", "onScrollLeft", "onScrollTop", "onWheel",
}

var baseAttrs = func() map[string]AttrDef {
	m := map[string]AttrDef{
		"background":           Value(""),
		"backgroundColor":      Value(""),
		"borderBottom":         Value(0.0),
		"borderColor":          Value(""),
		"borderLeft":           Value(0.0),
		"borderRadius":         Value(0.0),
		"borderRight":          Value(0.0),
		"borderStyle":          Value("solid"),
		"borderTop":            Value(0.0),
		"boxShadow":            Value(""),
		"caretColor":           Value(""),
		"ch":                   Value(0.0),
		"color":                Value(""),
		"cursor":               Value("inherit"),
		"cw":                   Value(0.0),
		"fontFamily":           Value("Roboto, SourceHanSans, NotoColorEmoji"),
		"fontSize":             Value(0.0),
		"fontVariantLigatures": Value("none"),
		"h":                    Value(0.0),
		"hovered":              Value(false),
		"hoveredByMouse":       Value(false),
		"innerText":            Value(""),
		"lineHeight":           Value(0.0),
		"opacity":              Value(1.0),
		"outline":              Value("none"),
		"position":             Value("absolute"),
		"scrollLeft":           Value(0.0),
		"scrollTop":            Value(0.0),
		"userSelect":           Value("none"),
		"v":                    Value(0.0),
		"w":                    Value(0.0),
		"x":                    Value(0.0),
		"x2":                   Value(0.0),
		"y":                    Value(0.0),
		"y2":                   Value(0.0),
		"zIndex":               Value(0.0),
	}
	for _, name := range eventAttrs {
		m[name] = AttrDef{}
	}
	return m
}()

var kindAttrs = map[Kind]map[string]AttrDef{
	KindText: {
		"align": Value("left"),
		"text":  Value(""),
	},
	KindContainer: {
		"align":              Value(AlignNone),
		"childHeight":        Value(0.0),
		"childWidth":         Value(0.0),
		"ch":                 From(".h"),
		"cw":                 From(".w"),
		"items":              Value([]any{}),
		"list":               Value(false),
		"minWidth":           Value(0.0),
		"reuseItem":          Value(false),
		"scrollBarFadeTime":  Value(0.0),
		"scrollBarMargin":    Value(0.0),
		"scrollBarMinLength": Value(0.0),
		"scrollBarWidth":     Value(0.0),
		"scrollable":         Value(false),
		"virtual":            Value(false),
	},
	KindItem: {
		"data": Value((*Item)(nil)),
	},
	KindScrollbar: {
		"vertical": Value(false),
	},
	KindImage: {
		"src": Value(""),
	},
	KindInput: {
		"placeholder": Value(""),
	},
}

// scrollbarTemplate is the reserved thumb child of every container. The
// controller owns the position and length along the scroll axis; the cross
// axis follows the container.
func scrollbarTemplate(vertical bool) *Template {
	t := &Template{
		Kind:  KindScrollbar,
		Attrs: map[string]AttrDef{"vertical": Value(vertical), "zIndex": Value(1.0)},
	}
	if vertical {
		t.Name = "vBar"
		t.Attrs["w"] = From("parent.scrollBarWidth")
		t.Attrs["x"] = Compute(func(e *Element) any {
			p := e.Parent()
			return p.Float("w") - p.Float("scrollBarWidth")
		}, "parent.w", "parent.scrollBarWidth")
	} else {
		t.Name = "hBar"
		t.Attrs["h"] = From("parent.scrollBarWidth")
		t.Attrs["y"] = Compute(func(e *Element) any {
			p := e.Parent()
			return p.Float("h") - p.Float("scrollBarWidth")
		}, "parent.h", "parent.scrollBarWidth")
	}
	return t
}
