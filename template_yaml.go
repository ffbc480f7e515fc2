package webapp

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// TemplateDoc is the YAML form of a Template.
//
//	templates:
//	  - name: list
//	    kind: container
//	    attrs:
//	      h: {from: parent.h}
//	      list: {value: true}
//	      x: {compute: center, sources: [parent.w, .w]}
//	    slot: {name: row, kind: item}
//	    layout: {kind: stack, rowHeight: 20}
type TemplateDoc struct {
	Name     string             `yaml:"name"`
	Kind     string             `yaml:"kind"`
	Tag      string             `yaml:"tag"`
	Position string             `yaml:"position"`
	Overflow string             `yaml:"overflow"`
	Attrs    map[string]AttrDoc `yaml:"attrs"`
	Statics  map[string]any     `yaml:"statics"`
	Children []TemplateDoc      `yaml:"children"`
	Slot     *TemplateDoc       `yaml:"slot"`
	Layout   *LayoutDoc         `yaml:"layout"`
}

// AttrDoc declares an attribute by constant value, by copying another
// attribute, or by a named compute function over sources.
type AttrDoc struct {
	Value   any      `yaml:"value"`
	From    string   `yaml:"from"`
	Compute string   `yaml:"compute"`
	Sources []string `yaml:"sources"`
	// Type overrides the Go type used by generated accessors.
	Type string `yaml:"type"`
}

// LayoutDoc selects a built-in item layout.
type LayoutDoc struct {
	Kind      string  `yaml:"kind"` // "stack" or "text"
	RowHeight float64 `yaml:"rowHeight"`
	CharWidth float64 `yaml:"charWidth"`
}

type templateFile struct {
	Templates []TemplateDoc `yaml:"templates"`
}

// ErrNoTemplates is returned for a document without templates.
var ErrNoTemplates = errors.New("no templates")

// GoType returns the Go type of the attribute's values: the declared type,
// else the type of its constant value, else any.
func (a AttrDoc) GoType() string {
	if a.Type != "" {
		return a.Type
	}
	switch normalizeValue(a.Value).(type) {
	case float64:
		return "float64"
	case bool:
		return "bool"
	case string:
		return "string"
	case []any:
		return "[]any"
	}
	return "any"
}

// ParseKind returns the kind with the given name.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindDiv, nil
	}
	if i := slices.Index(kindNames[:], s); i >= 0 {
		return Kind(i), nil
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

// ReadTemplateDocs decodes the YAML template document without building it.
func ReadTemplateDocs(r io.Reader) ([]TemplateDoc, error) {
	var f templateFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoTemplates
		}
		return nil, fmt.Errorf("decode templates: %w", err)
	}
	if len(f.Templates) == 0 {
		return nil, ErrNoTemplates
	}
	return f.Templates, nil
}

// LoadTemplates reads templates from YAML. Compute functions are looked up
// by name in funcs.
func LoadTemplates(r io.Reader, funcs map[string]ComputeFunc) ([]*Template, error) {
	docs, err := ReadTemplateDocs(r)
	if err != nil {
		return nil, err
	}
	out := make([]*Template, 0, len(docs))
	for i := range docs {
		t, err := docs[i].Build(funcs)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Build converts the document into a Template.
func (d *TemplateDoc) Build(funcs map[string]ComputeFunc) (*Template, error) {
	kind, err := ParseKind(d.Kind)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", d.Name, err)
	}
	t := &Template{
		Name:     d.Name,
		Kind:     kind,
		Tag:      d.Tag,
		Position: d.Position,
		Overflow: d.Overflow,
		Attrs:    make(map[string]AttrDef, len(d.Attrs)),
	}
	for name, a := range d.Attrs {
		def, err := a.build(funcs)
		if err != nil {
			return nil, fmt.Errorf("template %q attr %q: %w", d.Name, name, err)
		}
		t.Attrs[name] = def
	}
	if len(d.Statics) > 0 {
		t.Statics = make(map[string]any, len(d.Statics))
		for k, v := range d.Statics {
			t.Statics[k] = normalizeValue(v)
		}
	}
	for i := range d.Children {
		c, err := d.Children[i].Build(funcs)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", d.Name, err)
		}
		t.Children = append(t.Children, c)
	}
	if d.Slot != nil {
		if t.Slot, err = d.Slot.Build(funcs); err != nil {
			return nil, fmt.Errorf("template %q slot: %w", d.Name, err)
		}
	}
	if d.Layout != nil {
		if t.Layout, err = d.Layout.build(); err != nil {
			return nil, fmt.Errorf("template %q: %w", d.Name, err)
		}
	}
	return t, nil
}

func (a AttrDoc) build(funcs map[string]ComputeFunc) (AttrDef, error) {
	switch {
	case a.From != "" && a.Compute != "":
		return AttrDef{}, fmt.Errorf("from and compute are exclusive")
	case a.From != "":
		if _, err := ParseAddress(a.From); err != nil {
			return AttrDef{}, err
		}
		return From(a.From), nil
	case a.Compute != "":
		fn, ok := funcs[a.Compute]
		if !ok {
			return AttrDef{}, fmt.Errorf("unknown compute func %q", a.Compute)
		}
		sources := make([]Address, 0, len(a.Sources))
		for _, s := range a.Sources {
			addr, err := ParseAddress(s)
			if err != nil {
				return AttrDef{}, err
			}
			sources = append(sources, addr)
		}
		return AttrDef{Compute: fn, Sources: sources}, nil
	case a.Value != nil:
		return Value(normalizeValue(a.Value)), nil
	}
	return AttrDef{}, nil
}

func (l *LayoutDoc) build() (ItemLayout, error) {
	if l.RowHeight <= 0 {
		return nil, fmt.Errorf("layout %q: rowHeight must be positive, got %v", l.Kind, l.RowHeight)
	}
	switch l.Kind {
	case "stack":
		return StackLayout(l.RowHeight), nil
	case "text":
		if l.CharWidth <= 0 {
			return nil, fmt.Errorf("layout %q: charWidth must be positive, got %v", l.Kind, l.CharWidth)
		}
		return TextRowLayout(l.RowHeight, l.CharWidth, func(rec any) string { return fmt.Sprint(rec) }), nil
	}
	return nil, fmt.Errorf("unknown layout %q", l.Kind)
}

// normalizeValue converts YAML scalars to attribute types: every number
// becomes a float64 and sequences become []any.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = normalizeValue(e)
		}
		return out
	}
	return v
}
