package attrgen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"unicode"

	"golang.org/x/tools/imports"
)

// webappImport is the import path of the element package.
const webappImport = "github.com/grindlemire/go-webapp"

// Field is one generated accessor pair.
type Field struct {
	Attr   string `yaml:"attr"`   // attribute name, e.g. "scrollTop"
	Method string `yaml:"method"` // getter name; defaults to Attr with an upper-case first letter
	Type   string `yaml:"type"`   // Go type; defaults to "any"
}

// Spec describes one output file.
type Spec struct {
	Package string // package clause of the output
	Type    string // receiver type; "Element" inside the webapp package
	// Wrap emits "type <Type> struct{ *webapp.Element }" and methods on it.
	Wrap   bool
	Source string // recorded in the header
	Fields []Field
}

// reserved are methods of *webapp.Element that a generated accessor must
// not shadow.
var reserved = map[string]bool{
	"Alive": true, "Attrs": true, "Bool": true, "Cell": true, "Child": true,
	"Children": true, "Float": true, "Get": true, "ID": true, "Item": true,
	"Kind": true, "ListStats": true, "Lookup": true, "Name": true,
	"OnUpdated": true, "Parent": true, "Reset": true, "Root": true,
	"Runtime": true, "Scrollbars": true, "Set": true, "SetStatic": true,
	"SideEffects": true, "Static": true, "String": true, "Surface": true,
	"Template": true, "AddSideEffect": true,
}

// Generator emits accessor source.
type Generator struct {
	buf    bytes.Buffer
	indent int

	// SkipImports uses format.Source instead of imports.Process (faster for tests)
	SkipImports bool
}

// NewGenerator creates a new generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces the formatted Go source for spec.
func (g *Generator) Generate(spec Spec) ([]byte, error) {
	fields, err := normalize(spec.Fields)
	if err != nil {
		return nil, err
	}
	if !token.IsIdentifier(spec.Package) || !token.IsIdentifier(spec.Type) {
		return nil, fmt.Errorf("invalid package %q or type %q", spec.Package, spec.Type)
	}

	g.buf.Reset()
	g.indent = 0
	g.writeln("// Code generated by webapp gen. DO NOT EDIT.")
	if spec.Source != "" {
		g.writef("// Source: %s\n", spec.Source)
	}
	g.writeln("")
	g.writef("package %s\n\n", spec.Package)

	recv := strings.ToLower(spec.Type[:1])
	recvType := "*" + spec.Type
	if spec.Wrap {
		g.writef("import webapp %q\n\n", webappImport)
		g.writef("// %s is a typed view of an element.\n", spec.Type)
		g.writef("type %s struct {\n", spec.Type)
		g.indent++
		g.writeln("*webapp.Element")
		g.indent--
		g.writeln("}")
		g.writeln("")
		recvType = spec.Type
	}

	for _, f := range fields {
		g.generateField(recv, recvType, f)
	}

	if g.SkipImports {
		return format.Source(g.buf.Bytes())
	}
	return imports.Process(spec.Source, g.buf.Bytes(), nil)
}

func (g *Generator) generateField(recv, recvType string, f Field) {
	g.writef("// %s returns the %s attribute.\n", f.Method, f.Attr)
	g.writef("func (%s %s) %s() %s {\n", recv, recvType, f.Method, f.Type)
	g.indent++
	switch f.Type {
	case "float64":
		g.writef("return %s.Float(%q)\n", recv, f.Attr)
	case "bool":
		g.writef("return %s.Bool(%q)\n", recv, f.Attr)
	case "string":
		g.writef("return %s.String(%q)\n", recv, f.Attr)
	case "any":
		g.writef("return %s.Get(%q)\n", recv, f.Attr)
	default:
		g.writef("v, _ := %s.Get(%q).(%s)\n", recv, f.Attr, f.Type)
		g.writeln("return v")
	}
	g.indent--
	g.writeln("}")
	g.writeln("")

	g.writef("// Set%s writes the %s attribute.\n", f.Method, f.Attr)
	g.writef("func (%s %s) Set%s(v %s) bool {\n", recv, recvType, f.Method, f.Type)
	g.indent++
	g.writef("return %s.Set(%q, v)\n", recv, f.Attr)
	g.indent--
	g.writeln("}")
	g.writeln("")
}

// normalize fills defaults and rejects duplicate or reserved names.
func normalize(in []Field) ([]Field, error) {
	out := make([]Field, 0, len(in))
	seen := make(map[string]string, len(in))
	for _, f := range in {
		if f.Attr == "" {
			return nil, fmt.Errorf("field without attribute name")
		}
		if f.Method == "" {
			f.Method = MethodName(f.Attr)
		}
		if f.Type == "" {
			f.Type = "any"
		}
		if !token.IsIdentifier(f.Method) || !token.IsExported(f.Method) {
			return nil, fmt.Errorf("attribute %q: invalid method name %q", f.Attr, f.Method)
		}
		if reserved[f.Method] || reserved["Set"+f.Method] {
			return nil, fmt.Errorf("attribute %q: method %s shadows an element method", f.Attr, f.Method)
		}
		if prev, ok := seen[f.Method]; ok {
			return nil, fmt.Errorf("attributes %q and %q both generate %s", prev, f.Attr, f.Method)
		}
		seen[f.Method] = f.Attr
		out = append(out, f)
	}
	return out, nil
}

// MethodName converts an attribute name to an exported method name.
func MethodName(attr string) string {
	r := []rune(attr)
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// writeln writes s and a newline at the current indent.
func (g *Generator) writeln(s string) {
	if s == "" {
		g.buf.WriteByte('\n')
		return
	}
	g.writeIndent()
	g.buf.WriteString(s)
	g.buf.WriteByte('\n')
}

func (g *Generator) writef(format string, args ...any) {
	g.writeIndent()
	fmt.Fprintf(&g.buf, format, args...)
}

func (g *Generator) writeIndent() {
	for i := 0; i < g.indent; i++ {
		g.buf.WriteByte('\t')
	}
}
