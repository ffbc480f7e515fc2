package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	webapp "github.com/grindlemire/go-webapp"
	"github.com/grindlemire/go-webapp/internal/attrgen"
)

func bytesReader(b []byte) *bytes.Reader { return bytes.NewReader(b) }

// runGen implements the gen subcommand. The input is either a fields file
// or a templates file, in which case the accessors cover the attributes
// declared by one template.
func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	typ := fs.String("type", "Element", "receiver type")
	pkg := fs.String("pkg", "", "package name (default: the output directory name)")
	out := fs.String("o", "", "output file (default: stdout)")
	wrap := fs.Bool("wrap", false, "emit a wrapper type embedding *webapp.Element")
	tmpl := fs.String("template", "", "template to take attributes from")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("gen takes exactly one input file")
	}
	input := fs.Arg(0)

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	fields, err := readGenFields(data, *tmpl)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	if *pkg == "" {
		dir := "."
		if *out != "" {
			dir = filepath.Dir(*out)
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		*pkg = filepath.Base(abs)
	}

	src, err := attrgen.NewGenerator().Generate(attrgen.Spec{
		Package: *pkg,
		Type:    *typ,
		Wrap:    *wrap,
		Source:  filepath.Base(input),
		Fields:  fields,
	})
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}
	if *out == "" {
		_, err = os.Stdout.Write(src)
		return err
	}
	if err := os.WriteFile(*out, src, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func readGenFields(data []byte, tmpl string) ([]attrgen.Field, error) {
	if tmpl == "" {
		return attrgen.ReadFields(bytesReader(data))
	}
	docs, err := webapp.ReadTemplateDocs(bytesReader(data))
	if err != nil {
		return nil, err
	}
	doc := findDoc(docs, tmpl)
	if doc == nil {
		return nil, fmt.Errorf("template %q not found", tmpl)
	}
	names := make([]string, 0, len(doc.Attrs))
	for name := range doc.Attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	fields := make([]attrgen.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, attrgen.Field{Attr: name, Type: doc.Attrs[name].GoType()})
	}
	if len(fields) == 0 {
		return nil, errors.New("template declares no attributes")
	}
	return fields, nil
}

// findDoc searches docs and their descendants for a template by name.
func findDoc(docs []webapp.TemplateDoc, name string) *webapp.TemplateDoc {
	for i := range docs {
		d := &docs[i]
		if strings.EqualFold(d.Name, name) {
			return d
		}
		if found := findDoc(d.Children, name); found != nil {
			return found
		}
		if d.Slot != nil {
			if found := findDoc([]webapp.TemplateDoc{*d.Slot}, name); found != nil {
				return found
			}
		}
	}
	return nil
}
