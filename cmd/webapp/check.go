package main

import (
	"fmt"
	"io"
	"os"

	webapp "github.com/grindlemire/go-webapp"
)

// runCheck implements the check subcommand. Each template is mounted on a
// memory backend; compute functions referenced by name are stubbed, so only
// the dependency structure is checked.
func runCheck(args []string) error {
	verbose := false
	var paths []string
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
		} else {
			paths = append(paths, arg)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no template files given")
	}

	var failed int
	for _, path := range paths {
		cycles, err := checkFile(path, verbose, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		if cycles > 0 {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) had errors", failed)
	}
	if verbose {
		fmt.Printf("All %d file(s) passed checks\n", len(paths))
	}
	return nil
}

// checkFile mounts every template of path and returns the number of cycle
// reports produced.
func checkFile(path string, verbose bool, out io.Writer) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}
	docs, err := webapp.ReadTemplateDocs(bytesReader(data))
	if err != nil {
		return 0, err
	}
	templates, err := webapp.LoadTemplates(bytesReader(data), stubFuncs(docs))
	if err != nil {
		return 0, err
	}

	cfg, err := webapp.LoadConfig()
	if err != nil {
		return 0, err
	}
	log, err := cfg.OpenLogger()
	if err != nil {
		return 0, err
	}
	defer log.Close()

	backend := webapp.NewMemoryBackend(800, 600)
	rt, err := webapp.New(backend,
		webapp.WithConfig(cfg),
		webapp.WithLogger(log),
		webapp.WithScheduler(webapp.NewManualScheduler()),
	)
	if err != nil {
		return 0, err
	}
	for _, t := range templates {
		rt.Mount(t)
		if verbose {
			fmt.Fprintf(out, "%s:\n%s", t.Name, backend.Snapshot())
		}
	}
	for _, report := range rt.Diagnostics() {
		fmt.Fprintf(out, "%s: %v\n", path, report)
	}
	return len(rt.Diagnostics()), nil
}

// stubFuncs returns a placeholder for every compute function the documents
// reference by name.
func stubFuncs(docs []webapp.TemplateDoc) map[string]webapp.ComputeFunc {
	funcs := make(map[string]webapp.ComputeFunc)
	var visit func(d *webapp.TemplateDoc)
	visit = func(d *webapp.TemplateDoc) {
		for _, a := range d.Attrs {
			if a.Compute != "" {
				funcs[a.Compute] = func(*webapp.Element) any { return 0.0 }
			}
		}
		for i := range d.Children {
			visit(&d.Children[i])
		}
		if d.Slot != nil {
			visit(d.Slot)
		}
	}
	for i := range docs {
		visit(&docs[i])
	}
	return funcs
}
