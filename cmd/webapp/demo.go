package main

import (
	"cmp"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	webapp "github.com/grindlemire/go-webapp"
	"github.com/grindlemire/go-webapp/internal/termsize"
)

// runDemo implements the demo subcommand: a virtual list of -rows records,
// one terminal row each, scrolled by wheel events on a memory backend.
func runDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	rows := fs.Int("rows", 1000, "number of records")
	steps := fs.Int("steps", 3, "number of wheel steps")
	if err := fs.Parse(args); err != nil {
		return err
	}

	size := termsize.GetOrDefault(int(os.Stdout.Fd()))
	// Leave room for the step header.
	height := max(size.Rows-2, 1)

	cfg, err := webapp.LoadConfig()
	if err != nil {
		return err
	}
	log, err := cfg.OpenLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	backend := webapp.NewMemoryBackend(float64(size.Cols), float64(height))
	rt, err := webapp.New(backend, webapp.WithConfig(cfg), webapp.WithLogger(log),
		webapp.WithScheduler(webapp.NewManualScheduler()))
	if err != nil {
		return err
	}

	items := make([]any, *rows)
	for i := range items {
		items[i] = fmt.Sprintf("record %d", i)
	}
	list := rt.Mount(demoTemplate(items))

	wheel := func(dy float64) {
		list.Surface().(*webapp.MemorySurface).Dispatch(&webapp.Event{Type: "wheel", DeltaY: dy})
	}
	for step := 0; step <= *steps; step++ {
		if step > 0 {
			wheel(float64(height))
		}
		stats := list.ListStats()
		fmt.Printf("scrollTop=%g visible=%d created=%d reused=%d\n",
			list.ScrollTop(), stats.Visible, stats.Created, stats.Hits)
		printRows(list, size.Cols)
	}
	return nil
}

func demoTemplate(items []any) *webapp.Template {
	label := webapp.Compute(func(e *webapp.Element) any {
		it, _ := e.Parent().Get("data").(*webapp.Item)
		if it == nil {
			return ""
		}
		return fmt.Sprint(it.Data)
	}, "parent.data")

	return &webapp.Template{
		Name: "demo",
		Kind: webapp.KindContainer,
		Attrs: map[string]webapp.AttrDef{
			"items":      webapp.Value(items),
			"list":       webapp.Value(true),
			"virtual":    webapp.Value(true),
			"reuseItem":  webapp.Value(true),
			"scrollable": webapp.Value(true),
		},
		Slot: &webapp.Template{
			Name: "row",
			Kind: webapp.KindItem,
			Children: []*webapp.Template{{
				Name:  "label",
				Kind:  webapp.KindText,
				Attrs: map[string]webapp.AttrDef{"text": label},
			}},
		},
		Layout: webapp.StackLayout(1),
	}
}

func printRows(list *webapp.Element, cols int) {
	var rows []*webapp.Element
	for _, c := range list.Children() {
		if c.Item() != nil {
			rows = append(rows, c)
		}
	}
	slices.SortFunc(rows, func(a, b *webapp.Element) int { return cmp.Compare(a.Y(), b.Y()) })
	for _, r := range rows {
		line := fmt.Sprintf("%4g | %s", r.Y(), r.Child(0).String("text"))
		if len(line) > cols {
			line = line[:cols]
		}
		fmt.Println(strings.TrimRight(line, " "))
	}
}
