package webapp

import (
	"fmt"
	"strings"
)

// CycleEntry is one cell left unsettled by an initialization sweep.
type CycleEntry struct {
	Cell       string   // "id(element.attr)"
	Sources    []string // declared sources in address form
	Unresolved []string // sources that resolved to no cell
}

// CycleReport is produced once per sweep that could not settle every cell.
// It is logged, stored on the runtime and emitted on TopicCycle.
type CycleReport struct {
	Root    string
	Entries []CycleEntry
}

func (c *CycleReport) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "loop detected under %s", c.Root)
	for _, e := range c.Entries {
		fmt.Fprintf(&b, "\n\t%s: %s", e.Cell, strings.Join(e.Sources, ", "))
		if len(e.Unresolved) > 0 {
			fmt.Fprintf(&b, " (unresolved: %s)", strings.Join(e.Unresolved, ", "))
		}
	}
	return b.String()
}

// Cells returns the names of the unsettled cells.
func (c *CycleReport) Cells() []string {
	out := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Cell
	}
	return out
}

// sweep computes refs in dependency order, each exactly once. A cell is
// settled when every source inside the sweep is settled; sources outside
// the sweep already hold their value, and a source that resolved to nothing
// never settles. Cells awaiting the sweep are
// marked pending so that stores do not fan out to them early.
func (r *Runtime) sweep(root string, refs []CellRef) *CycleReport {
	g := r.graph
	in := make(map[CellRef]bool, len(refs))
	for _, ref := range refs {
		if c := g.get(ref); c != nil {
			in[ref] = true
			c.pending = true
		}
	}
	settled := make(map[CellRef]bool, len(in))

	for len(settled) < len(in) {
		progress := false
		for _, ref := range refs {
			if settled[ref] || !in[ref] || !r.settles(ref, in, settled) {
				continue
			}
			settled[ref] = true
			progress = true
			if c := g.get(ref); c != nil {
				c.pending = false
			}
			g.Update(ref)
		}
		if !progress {
			break
		}
	}
	if len(settled) == len(in) {
		return nil
	}

	report := &CycleReport{Root: root}
	for _, ref := range refs {
		if settled[ref] || !in[ref] {
			continue
		}
		c := g.get(ref)
		if c == nil {
			continue
		}
		c.pending = false
		entry := CycleEntry{Cell: g.Name(ref)}
		for i, addr := range c.sources {
			entry.Sources = append(entry.Sources, addr.String())
			if i >= len(c.resolved) || !g.Alive(c.resolved[i]) {
				entry.Unresolved = append(entry.Unresolved, addr.String())
			}
		}
		report.Entries = append(report.Entries, entry)
	}
	return report
}

func (r *Runtime) settles(ref CellRef, in, settled map[CellRef]bool) bool {
	c := r.graph.get(ref)
	if c == nil {
		return true
	}
	if len(c.resolved) != len(c.sources) {
		return false
	}
	for _, src := range c.resolved {
		if !r.graph.Alive(src) || (in[src] && !settled[src]) {
			return false
		}
	}
	return true
}
