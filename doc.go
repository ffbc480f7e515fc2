// Package webapp composes reactive element trees over an abstract visual
// surface.
//
// Every element attribute is a cell: a memoized value with a compute
// function and symbolic sources (see [Address]) resolved when the element
// is attached. Writing a cell recomputes everything that depends on it
// before the write returns. Trees are built from [Template]s by a
// [Runtime], which owns the cell arena, the event bus and the update queue:
//
//	rt, err := webapp.New(webapp.NewMemoryBackend(800, 600))
//	root := rt.Mount(&webapp.Template{Name: "app", Kind: webapp.KindContainer, ...})
//	root.Set("scrollTop", 40.0)
//
// Containers recycle list children for virtualized collections and drive
// their scrollbar thumbs; see [StackLayout] and [ThumbGeometry].
package webapp

//go:generate go run ./cmd/webapp gen -type Element -pkg webapp -o attrs_gen.go attrs.yaml
