package webapp

import (
	"fmt"
	"strconv"
	"strings"
)

// AddressKind selects how an Address finds its target element.
type AddressKind uint8

const (
	// AddrSelf is the owning element.
	AddrSelf AddressKind = iota
	// AddrRoot is the ancestor at the owner's template nesting depth ("this").
	AddrRoot
	// AddrParent is the owner's parent.
	AddrParent
	// AddrChild is the owner's child at Index.
	AddrChild
	// AddrSibling is the element Index positions away in the parent's child list.
	AddrSibling
	// AddrNamed is an element found by Name (see ResolveElement).
	AddrNamed
)

// Address is a symbolic source resolved relative to a cell's owner at
// subscribe time. Attr names the cell on the target element; an empty Attr
// addresses the element itself, which never resolves to a cell.
type Address struct {
	Kind  AddressKind
	Index int
	Name  string
	Attr  string
}

// Self addresses an attribute of the owning element.
func Self(attr string) Address { return Address{Kind: AddrSelf, Attr: attr} }

// Root addresses an attribute of the template root ("this").
func Root(attr string) Address { return Address{Kind: AddrRoot, Attr: attr} }

// Parent addresses an attribute of the parent element.
func Parent(attr string) Address { return Address{Kind: AddrParent, Attr: attr} }

// ChildAt addresses an attribute of the n-th child.
func ChildAt(n int, attr string) Address { return Address{Kind: AddrChild, Index: n, Attr: attr} }

// Prev addresses an attribute of the previous sibling.
func Prev(attr string) Address { return Address{Kind: AddrSibling, Index: -1, Attr: attr} }

// Next addresses an attribute of the next sibling.
func Next(attr string) Address { return Address{Kind: AddrSibling, Index: 1, Attr: attr} }

// Named addresses an attribute of a named element.
func Named(name, attr string) Address { return Address{Kind: AddrNamed, Name: name, Attr: attr} }

// ParseAddress parses the string form used in templates: an element part,
// optionally followed by "." and an attribute name. Element parts are ""
// (self), "this", "parent", "child", "childN", "prev", "next", or any other
// identifier, which is looked up by name.
func ParseAddress(s string) (Address, error) {
	elem, attr, _ := strings.Cut(s, ".")
	if strings.Contains(attr, ".") {
		return Address{}, fmt.Errorf("address %q: nested attribute paths are not supported", s)
	}
	var a Address
	switch elem {
	case "":
		a = Address{Kind: AddrSelf}
	case "this":
		a = Address{Kind: AddrRoot}
	case "parent":
		a = Address{Kind: AddrParent}
	case "child":
		a = Address{Kind: AddrChild}
	case "prev":
		a = Address{Kind: AddrSibling, Index: -1}
	case "next":
		a = Address{Kind: AddrSibling, Index: 1}
	default:
		if rest, ok := strings.CutPrefix(elem, "child"); ok && rest != "" {
			n, err := strconv.Atoi(rest)
			if err != nil || n < 0 {
				return Address{}, fmt.Errorf("address %q: bad child index %q", s, rest)
			}
			a = Address{Kind: AddrChild, Index: n}
			break
		}
		a = Address{Kind: AddrNamed, Name: elem}
	}
	a.Attr = attr
	return a, nil
}

// MustParseAddresses parses each source and panics on the first invalid one.
// It is meant for templates declared in Go source.
func MustParseAddresses(sources ...string) []Address {
	out := make([]Address, len(sources))
	for i, s := range sources {
		a, err := ParseAddress(s)
		if err != nil {
			panic(err)
		}
		out[i] = a
	}
	return out
}

// String renders the address in the form ParseAddress accepts.
func (a Address) String() string {
	var elem string
	switch a.Kind {
	case AddrSelf:
	case AddrRoot:
		elem = "this"
	case AddrParent:
		elem = "parent"
	case AddrChild:
		if a.Index == 0 {
			elem = "child"
		} else {
			elem = "child" + strconv.Itoa(a.Index)
		}
	case AddrSibling:
		switch a.Index {
		case -1:
			elem = "prev"
		case 1:
			elem = "next"
		default:
			elem = fmt.Sprintf("sibling(%+d)", a.Index)
		}
	case AddrNamed:
		elem = a.Name
	}
	if a.Attr == "" {
		return elem
	}
	return elem + "." + a.Attr
}

// Resolver maps an address to its target element relative to owner, or nil.
type Resolver func(owner *Element, a Address) *Element

// ResolveElement is the default Resolver.
//
// AddrNamed first consults the owner's static constants for an *Element
// stored under Name, then searches the owner's descendants breadth first
// for an element whose template is called Name.
func ResolveElement(owner *Element, a Address) *Element {
	if owner == nil {
		return nil
	}
	switch a.Kind {
	case AddrSelf:
		return owner
	case AddrRoot:
		return owner.Root()
	case AddrParent:
		return owner.parent
	case AddrChild:
		if a.Index < 0 || a.Index >= len(owner.children) {
			return nil
		}
		return owner.children[a.Index]
	case AddrSibling:
		p := owner.parent
		if p == nil {
			return nil
		}
		i := p.childIndex(owner)
		if i < 0 {
			return nil
		}
		j := i + a.Index
		if j < 0 || j >= len(p.children) {
			return nil
		}
		return p.children[j]
	case AddrNamed:
		if el, ok := owner.statics[a.Name].(*Element); ok {
			return el
		}
		return owner.findDescendant(a.Name)
	}
	return nil
}
