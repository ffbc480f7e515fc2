// Package termsize reports the size of the controlling terminal.
package termsize

import "errors"

// Default is the size assumed when the terminal cannot be queried.
var Default = Size{Cols: 80, Rows: 24}

// ErrUnsupported is returned on platforms without a size query.
var ErrUnsupported = errors.New("terminal size not supported on this platform")

// Size is a terminal size in character cells.
type Size struct {
	Cols, Rows int
}

// GetOrDefault returns the size of the terminal on fd, or Default when it
// cannot be determined.
func GetOrDefault(fd int) Size {
	s, err := Get(fd)
	if err != nil || s.Cols <= 0 || s.Rows <= 0 {
		return Default
	}
	return s
}
