//go:build unix

package termsize

import "golang.org/x/sys/unix"

// Get returns the size of the terminal on fd.
func Get(fd int) (Size, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, err
	}
	return Size{Cols: int(ws.Col), Rows: int(ws.Row)}, nil
}
