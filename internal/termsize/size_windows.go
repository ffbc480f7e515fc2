//go:build windows

package termsize

import "golang.org/x/sys/windows"

// Get returns the size of the console on fd.
func Get(fd int) (Size, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(fd), &info); err != nil {
		return Size{}, err
	}
	return Size{
		Cols: int(info.Window.Right - info.Window.Left + 1),
		Rows: int(info.Window.Bottom - info.Window.Top + 1),
	}, nil
}
