//go:build !unix && !windows

package termsize

// Get is not supported on this platform.
func Get(fd int) (Size, error) {
	return Size{}, ErrUnsupported
}
