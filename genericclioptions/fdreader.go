package genericclioptions

import (
	"io"
	"os"
)

// FdReader defines the interface for file-like objects that can be read
// from, provide a file descriptor, and report their own file info. It lets
// [StdioOptions] detect piped/redirected input without depending on
// *os.File directly.
type FdReader interface {
	Fd() uintptr
	Stat() (os.FileInfo, error)

	io.Reader
}
