// console.go - console descriptors
//
// (c) 2026 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package sysio

import (
	"io"
	"io/fs"
)

// console is one direction of the process console; exactly one of
// 'r' or 'w' is set.
type console struct {
	r    io.Reader
	w    io.Writer
	name string
}

var _ File = &console{}

func newConsoleIn(r io.Reader) *console {
	return &console{r: r, name: "console:in"}
}

func newConsoleOut(w io.Writer) *console {
	return &console{w: w, name: "console:out"}
}

func (c *console) Name() string {
	return c.name
}

func (c *console) Read(b []byte) (int, error) {
	if c.r == nil {
		return 0, &fs.PathError{Op: "read", Path: c.name, Err: ErrBadFd}
	}
	return c.r.Read(b)
}

func (c *console) Write(b []byte) (int, error) {
	if c.w == nil {
		return 0, &fs.PathError{Op: "write", Path: c.name, Err: ErrBadFd}
	}
	return c.w.Write(b)
}

// the console streams belong to the process; we never close them
func (c *console) Close() error {
	return nil
}
