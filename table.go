// table.go - per-process file descriptor table
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

// Package sysio implements a small syscall style file interface:
// open, creat, read, write, close and unlink on integer descriptors
// that index a fixed size per-process table. Failures return the
// descriptor or count -1 along with a descriptive error. Files live
// in a FileSystem; Dir is one rooted at a host directory.
//
// A Table is not safe for concurrent use; it models the descriptors
// of one single threaded process. A Dir can be shared by many Tables.
package sysio

import (
	"errors"
	"io"
	"os"
)

const (
	// MaxFd is the number of slots in a Table
	MaxFd = 16

	// Stdin and Stdout are the console descriptors
	Stdin  = 0
	Stdout = 1

	// first descriptor handed out for files
	firstFd = 2
)

// Table maps small integer descriptors to open files.
type Table struct {
	fs    FileSystem
	log   Logger
	files [MaxFd]File
}

type tableopt struct {
	stdin  io.Reader
	stdout io.Writer
	log    Logger
}

// Option captures the various options for a descriptor Table
type Option func(o *tableopt)

// WithConsole uses 'in' and 'out' as the console input and output
// instead of os.Stdin and os.Stdout. A nil stream leaves its slot
// empty.
func WithConsole(in io.Reader, out io.Writer) Option {
	return func(o *tableopt) {
		o.stdin = in
		o.stdout = out
	}
}

// WithLogger traces every descriptor operation to 'log'
func WithLogger(log Logger) Option {
	return func(o *tableopt) {
		if log != nil {
			o.log = log
		}
	}
}

// NewTable makes a descriptor table whose files come from 'fsys'
func NewTable(fsys FileSystem, opts ...Option) *Table {
	o := tableopt{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		log:    nopLogger{},
	}

	for _, fp := range opts {
		fp(&o)
	}

	t := &Table{
		fs:  fsys,
		log: o.log,
	}

	if o.stdin != nil {
		t.files[Stdin] = newConsoleIn(o.stdin)
	}
	if o.stdout != nil {
		t.files[Stdout] = newConsoleOut(o.stdout)
	}
	return t
}

// Open opens the existing file 'name' and returns its descriptor.
func (t *Table) Open(name string) (int, error) {
	return t.open("open", name, false)
}

// Creat creates 'name' if it doesn't exist and truncates it if it
// does; returns the new descriptor.
func (t *Table) Creat(name string) (int, error) {
	return t.open("creat", name, true)
}

func (t *Table) open(op, name string, truncate bool) (int, error) {
	f, err := t.fs.Open(name, truncate)
	if err != nil {
		t.log.Debug("%s %s: %s", op, name, err)
		return -1, &SysError{op, name, -1, err}
	}

	fd := t.alloc(f)
	if fd < 0 {
		f.Close()
		t.log.Debug("%s %s: table full", op, name)
		return -1, &SysError{op, name, -1, ErrTableFull}
	}

	t.log.Debug("%s %s = %d", op, name, fd)
	return fd, nil
}

// Read reads upto len(b) bytes from 'fd' into 'b'. It returns the
// number of bytes read, 0 at the end of the file and -1 on error.
func (t *Table) Read(fd int, b []byte) (int, error) {
	f, err := t.get("read", fd)
	if err != nil {
		return -1, err
	}

	n, err := f.Read(b)
	if err != nil && !errors.Is(err, io.EOF) {
		t.log.Debug("read %d: %s", fd, err)
		return -1, &SysError{"read", f.Name(), fd, err}
	}
	return n, nil
}

// Write writes all of 'b' to 'fd'. It returns len(b) or -1 on error.
func (t *Table) Write(fd int, b []byte) (int, error) {
	f, err := t.get("write", fd)
	if err != nil {
		return -1, err
	}

	n, err := f.Write(b)
	if err == nil && n != len(b) {
		err = io.ErrShortWrite
	}

	if err != nil {
		t.log.Debug("write %d: %s", fd, err)
		return -1, &SysError{"write", f.Name(), fd, err}
	}
	return n, nil
}

// Close releases 'fd'; the slot is free for reuse even if
// closing the underlying file fails.
func (t *Table) Close(fd int) error {
	f, err := t.get("close", fd)
	if err != nil {
		return err
	}

	t.files[fd] = nil
	if err = f.Close(); err != nil {
		t.log.Debug("close %d: %s", fd, err)
		return &SysError{"close", f.Name(), fd, err}
	}

	t.log.Debug("close %d", fd)
	return nil
}

// Unlink removes 'name' from the file system
func (t *Table) Unlink(name string) error {
	if err := t.fs.Remove(name); err != nil {
		t.log.Debug("unlink %s: %s", name, err)
		return &SysError{"unlink", name, -1, err}
	}

	t.log.Debug("unlink %s", name)
	return nil
}

// CloseAll closes every file descriptor; the console is left alone.
// This is what happens when a process exits.
func (t *Table) CloseAll() error {
	var errs []error
	for fd := firstFd; fd < MaxFd; fd++ {
		if t.files[fd] == nil {
			continue
		}
		if err := t.Close(fd); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InUse returns the number of open file descriptors, not counting
// the console.
func (t *Table) InUse() int {
	var n int
	for fd := firstFd; fd < MaxFd; fd++ {
		if t.files[fd] != nil {
			n++
		}
	}
	return n
}

// lowest free slot or -1
func (t *Table) alloc(f File) int {
	for fd := firstFd; fd < MaxFd; fd++ {
		if t.files[fd] == nil {
			t.files[fd] = f
			return fd
		}
	}
	return -1
}

func (t *Table) get(op string, fd int) (File, error) {
	if fd < 0 || fd >= MaxFd || t.files[fd] == nil {
		return nil, &SysError{op, "", fd, ErrBadFd}
	}
	return t.files[fd], nil
}
