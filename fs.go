// fs.go - a directory backed file system for descriptor tables
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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// MaxName is the longest file name accepted by Dir.
const MaxName = 256

// File is an open file in a FileSystem. Read returns io.EOF at the
// end of the file.
type File interface {
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
	Close() error
	Name() string
}

// FileSystem is the backing store of a descriptor Table.
//
// Open opens an existing file; if 'truncate' is true the file is
// created when absent and truncated when present.
type FileSystem interface {
	Open(name string, truncate bool) (File, error)
	Remove(name string) error
}

// Dir is a FileSystem rooted at a host directory. Every name is
// resolved relative to the root and must not escape it, neither
// lexically nor through a symlink. Dir is safe
// for concurrent use by multiple Tables; it tracks the open references
// of each name so that a Remove of an open file is deferred until the
// last reference is closed.
type Dir struct {
	root string
	refs *xsync.MapOf[string, ref]
}

type ref struct {
	n        int
	unlinked bool
}

var _ FileSystem = &Dir{}

// NewDir makes a new Dir rooted at 'root'
func NewDir(root string) (*Dir, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("dir: %w", err)
	}

	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("dir: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("dir: %s is not a directory", root)
	}

	d := &Dir{
		root: root,
		refs: xsync.NewMapOf[string, ref](),
	}
	return d, nil
}

// Root returns the absolute path of the directory
func (d *Dir) Root() string {
	return d.root
}

// Open opens 'name' for reading and writing (or only reading if the
// file isn't writable). If 'truncate' is set, the file is created or
// truncated first.
func (d *Dir) Open(name string, truncate bool) (File, error) {
	key, err := d.path(name)
	if err != nil {
		return nil, err
	}

	// take the reference before touching the file so a concurrent
	// Remove sees it.
	var pending bool
	d.refs.Compute(key, func(r ref, _ bool) (ref, bool) {
		if r.unlinked {
			pending = true
			return r, false
		}
		r.n++
		return r, false
	})

	if pending {
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrUnlinked}
	}

	f, err := openFile(d.root, key, name, truncate)
	if err != nil {
		d.release(key)
		return nil, err
	}

	df := &dirFile{
		File: f,
		d:    d,
		key:  key,
	}
	return df, nil
}

// Remove removes 'name'. If the file is still open, it is removed
// when the last reference is closed; until then it can't be opened.
func (d *Dir) Remove(name string) error {
	key, err := d.path(name)
	if err != nil {
		return err
	}

	var rerr error
	d.refs.Compute(key, func(r ref, loaded bool) (ref, bool) {
		switch {
		case loaded && r.unlinked:
			rerr = &fs.PathError{Op: "unlink", Path: name, Err: fs.ErrNotExist}
			return r, false
		case loaded && r.n > 0:
			r.unlinked = true
			return r, false
		}

		rerr = removeFile(d.root, key)
		return r, true
	})
	return rerr
}

// Refs returns the number of open references to 'name'
func (d *Dir) Refs(name string) int {
	key, err := d.path(name)
	if err != nil {
		return 0
	}

	r, _ := d.refs.Load(key)
	return r.n
}

// drop a reference to 'key' and finish a deferred Remove
func (d *Dir) release(key string) error {
	var err error
	d.refs.Compute(key, func(r ref, loaded bool) (ref, bool) {
		if !loaded {
			return r, true
		}

		if r.n--; r.n > 0 {
			return r, false
		}

		if r.unlinked {
			err = removeFile(d.root, key)
		}
		return r, true
	})
	return err
}

// validate 'name' and return its registry key; the key is also the
// path of the file relative to the root.
func (d *Dir) path(name string) (string, error) {
	if len(name) == 0 || len(name) > MaxName {
		return "", &fs.PathError{Op: "lookup", Path: name, Err: ErrBadName}
	}

	if filepath.IsAbs(name) {
		return "", &fs.PathError{Op: "lookup", Path: name, Err: ErrBadName}
	}

	key := filepath.Clean(name)
	if !filepath.IsLocal(key) {
		return "", &fs.PathError{Op: "lookup", Path: name, Err: ErrBadName}
	}
	return key, nil
}

// dirFile ties an open file to its reference in a Dir
type dirFile struct {
	File

	d      *Dir
	key    string
	closed atomic.Bool
}

func (f *dirFile) Close() error {
	if f.closed.Swap(true) {
		return &fs.PathError{Op: "close", Path: f.Name(), Err: fs.ErrClosed}
	}

	err := f.File.Close()
	if rerr := f.d.release(f.key); rerr != nil {
		err = errors.Join(err, rerr)
	}
	return err
}

func errAny(err error, errs ...error) bool {
	for _, e := range errs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
