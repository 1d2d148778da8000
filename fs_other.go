// fs_other.go - os.File backed files for the remaining platforms
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

//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package sysio

import (
	"io/fs"
	"os"
)

type osFile struct {
	*os.File
	name string
}

var _ File = &osFile{}

func openFile(root, key, name string, truncate bool) (File, error) {
	r, err := os.OpenRoot(root)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	flag := os.O_RDWR
	if truncate {
		flag |= os.O_CREATE | os.O_TRUNC
	}

	fd, err := r.OpenFile(key, flag, 0666)
	if err != nil && !truncate && os.IsPermission(err) {
		fd, err = r.Open(key)
	}
	if err != nil {
		return nil, err
	}

	st, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, err
	}

	if !st.Mode().IsRegular() {
		fd.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrNotRegular}
	}
	return &osFile{fd, name}, nil
}

func removeFile(root, key string) error {
	r, err := os.OpenRoot(root)
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Remove(key)
}

func (f *osFile) Name() string {
	return f.name
}

// Write writes all of 'b' or returns an error
func (f *osFile) Write(b []byte) (int, error) {
	var z int
	for len(b) > 0 {
		m, err := f.File.Write(b)
		z += m
		if err != nil {
			return z, err
		}
		b = b[m:]
	}
	return z, nil
}
