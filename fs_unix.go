// fs_unix.go - raw descriptor files for unix like systems
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

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package sysio

import (
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// rawFile is a File on top of a bare OS descriptor; we talk
// to the kernel directly and don't go through os.File.
type rawFile struct {
	fd   int
	name string
}

var _ File = &rawFile{}

// open 'key' beneath 'root' (named 'name' by the caller); try read-write
// first and fallback to read-only for existing files that aren't writable.
func openFile(root, key, name string, truncate bool) (File, error) {
	flag := unix.O_RDWR | unix.O_CLOEXEC
	if truncate {
		flag |= unix.O_CREAT | unix.O_TRUNC
	}

	fd, err := openBeneath(root, key, flag)
	if err != nil && !truncate && errAny(err, unix.EACCES, unix.EROFS, unix.EISDIR) {
		fd, err = openBeneath(root, key, unix.O_RDONLY|unix.O_CLOEXEC)
	}
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	var st unix.Stat_t
	if err = unix.Fstat(fd, &st); err != nil {
		unix.Close(fd)
		return nil, &fs.PathError{Op: "fstat", Path: name, Err: err}
	}

	if uint32(st.Mode)&unix.S_IFMT != unix.S_IFREG {
		unix.Close(fd)
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrNotRegular}
	}

	f := &rawFile{
		fd:   fd,
		name: name,
	}
	return f, nil
}

// unlink 'key' beneath 'root'; the parent dir is resolved the same
// way as opens are.
func removeFile(root, key string) error {
	dn, nm := filepath.Split(key)
	if len(dn) == 0 {
		dn = "."
	}

	dfd, err := openBeneath(root, filepath.Clean(dn), unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC)
	if err != nil {
		return &fs.PathError{Op: "unlink", Path: key, Err: err}
	}
	defer unix.Close(dfd)

	if err = unix.Unlinkat(dfd, nm, 0); err != nil {
		return &fs.PathError{Op: "unlink", Path: key, Err: err}
	}
	return nil
}

// walk 'key' one component at a time from 'root' and refuse to follow
// symlinks anywhere along the way.
func walkOpen(root, key string, flag int) (int, error) {
	dfd, err := sysOpenat(unix.AT_FDCWD, root, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC)
	if err != nil {
		return -1, err
	}

	parts := strings.Split(key, string(filepath.Separator))
	for _, p := range parts[:len(parts)-1] {
		fd, err := sysOpenat(dfd, p, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_NOFOLLOW|unix.O_CLOEXEC)
		unix.Close(dfd)
		if err != nil {
			return -1, err
		}
		dfd = fd
	}

	fd, err := sysOpenat(dfd, parts[len(parts)-1], flag|unix.O_NOFOLLOW)
	unix.Close(dfd)
	return fd, err
}

func sysOpenat(dfd int, fn string, flag int) (int, error) {
	for {
		fd, err := unix.Openat(dfd, fn, flag, 0666)
		if err != unix.EINTR {
			return fd, err
		}
	}
}

func (f *rawFile) Name() string {
	return f.name
}

// Read reads upto len(b) bytes; returns io.EOF at end of file.
func (f *rawFile) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	for {
		n, err := unix.Read(f.fd, b)
		switch {
		case err == unix.EINTR:
			continue
		case err != nil:
			return 0, &fs.PathError{Op: "read", Path: f.name, Err: err}
		case n == 0:
			return 0, io.EOF
		}
		return n, nil
	}
}

// Write writes all of 'b' or returns an error
func (f *rawFile) Write(b []byte) (int, error) {
	var z int
	for len(b) > 0 {
		m, err := unix.Write(f.fd, b)
		switch {
		case err == unix.EINTR:
			continue
		case err != nil:
			return z, &fs.PathError{Op: "write", Path: f.name, Err: err}
		case m == 0:
			return z, &fs.PathError{Op: "write", Path: f.name, Err: io.ErrShortWrite}
		}
		b = b[m:]
		z += m
	}
	return z, nil
}

func (f *rawFile) Close() error {
	if f.fd < 0 {
		return &fs.PathError{Op: "close", Path: f.name, Err: fs.ErrClosed}
	}

	err := unix.Close(f.fd)
	f.fd = -1
	if err != nil {
		return &fs.PathError{Op: "close", Path: f.name, Err: err}
	}
	return nil
}
