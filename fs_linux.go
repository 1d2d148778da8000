// fs_linux.go - resolve names beneath a root with openat2(2)
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
	"golang.org/x/sys/unix"
)

// open 'key' relative to 'root'; the kernel fails any lookup (.., an
// absolute symlink or a symlink pointing outside) that leaves 'root'.
// Kernels older than 5.6 don't have openat2; they get the slower
// component walk.
func openBeneath(root, key string, flag int) (int, error) {
	dfd, err := sysOpenat(unix.AT_FDCWD, root, unix.O_PATH|unix.O_DIRECTORY|unix.O_CLOEXEC)
	if err != nil {
		return -1, err
	}
	defer unix.Close(dfd)

	how := &unix.OpenHow{
		Flags:   uint64(flag),
		Resolve: unix.RESOLVE_BENEATH | unix.RESOLVE_NO_MAGICLINKS,
	}

	// openat2 rejects a mode without O_CREAT
	if flag&unix.O_CREAT != 0 {
		how.Mode = 0666
	}

	for {
		fd, err := unix.Openat2(dfd, key, how)
		switch err {
		case unix.EINTR, unix.EAGAIN:
			continue
		case unix.ENOSYS:
			return walkOpen(root, key, flag)
		}
		return fd, err
	}
}
