// fs_bsd.go - resolve names beneath a root on the BSDs and macOS
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

//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package sysio

// no openat2 here; symlinks are never followed below 'root'.
func openBeneath(root, key string, flag int) (int, error) {
	return walkOpen(root, key, flag)
}
