// errors.go - descriptive errors for sysio
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
)

// SysError represents the errors returned by the descriptor
// primitives of a Table (Open, Creat, Read, Write, Close, Unlink).
// Fd is -1 for operations that take a name.
type SysError struct {
	Op   string
	Name string
	Fd   int
	Err  error
}

// Error returns a string representation of SysError
func (e *SysError) Error() string {
	if e.Fd < 0 {
		return fmt.Sprintf("%s '%s': %s", e.Op, e.Name, e.Err.Error())
	}
	return fmt.Sprintf("%s fd %d '%s': %s", e.Op, e.Fd, e.Name, e.Err.Error())
}

// Unwrap returns the underlying wrapped error
func (e *SysError) Unwrap() error {
	return e.Err
}

// CopyError represents the errors returned by Copy. Op is one of
// "open", "creat" or "write" and names the step that failed.
type CopyError struct {
	Op  string
	Src string
	Dst string
	Err error
}

// Error returns a string representation of CopyError
func (e *CopyError) Error() string {
	return fmt.Sprintf("copy: %s '%s' '%s': %s",
		e.Op, e.Src, e.Dst, e.Err.Error())
}

// Unwrap returns the underlying wrapped error
func (e *CopyError) Unwrap() error {
	return e.Err
}

// Diagnostic returns the one line message printed for a failed copy
func (e *CopyError) Diagnostic() string {
	switch e.Op {
	case "open":
		return fmt.Sprintf("Unable to open %s", e.Src)
	case "creat":
		return fmt.Sprintf("Unable to create %s", e.Dst)
	}
	return fmt.Sprintf("Unable to %s %s", e.Op, e.Dst)
}

// VerifyError is returned by Verify when the contents of two files
// differ.
type VerifyError struct {
	Src, Dst       string
	SrcSum, DstSum string
}

// Error returns a string representation of VerifyError
func (e *VerifyError) Error() string {
	return fmt.Sprintf("verify: '%s' %s != '%s' %s",
		e.Src, e.SrcSum, e.Dst, e.DstSum)
}

var _ error = &SysError{}
var _ error = &CopyError{}
var _ error = &VerifyError{}

var (
	// ErrBadFd is returned for a descriptor that is out of range
	// or not open.
	ErrBadFd = errors.New("bad file descriptor")

	// ErrTableFull is returned when every slot of a Table is in use.
	ErrTableFull = errors.New("descriptor table full")

	// ErrBadName is returned for names that are empty, too long,
	// absolute or escape the root of a Dir.
	ErrBadName = errors.New("invalid file name")

	// ErrNotRegular is returned when the name is not a regular file.
	ErrNotRegular = errors.New("not a regular file")

	// ErrUnlinked is returned when opening a name that has been
	// unlinked but is still held open by some descriptor.
	ErrUnlinked = errors.New("file is pending removal")
)
