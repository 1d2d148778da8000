// copy.go - copy a file through the descriptor primitives
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
	"fmt"

	"github.com/opencoff/go-utils"
)

// BufSize is the size of the scratch buffer used by Copy
const BufSize = 1024

// Stats describes the work done by a single Copy
type Stats struct {
	Reads  int   // read calls, including the terminating one
	Writes int   // write calls
	Bytes  int64 // bytes written to the destination
}

func (s Stats) String() string {
	return fmt.Sprintf("%s in %d reads, %d writes",
		utils.HumanizeSize(uint64(s.Bytes)), s.Reads, s.Writes)
}

// Copy copies 'src' to 'dst' using the primitives of 't': open the
// source, creat and open the destination, then read and write
// BufSize chunks until read returns 0 or fails. A read error ends the
// copy like end of file does; a failed write is returned. Both
// descriptors are always closed.
func Copy(t *Table, dst, src string) (Stats, error) {
	var buf [BufSize]byte
	var st Stats

	s, err := t.Open(src)
	if err != nil {
		return st, &CopyError{"open", src, dst, err}
	}

	defer t.Close(s)

	c, err := t.Creat(dst)
	if err != nil {
		return st, &CopyError{"creat", src, dst, err}
	}
	if err = t.Close(c); err != nil {
		return st, &CopyError{"creat", src, dst, err}
	}

	d, err := t.Open(dst)
	if err != nil {
		return st, &CopyError{"creat", src, dst, err}
	}

	defer t.Close(d)

	for {
		n, err := t.Read(s, buf[:])
		st.Reads++
		if n <= 0 {
			if err != nil {
				t.log.Info("copy %s: read error treated as EOF: %s", src, err)
			}
			break
		}

		st.Writes++
		if _, err = t.Write(d, buf[:n]); err != nil {
			return st, &CopyError{"write", src, dst, err}
		}
		st.Bytes += int64(n)
	}

	t.log.Info("copy %s -> %s: %s", src, dst, st)
	return st, nil
}
