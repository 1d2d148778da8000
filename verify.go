// verify.go - content digests of copied files
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
	_ "crypto/sha256"
	"fmt"
	"os"

	"github.com/opencoff/go-mmap"
	"github.com/opencontainers/go-digest"
)

// Digest returns the sha256 digest and size of the host file 'fn'
func Digest(fn string) (digest.Digest, int64, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return "", 0, fmt.Errorf("digest: %w", err)
	}

	defer fd.Close()

	st, err := fd.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("digest: %w", err)
	}

	dg := digest.SHA256.Digester()

	// can't map an empty file
	if st.Size() == 0 {
		return dg.Digest(), 0, nil
	}

	h := dg.Hash()
	_, err = mmap.Reader(fd, func(b []byte) error {
		h.Write(b)
		return nil
	})
	if err != nil {
		return "", 0, fmt.Errorf("digest: %s: %w", fn, err)
	}
	return dg.Digest(), st.Size(), nil
}

// Verify returns nil if host files 'dst' and 'src' have identical
// contents and a *VerifyError if they don't.
func Verify(dst, src string) error {
	ss, _, err := Digest(src)
	if err != nil {
		return err
	}

	ds, _, err := Digest(dst)
	if err != nil {
		return err
	}

	if ss != ds {
		return &VerifyError{
			Src:    src,
			Dst:    dst,
			SrcSum: ss.String(),
			DstSum: ds.String(),
		}
	}
	return nil
}
