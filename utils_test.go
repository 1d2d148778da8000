// utils_test.go -- test harness utilities
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
	"bytes"
	crand "crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/opencoff/go-mmap"
)

var testDir = flag.String("testdir", "", "Use 'T' as the testdir for file I/O tests")

func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}

		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}

		s := fmt.Sprintf(msg, args...)
		t.Fatalf("\n%s: %d: Assertion failed: %s\n", file, line, s)
	}
}

func getTmpdir(t *testing.T) string {
	assert := newAsserter(t)
	tmpdir := t.TempDir()

	if len(*testDir) > 0 {
		tmpdir = filepath.Join(*testDir, t.Name())
		err := os.MkdirAll(tmpdir, 0700)
		assert(err == nil, "mkdir %s: %s", tmpdir, err)
		t.Logf("Using %s as test dir .. \n", tmpdir)
		t.Cleanup(func() {
			t.Logf("cleaning up %s ..\n", tmpdir)
			os.RemoveAll(tmpdir)
		})
	}
	return tmpdir
}

// make a Dir and a console-less Table on a fresh test dir
func newTestTable(t *testing.T) (*Dir, *Table) {
	assert := newAsserter(t)
	d, err := NewDir(getTmpdir(t))
	assert(err == nil, "newdir: %s", err)

	return d, NewTable(d, WithConsole(nil, nil), WithLogger(&testLogger{t}))
}

type testLogger struct {
	t *testing.T
}

func (l *testLogger) Debug(f string, v ...interface{}) {
	l.t.Logf(f, v...)
}

func (l *testLogger) Info(f string, v ...interface{}) {
	l.t.Logf(f, v...)
}

func byteEq(a, b []byte) bool {
	return 1 == subtle.ConstantTimeCompare(a, b)
}

func cksum(b []byte) []byte {
	h := sha256.New()
	h.Write(b)
	return h.Sum(nil)[:]
}

func fileCksum(nm string) ([]byte, error) {
	fd, err := os.Open(nm)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	st, err := fd.Stat()
	if err != nil {
		return nil, err
	}

	h := sha256.New()
	if st.Size() == 0 {
		return h.Sum(nil)[:], nil
	}

	_, err = mmap.Reader(fd, func(b []byte) error {
		h.Write(b)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return h.Sum(nil)[:], nil
}

// create a file of exactly 'sz' bytes and return its checksum
func createFile(nm string, sz int) ([]byte, error) {
	fd, err := os.OpenFile(nm, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	buf := make([]byte, 4096)
	h := sha256.New()

	// fill it with random data
	for sz > 0 {
		n := min(len(buf), sz)
		b := buf[:n]
		randbuf(b)
		h.Write(b)
		n, err := fd.Write(b)
		if err != nil {
			return nil, err
		}
		if n != len(b) {
			return nil, fmt.Errorf("%s: partial write (exp %d, saw %d)", nm, len(b), n)
		}
		sz -= n
	}

	if err = fd.Sync(); err != nil {
		return nil, err
	}

	if err = fd.Close(); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}

func randbuf(b []byte) []byte {
	n, err := crand.Read(b)
	if err != nil || n != len(b) {
		panic(fmt.Sprintf("can't read %d bytes of crypto/rand: %s", len(b), err))
	}
	return b
}

var errInjected = errors.New("injected fault")

// faultFS wraps a FileSystem and fails the n'th read or write of
// files opened through it (counting from 1; 0 never fails).
type faultFS struct {
	FileSystem

	failRead  int
	failWrite int
	reads     int
	writes    int

	// bytes seen by failing writes
	short bytes.Buffer
}

func (f *faultFS) Open(name string, truncate bool) (File, error) {
	fd, err := f.FileSystem.Open(name, truncate)
	if err != nil {
		return nil, err
	}
	return &faultFile{fd, f}, nil
}

type faultFile struct {
	File
	fs *faultFS
}

func (f *faultFile) Read(b []byte) (int, error) {
	f.fs.reads++
	if f.fs.reads == f.fs.failRead {
		return 0, errInjected
	}
	return f.File.Read(b)
}

func (f *faultFile) Write(b []byte) (int, error) {
	f.fs.writes++
	if f.fs.writes == f.fs.failWrite {
		f.fs.short.Write(b[:len(b)/2])
		return len(b) / 2, errInjected
	}
	return f.File.Write(b)
}
