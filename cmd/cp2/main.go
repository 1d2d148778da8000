// main.go - copy hello.txt to bye.txt via the sysio descriptors
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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/opencoff/go-logger"
	"github.com/opencoff/go-sysio"
	flag "github.com/opencoff/pflag"
)

var Z = path.Base(os.Args[0])

const (
	srcName = "hello.txt"
	dstName = "bye.txt"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run the program and return its exit status
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	var help, verify bool
	var workdir, logfile string

	fs := flag.NewFlagSet(Z, flag.ContinueOnError)

	fs.BoolVarP(&help, "help", "h", false, "Show help and exit [False]")
	fs.StringVarP(&workdir, "workdir", "d", ".", "Use `D` as the directory holding the files [.]")
	fs.StringVarP(&logfile, "log", "", "", "Trace descriptor operations to file `F`; STDOUT is allowed [none]")
	fs.BoolVarP(&verify, "verify", "V", false, "Compare digests of source and destination after the copy [False]")

	fs.SetOutput(stdout)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if help {
		fmt.Fprintf(stdout, usageStr, Z, Z, srcName, dstName)
		fs.PrintDefaults()
		return 0
	}

	// positional args are accepted and ignored; the names are fixed.

	dir, err := sysio.NewDir(workdir)
	if err != nil {
		fmt.Fprintf(stdout, "%s: %s\n", Z, err)
		return 1
	}

	var log sysio.Logger
	if len(logfile) > 0 {
		lg, err := logger.NewLogger(logfile, logger.LOG_DEBUG, Z, logger.Ldate|logger.Ltime|logger.Lmicroseconds|logger.Lfileloc)
		if err != nil {
			fmt.Fprintf(stdout, "%s: logfile: %s\n", Z, err)
			return 1
		}
		defer lg.Close()
		log = lg
	}

	t := sysio.NewTable(dir, sysio.WithConsole(stdin, stdout), sysio.WithLogger(log))
	defer t.CloseAll()

	if _, err = sysio.Copy(t, dstName, srcName); err != nil {
		printf(t, "%s\n", diag(err))
		return 1
	}

	if verify {
		src := filepath.Join(dir.Root(), srcName)
		dst := filepath.Join(dir.Root(), dstName)
		if err = sysio.Verify(dst, src); err != nil {
			printf(t, "%s\n", err)
			return 1
		}
		if err = printSum(t, dst, dstName); err != nil {
			printf(t, "%s\n", err)
			return 1
		}
	}
	return 0
}

// print the digest of host file 'fn' as 'nm' on the console of 't'
func printSum(t *sysio.Table, fn, nm string) error {
	sum, _, err := sysio.Digest(fn)
	if err != nil {
		return err
	}
	printf(t, "%s %s\n", sum, nm)
	return nil
}

// diagnostic for a failed copy
func diag(err error) string {
	var ce *sysio.CopyError
	if errors.As(err, &ce) {
		return ce.Diagnostic()
	}
	return err.Error()
}

// printf writes to the console descriptor of 't'
func printf(t *sysio.Table, f string, v ...interface{}) {
	s := fmt.Sprintf(f, v...)
	t.Write(sysio.Stdout, []byte(s))
}

var usageStr = `%s - copy a file through syscall style descriptors.

Copies %[3]s to %[4]s in the work directory using only open, creat,
read, write and close on a small descriptor table.

Usage: %[2]s [options]

Options:
`
