// log.go - logging hooks
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

// Logger is the subset of github.com/opencoff/go-logger.Logger
// used by this package.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}

var _ Logger = nopLogger{}
