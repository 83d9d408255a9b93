// Package logutil provides logging utilities.
//
// All loggers are children of a package-level root logger built on log15. The
// root discards everything until SetOutput or SetOutputFile is called, so
// libraries can log freely without producing output in normal operation.
package logutil

import (
	"io"
	"os"

	"github.com/inconshreveable/log15"
)

var (
	root = log15.New()
	out  *os.File
)

func init() {
	root.SetHandler(log15.DiscardHandler())
}

// GetLogger gets a logger tagged with the given component name. The returned
// logger follows later changes to the output.
func GetLogger(component string) log15.Logger {
	return root.New("component", component)
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer, in logfmt format. If the old output was a file opened by
// SetOutputFile, it is closed.
func SetOutput(newOut io.Writer) {
	root.SetHandler(log15.StreamHandler(newOut, log15.LogfmtFormat()))
	closeOut()
	out = nil
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file. If the old output was a file opened by SetOutputFile, it is
// closed. The new file is truncated. SetOutputFile("") is equivalent to
// SetOutput(io.Discard).
func SetOutputFile(fname string) error {
	if fname == "" {
		root.SetHandler(log15.DiscardHandler())
		closeOut()
		out = nil
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	root.SetHandler(log15.StreamHandler(file, log15.LogfmtFormat()))
	closeOut()
	out = file
	return nil
}

func closeOut() {
	if out != nil {
		out.Close()
	}
}
