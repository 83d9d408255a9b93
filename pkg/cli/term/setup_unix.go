//go:build unix

package term

import (
	"os"

	"github.com/pkg/errors"
	"src.lined.sh/pkg/sys/eunix"
)

// Setup puts the terminal in raw mode for line editing: canonical mode and
// echo are turned off, reads return after a single byte and CR is translated
// to LF on input. It returns a function that restores the original terminal
// attributes.
func Setup(in *os.File) (func() error, error) {
	fd := int(in.Fd())
	term, err := eunix.TermiosForFd(fd)
	if err != nil {
		return nil, errors.Wrap(err, "can't get terminal attribute")
	}

	savedTermios := term.Copy()

	term.SetICanon(false)
	term.SetIExten(false)
	term.SetEcho(false)
	term.SetVMin(1)
	term.SetVTime(0)
	term.SetICRNL(true)

	err = term.ApplyToFd(fd)
	if err != nil {
		return nil, errors.Wrap(err, "can't set up terminal attribute")
	}

	return func() error {
		return errors.Wrap(savedTermios.ApplyToFd(fd), "can't restore terminal attribute")
	}, nil
}
