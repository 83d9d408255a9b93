// Package term provides functionality for working with terminals.
package term

import (
	"errors"
	"fmt"

	"src.lined.sh/pkg/ui"
)

// Event represents an event that can be read from the terminal.
type Event interface {
	isEvent()
}

// KeyEvent represent a key press.
type KeyEvent ui.Key

// K constructs a new KeyEvent.
func K(r rune, mods ...ui.Mod) KeyEvent {
	return KeyEvent(ui.K(r, mods...))
}

// PasteSetting indicates the start or finish of pasted text.
type PasteSetting bool

func (KeyEvent) isEvent()     {}
func (PasteSetting) isEvent() {}

// Reader reads events from the terminal.
type Reader interface {
	// ReadEvent reads a single event from the terminal.
	ReadEvent() (Event, error)
	// ReadByte reads a single uninterpreted byte from the terminal.
	ReadByte() (byte, error)
	// Push makes the content of s available to subsequent reads, before any
	// input that has not been read yet. Text pushed by successive calls is
	// read in the order it was pushed.
	Push(s string)
	// Pending returns the number of pushed bytes not yet consumed.
	Pending() int
	// Stop aborts any outstanding ReadEvent or ReadByte call, which returns
	// ErrStopped. It may be called from another goroutine.
	Stop() error
	// ClearStop discards a pending stop request that no read has consumed.
	ClearStop()
	// Close releases resources associated with the Reader. It does not close
	// the underlying file.
	Close() error
}

// ErrStopped is returned by Reader when Stop is called during a ReadEvent or
// ReadByte method.
var ErrStopped = errors.New("stopped")

var errTimeout = errors.New("timed out")

type seqError struct {
	msg string
	seq string
}

func (err seqError) Error() string {
	return fmt.Sprintf("%s: %q", err.msg, err.seq)
}

// IsReadErrorRecoverable returns whether an error returned by Reader is
// recoverable.
func IsReadErrorRecoverable(err error) bool {
	if _, ok := err.(seqError); ok {
		return true
	}
	return err == errTimeout
}
