package lined

import (
	"context"
	"io"
	"os"

	"src.lined.sh/pkg/histutil"
)

// Backend is the line editing library that a session delegates to. A Backend
// is owned by exactly one session, which closes it exactly once.
type Backend interface {
	// ReadLine reads a line, resolving prompts as needed. The line keeps its
	// terminating "\n" if there was one. At end of input it returns io.EOF.
	ReadLine(ctx context.Context) (string, error)
	// AddHistory adds a line to the history of the backend.
	AddHistory(line string) error
	// Push makes text available to reads before any further input.
	Push(text string) error
	// GetChar reads a single byte. At end of input it returns io.EOF.
	GetChar() (byte, error)
	// Reset discards terminal and editing state.
	Reset() error
	// Close releases the backend.
	Close() error
}

// Configurable is implemented by backends that understand configuration
// commands and startup files, and show a secondary prompt.
type Configurable interface {
	// Parse runs a configuration command and returns its status: 0 on
	// success, 1 on failure, -1 for an unknown command.
	Parse(args []string) int
	// Source runs the commands in a file, or in the default startup file if
	// path is empty. It returns -1 on failure.
	Source(path string) int
}

// BackendSpec is what a session passes to the constructor of its backend.
type BackendSpec struct {
	Kind Kind
	// Program name, used to select configuration commands and to name the
	// history file.
	Prog string
	In   *os.File
	Out  io.Writer
	// Prompt and RPrompt resolve the current primary and secondary prompts.
	// They read state owned by the session and never block.
	Prompt  func() string
	RPrompt func() string
	// History of the session, nil unless Kind is Full.
	History *histutil.Store

	Config Config
}

func newBackend(spec BackendSpec) (Backend, error) {
	if spec.Config.NewBackend != nil {
		return spec.Config.NewBackend(spec)
	}
	switch spec.Kind {
	case Full:
		return newFull(spec)
	default:
		return newMinimal(spec, newReadlineInstance)
	}
}
