// Package lined provides interactive line-editing sessions.
//
// A Session reads lines from a terminal through one of two backends: Full, an
// in-process editor with a bounded history, key bindings and configuration
// commands, and Minimal, a plain readline library. Operations that only Full
// supports return ErrBackendUnsupported on Minimal.
//
// A Session is not safe for concurrent use.
package lined

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"src.lined.sh/pkg/histutil"
	"src.lined.sh/pkg/logutil"
	"src.lined.sh/pkg/store"
	"src.lined.sh/pkg/strutil"
)

// State is the lifecycle state of a Session.
type State int

// Possible values of State.
const (
	Uninitialized State = iota
	Active
	Ended
)

var stateNames = [...]string{"uninitialized", "active", "ended"}

func (s State) String() string { return stateNames[s] }

// Session is a line-editing session.
type Session struct {
	prog   string
	kind   Kind
	state  State
	logger log15.Logger

	// Non-nil iff state is Active.
	handle Backend
	side   *sideData
}

// Init creates an active session for the program prog. The primary prompt
// starts as "<prog>> " and the secondary prompt empty. If the backend or the
// history cannot be set up, Init returns an error wrapping
// ErrResourceExhausted and no session.
func Init(prog string, cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	s := &Session{
		prog: prog,
		kind: selectKind(cfg.Backend, cfg.In),
		logger: logutil.GetLogger("lined").New(
			"session", uuid.New().String(), "prog", prog),
	}

	side := newSideData(prog)
	if s.kind == Full {
		if err := side.initHistory(prog, cfg); err != nil {
			side.release()
			return nil, errors.Wrapf(ErrResourceExhausted, "init history: %v", err)
		}
	}

	handle, err := newBackend(BackendSpec{
		Kind:    s.kind,
		Prog:    prog,
		In:      cfg.In,
		Out:     cfg.Out,
		Prompt:  side.resolvePrompt,
		RPrompt: side.resolveRPrompt,
		History: side.hist,
		Config:  cfg,
	})
	if err != nil {
		if err := side.release(); err != nil {
			s.logger.Error("failed to release side data", "err", err)
		}
		return nil, errors.Wrapf(ErrResourceExhausted, "create %s backend: %v", s.kind, err)
	}

	s.handle, s.side, s.state = handle, side, Active
	s.logger.Debug("session started", "backend", s.kind)
	return s, nil
}

func (sd *sideData) initHistory(prog string, cfg Config) error {
	var db histutil.DB
	if cfg.DB != "" {
		st, err := store.NewStore(cfg.DB, prog)
		if err != nil {
			return err
		}
		sd.db = st
		db = st
	}
	hist, err := histutil.NewStore(histutil.Config{
		Size: cfg.HistorySize, Unique: !cfg.NoUniqueHistory, DB: db})
	if err != nil {
		return err
	}
	sd.hist = hist
	return nil
}

// Prog returns the program name of the session.
func (s *Session) Prog() string { return s.prog }

// Kind returns the backend kind of the session, never Auto.
func (s *Session) Kind() Kind { return s.kind }

// State returns the lifecycle state of the session.
func (s *Session) State() State { return s.state }

func (s *Session) checkActive(op string) error {
	if s.state != Active {
		return errors.Wrapf(ErrInvalidState, "%s on %s session", op, s.state)
	}
	return nil
}

// ReadLine reads a line with the current prompts. It returns the line with
// the trailing "\n" and then "\r" removed, and ok set to true. At end of
// input it returns ok set to false and no error; the session stays active.
// On the Full backend a non-empty line is added to the history.
func (s *Session) ReadLine() (line string, ok bool, err error) {
	return s.ReadLineContext(context.Background(), nil)
}

// ReadLinePrompt is like ReadLine, but uses prompt as the primary prompt for
// this call only. The secondary prompt is cleared.
func (s *Session) ReadLinePrompt(prompt string) (string, bool, error) {
	return s.ReadLineContext(context.Background(), &prompt)
}

// ReadLineContext is like ReadLine, with an optional prompt override. On the
// Full backend canceling ctx aborts the read, which returns ctx.Err().
func (s *Session) ReadLineContext(ctx context.Context, prompt *string) (string, bool, error) {
	raw, ok, err := s.gets(ctx, prompt, "read line")
	if !ok || err != nil {
		return "", ok, err
	}
	line := strutil.ChopLineEnding(raw)
	if line != "" && s.side.hist != nil {
		if err := s.handle.AddHistory(line); err != nil {
			s.logger.Warn("failed to add history", "err", err)
		}
	}
	return line, true, nil
}

// Gets reads a line with the current prompts. The line terminator is kept and
// the line is not added to the history.
func (s *Session) Gets() (string, bool, error) {
	return s.gets(context.Background(), nil, "gets")
}

func (s *Session) gets(ctx context.Context, prompt *string, op string) (string, bool, error) {
	if err := s.checkActive(op); err != nil {
		return "", false, err
	}
	if prompt != nil {
		s.side.setOverride(*prompt)
		defer s.side.clearOverride()
	}
	line, err := s.handle.ReadLine(ctx)
	if err == io.EOF {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return line, true, nil
}

// AddHistory adds a line to the history. An empty line is ignored.
func (s *Session) AddHistory(line string) error {
	if err := s.checkActive("add history"); err != nil {
		return err
	}
	if line == "" {
		return nil
	}
	return s.handle.AddHistory(line)
}

// History returns the entries of the history, oldest first. It is only
// supported by the Full backend.
func (s *Session) History() ([]string, error) {
	if err := s.checkActive("history"); err != nil {
		return nil, err
	}
	if s.side.hist == nil {
		return nil, ErrBackendUnsupported
	}
	return s.side.hist.All(), nil
}

// Reset discards terminal and editing state, for example after another
// program has written to the terminal. It is a no-op on the Minimal backend.
func (s *Session) Reset() error {
	if err := s.checkActive("reset"); err != nil {
		return err
	}
	return s.handle.Reset()
}

// Push makes text available to the next read, before any further input. Text
// pushed by successive calls is read in order. Pushing "" is a no-op.
func (s *Session) Push(text string) error {
	if err := s.checkActive("push"); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	return s.handle.Push(text)
}

// GetChar reads a single byte without line editing. It returns -1 at end of
// input.
func (s *Session) GetChar() (int, error) {
	if err := s.checkActive("get char"); err != nil {
		return -1, err
	}
	b, err := s.handle.GetChar()
	if err == io.EOF {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return int(b), nil
}

// Parse runs a configuration command of the backend and returns its status.
// It returns -1 and ErrBackendUnsupported if the backend has no configuration
// commands.
func (s *Session) Parse(argv ...string) (int, error) {
	if err := s.checkActive("parse"); err != nil {
		return -1, err
	}
	c, ok := s.handle.(Configurable)
	if !ok {
		return -1, ErrBackendUnsupported
	}
	return c.Parse(argv), nil
}

// Source runs the configuration commands in a file, or in the default startup
// file of the backend if path is empty. It returns -1 and
// ErrBackendUnsupported if the backend has no configuration commands.
func (s *Session) Source(path string) (int, error) {
	if err := s.checkActive("source"); err != nil {
		return -1, err
	}
	c, ok := s.handle.(Configurable)
	if !ok {
		return -1, ErrBackendUnsupported
	}
	return c.Source(path), nil
}

// SetPrompt sets the primary prompt. Prompts longer than MaxPromptLen
// characters are truncated.
func (s *Session) SetPrompt(p string) error {
	if err := s.checkActive("set prompt"); err != nil {
		return err
	}
	s.side.prompt = truncatePrompt(p)
	return nil
}

// SetSecondaryPrompt sets the secondary prompt, shown at the right of the
// line. It is only supported by the Full backend.
func (s *Session) SetSecondaryPrompt(p string) error {
	if err := s.checkActive("set secondary prompt"); err != nil {
		return err
	}
	if _, ok := s.handle.(Configurable); !ok {
		return ErrBackendUnsupported
	}
	s.side.rprompt = truncatePrompt(p)
	return nil
}

// Prompt returns the primary prompt, or "" if the session is not active.
func (s *Session) Prompt() string {
	if s.side == nil {
		return ""
	}
	return s.side.prompt
}

// SecondaryPrompt returns the secondary prompt, or "" if the session is not
// active.
func (s *Session) SecondaryPrompt() string {
	if s.side == nil {
		return ""
	}
	return s.side.rprompt
}

// End releases the backend and the side data of the session. Only the first
// call on an active session has an effect; End is also safe on a nil session.
// Errors are logged, not returned.
func (s *Session) End() {
	if s == nil || s.state == Ended {
		return
	}
	if s.state == Uninitialized {
		s.state = Ended
		return
	}
	handle, side := s.handle, s.side
	s.handle, s.side, s.state = nil, nil, Ended

	if err := handle.Close(); err != nil {
		s.logger.Error("failed to close backend", "err", err)
	}
	if err := side.release(); err != nil {
		s.logger.Error("failed to release side data", "err", err)
	}
	s.logger.Debug("session ended")
}
