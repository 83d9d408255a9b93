//go:build unix

package edit

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	perrors "github.com/pkg/errors"
	"src.lined.sh/pkg/cli/term"
	"src.lined.sh/pkg/histutil"
	"src.lined.sh/pkg/logutil"
	"src.lined.sh/pkg/sys"
	"src.lined.sh/pkg/ui"
)

var logger = logutil.GetLogger("edit")

// ErrClosed is returned when an Editor is used after Close.
var ErrClosed = errors.New("editor closed")

// Config keeps the configurable parts of an Editor.
type Config struct {
	// Prompt and RPrompt are called on every redraw. They must not block.
	Prompt  func() string
	RPrompt func() string
	// History used for ed-prev-history and ed-next-history and the history
	// command. If nil, a unique in-memory history of the default size is used.
	History *histutil.Store
	// Startup file sourced when the Editor is created. If empty, the default
	// file is used.
	EditRC string
	// If true, no startup file is sourced.
	NoSource bool
}

// Editor is a single-line editor. It is not safe for concurrent use, except
// that the context passed to GetsContext may be canceled from any goroutine.
type Editor struct {
	prog    string
	in      *os.File
	out     io.Writer
	isTTY   bool
	prompt  func() string
	rprompt func() string
	hist    *histutil.Store

	reader term.Reader
	writer term.Writer

	bindings map[ui.Key]string
	editing  bool

	buf     buffer
	killed  string
	walk    histutil.Cursor
	scratch string

	width    int
	widthSet bool

	// Set when the last line read from a non-terminal was committed by "\r".
	// A "\n" read right after it is dropped, so "\r\n" ends a single line.
	skipLF bool

	closed bool
}

// New creates a new Editor reading from in and writing to out. The prog
// argument is the program name matched against "prog:command" forms of
// configuration commands.
func New(prog string, in *os.File, out io.Writer, cfg Config) (*Editor, error) {
	reader, err := term.NewReader(in)
	if err != nil {
		return nil, perrors.Wrap(err, "create terminal reader")
	}
	hist := cfg.History
	if hist == nil {
		hist, err = histutil.NewStore(histutil.Config{Unique: true})
		if err != nil {
			reader.Close()
			return nil, err
		}
	}
	ed := &Editor{
		prog:    prog,
		in:      in,
		out:     out,
		isTTY:   sys.IsATTY(in.Fd()),
		prompt:  orEmpty(cfg.Prompt),
		rprompt: orEmpty(cfg.RPrompt),
		hist:    hist,
		reader:  reader,
		writer:  term.NewWriter(out),

		bindings: defaultBindings(),
		editing:  true,
	}
	if !cfg.NoSource {
		if status := ed.Source(cfg.EditRC); status != 0 {
			logger.Debug("startup file not sourced", "path", cfg.EditRC, "status", status)
		}
	}
	return ed, nil
}

func orEmpty(f func() string) func() string {
	if f == nil {
		return func() string { return "" }
	}
	return f
}

// History returns the history store of the Editor.
func (ed *Editor) History() *histutil.Store { return ed.hist }

// Gets is equivalent to GetsContext(context.Background()).
func (ed *Editor) Gets() (string, error) {
	return ed.GetsContext(context.Background())
}

// GetsContext reads a line. A line committed with ed-newline is returned with
// a trailing "\n". If input ends, or ed-end-of-file runs, after some text has
// been entered, that text is returned without "\n"; on an empty line io.EOF
// is returned instead. If ctx is canceled while waiting for input, ctx.Err()
// is returned.
func (ed *Editor) GetsContext(ctx context.Context) (string, error) {
	if ed.closed {
		return "", ErrClosed
	}
	ed.reader.ClearStop()
	defer ed.watchContext(ctx)()

	if !ed.editing {
		return ed.readLineRaw(ctx)
	}
	restore, err := ed.setupTerminal()
	if err != nil {
		return "", err
	}
	defer restore()
	return ed.readLine(ctx)
}

// Getc reads a single byte. Pushed text is consumed first.
func (ed *Editor) Getc() (byte, error) {
	if ed.closed {
		return 0, ErrClosed
	}
	ed.reader.ClearStop()
	ed.skipLF = false
	if ed.reader.Pending() == 0 {
		restore, err := ed.setupTerminal()
		if err != nil {
			return 0, err
		}
		defer restore()
	}
	return ed.reader.ReadByte()
}

// Push makes s available to subsequent reads before any further input.
func (ed *Editor) Push(s string) error {
	if ed.closed {
		return ErrClosed
	}
	ed.skipLF = false
	ed.reader.Push(s)
	return nil
}

// Reset discards the state of the line being edited, the kill buffer and the
// cached terminal size. Pushed text is kept.
func (ed *Editor) Reset() error {
	if ed.closed {
		return ErrClosed
	}
	ed.resetLine()
	ed.killed = ""
	ed.widthSet = false
	return nil
}

// Close releases the resources of the Editor. It does not close the input or
// output. Calling Close more than once is a no-op.
func (ed *Editor) Close() error {
	if ed.closed {
		return nil
	}
	ed.closed = true
	return ed.reader.Close()
}

func (ed *Editor) watchContext(ctx context.Context) func() {
	if ctx.Done() == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			ed.reader.Stop()
		case <-done:
		}
	}()
	return func() { close(done) }
}

func (ed *Editor) setupTerminal() (func(), error) {
	if !ed.isTTY {
		return func() {}, nil
	}
	restore, err := term.Setup(ed.in)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := restore(); err != nil {
			logger.Error("failed to restore terminal", "err", err)
		}
	}, nil
}

type action int

const (
	noAction action = iota
	commitLine
	commitEOF
)

func (ed *Editor) readLine(ctx context.Context) (string, error) {
	ed.resetLine()
	ed.redraw()
	for {
		event, err := ed.reader.ReadEvent()
		if err != nil {
			switch {
			case term.IsReadErrorRecoverable(err):
				logger.Debug("ignoring bad key sequence", "err", err)
				ed.writer.Bell()
				continue
			case err == term.ErrStopped && ctx.Err() != nil:
				ed.writer.Newline()
				return "", ctx.Err()
			case err == io.EOF:
				return ed.finishEOF()
			}
			return "", err
		}
		if ed.skipLF {
			ed.skipLF = false
			if event == term.K(ui.Enter) {
				continue
			}
		}
		if k, ok := event.(term.KeyEvent); ok {
			switch ed.handleKey(ui.Key(k)) {
			case commitLine:
				ed.skipLF = !ed.isTTY && k == term.K('M', ui.Ctrl)
				ed.finish()
				return ed.buf.Content + "\n", nil
			case commitEOF:
				return ed.finishEOF()
			}
		}
		ed.redraw()
	}
}

func (ed *Editor) finishEOF() (string, error) {
	if ed.buf.Content == "" {
		return "", io.EOF
	}
	ed.finish()
	return ed.buf.Content, nil
}

func (ed *Editor) finish() {
	ed.buf.Dot = len(ed.buf.Content)
	ed.redraw()
	ed.writer.Newline()
}

// readLineRaw reads a line without editing.
func (ed *Editor) readLineRaw(ctx context.Context) (string, error) {
	io.WriteString(ed.out, ed.prompt())
	var sb strings.Builder
	for {
		b, err := ed.reader.ReadByte()
		if err != nil {
			switch {
			case err == term.ErrStopped && ctx.Err() != nil:
				return "", ctx.Err()
			case err == io.EOF && sb.Len() > 0:
				return sb.String(), nil
			}
			return "", err
		}
		sb.WriteByte(b)
		if b == '\n' {
			return sb.String(), nil
		}
	}
}

func (ed *Editor) handleKey(k ui.Key) action {
	name, ok := ed.bindings[k]
	if !ok {
		if !isInsertable(k) {
			ed.writer.Bell()
			return noAction
		}
		name = "ed-insert"
	}
	return functions[name].fn(ed, k)
}

func isInsertable(k ui.Key) bool {
	return k.Mod == 0 && (k.Rune == '\t' || (k.Rune >= 0x20 && k.Rune != 0x7f))
}

func (ed *Editor) resetLine() {
	ed.buf = buffer{}
	ed.walk = nil
	ed.scratch = ""
}

func (ed *Editor) redraw() {
	l := term.Line{
		Prompt: ed.prompt(), RPrompt: ed.rprompt(),
		Buffer: ed.buf.Content, Dot: ed.buf.Dot}
	if err := ed.writer.UpdateLine(l, ed.termWidth()); err != nil {
		logger.Debug("failed to redraw", "err", err)
	}
}

func (ed *Editor) termWidth() int {
	if !ed.widthSet {
		_, ed.width = sys.WinSize(ed.in)
		ed.widthSet = true
	}
	return ed.width
}
