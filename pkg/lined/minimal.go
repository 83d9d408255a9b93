package lined

import (
	"context"
	"io"
	"path/filepath"
	"sync"

	"github.com/ergochat/readline"
	"github.com/mitchellh/go-homedir"
	"src.lined.sh/pkg/sys"
)

// lineReader is the part of *readline.Instance used by the Minimal backend.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	SaveToHistory(line string) error
	Close() error
}

func newReadlineInstance(cfg *readline.Config) (lineReader, error) {
	rl, err := readline.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return rl, nil
}

// minimalBackend is the Minimal backend, built on a readline library. The
// library keeps its own history in a file and has no notion of a secondary
// prompt or configuration commands.
type minimalBackend struct {
	rl     lineReader
	input  *stuffReader
	prompt func() string
}

func newMinimal(spec BackendSpec, newInstance func(*readline.Config) (lineReader, error)) (Backend, error) {
	historyFile := spec.Config.HistoryFile
	if historyFile == "" {
		home, err := homedir.Dir()
		if err == nil {
			historyFile = filepath.Join(home, "."+spec.Prog+"_history")
		}
	}
	input := &stuffReader{r: spec.In}
	in := spec.In
	rl, err := newInstance(&readline.Config{
		Prompt:                 spec.Prompt(),
		HistoryFile:            historyFile,
		DisableAutoSaveHistory: true,
		Stdin:                  input,
		Stdout:                 spec.Out,
		Stderr:                 spec.Out,
		FuncIsTerminal:         func() bool { return sys.IsATTY(in.Fd()) },
	})
	if err != nil {
		return nil, err
	}
	return &minimalBackend{rl, input, spec.Prompt}, nil
}

// ReadLine reads a line. The library strips the line terminator, so it is
// added back. An interrupt is reported as end of input. The context is not
// observed, as the library cannot abort a read.
func (b *minimalBackend) ReadLine(context.Context) (string, error) {
	b.rl.SetPrompt(b.prompt())
	line, err := b.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return line + "\n", nil
}

func (b *minimalBackend) AddHistory(line string) error { return b.rl.SaveToHistory(line) }

func (b *minimalBackend) Push(text string) error {
	b.input.Push(text)
	return nil
}

func (b *minimalBackend) GetChar() (byte, error) { return b.input.ReadByte() }

func (b *minimalBackend) Reset() error { return nil }

func (b *minimalBackend) Close() error { return b.rl.Close() }

// stuffReader reads text pushed with Push before reading from the underlying
// reader. It is safe for concurrent use, as the readline library reads from
// its own goroutine.
type stuffReader struct {
	mu      sync.Mutex
	pending []byte
	r       io.Reader
}

func (s *stuffReader) Push(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, text...)
}

func (s *stuffReader) Read(p []byte) (int, error) {
	if n := s.readPending(p); n > 0 {
		return n, nil
	}
	return s.r.Read(p)
}

func (s *stuffReader) readPending(p []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n
}

func (s *stuffReader) ReadByte() (byte, error) {
	var b [1]byte
	for {
		n, err := s.Read(b[:])
		if n == 1 {
			return b[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// Close is a no-op; the underlying reader belongs to the caller of Init.
func (s *stuffReader) Close() error { return nil }

var _ io.ReadCloser = (*stuffReader)(nil)
