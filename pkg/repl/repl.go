// Package repl implements the interactive loop of lined. It reads lines with
// a line-editing session and prints their words; lines starting with ":" are
// commands to the session.
package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"src.lined.sh/pkg/lined"
	"src.lined.sh/pkg/logutil"
	"src.lined.sh/pkg/prog"
)

var logger = logutil.GetLogger("repl")

// Prog is the program name passed to the session. It selects "prog:command"
// forms in startup files and names the history file of the Minimal backend.
const Prog = "lined"

// Program is the interactive subprogram.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("arguments are not supported")
	}
	cfg, err := sessionConfig(fds, f)
	if err != nil {
		return prog.BadUsage(err.Error())
	}
	s, err := lined.Init(Prog, cfg)
	if err != nil {
		return err
	}
	defer s.End()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	return Interact(s, fds[1], fds[2], sigCh)
}

func sessionConfig(fds [3]*os.File, f *prog.Flags) (lined.Config, error) {
	kind := lined.Auto
	if f.Backend != "" {
		var err error
		kind, err = lined.ParseKind(f.Backend)
		if err != nil {
			return lined.Config{}, err
		}
	}
	return lined.Config{
		Backend: kind,
		In:      fds[0],
		Out:     fds[1],

		HistorySize:     f.HistorySize,
		NoUniqueHistory: f.NoUniqueHistory,
		HistoryFile:     f.HistoryFile,
		DB:              f.DB,

		EditRC:   f.EditRC,
		NoSource: f.NoRc,
	}, nil
}

// Interact runs the loop until the input ends. A value received on interrupts
// abandons the line being read.
func Interact(s *lined.Session, out, errOut io.Writer, interrupts <-chan os.Signal) error {
	for {
		line, ok, err := readLine(s, interrupts)
		if err == context.Canceled {
			continue
		}
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		eval(s, line, out, errOut)
	}
}

func readLine(s *lined.Session, interrupts <-chan os.Signal) (string, bool, error) {
	drainInterrupts(interrupts)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case sig := <-interrupts:
			logger.Debug("read interrupted", "signal", sig)
			cancel()
		case <-done:
		}
	}()
	return s.ReadLineContext(ctx, nil)
}

// Interrupts received while no read was in progress don't apply to the next
// read.
func drainInterrupts(interrupts <-chan os.Signal) {
	for {
		select {
		case sig := <-interrupts:
			logger.Debug("dropping stale interrupt", "signal", sig)
		default:
			return
		}
	}
}

func eval(s *lined.Session, line string, out, errOut io.Writer) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if cmd, ok := strings.CutPrefix(line, ":"); ok {
		command(s, cmd, errOut)
		return
	}
	words, err := lined.Tokenize(line)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	fmt.Fprintf(out, "%q\n", words)
}

func command(s *lined.Session, cmd string, errOut io.Writer) {
	words, err := lined.Tokenize(cmd)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	if len(words) == 0 {
		return
	}
	switch words[0] {
	case "source":
		path := ""
		if len(words) > 1 {
			path = words[1]
		}
		status, err := s.Source(path)
		report(errOut, "source", status, err)
	case "prompt":
		report(errOut, "prompt", 0, s.SetPrompt(strings.Join(words[1:], " ")))
	case "rprompt":
		report(errOut, "rprompt", 0, s.SetSecondaryPrompt(strings.Join(words[1:], " ")))
	default:
		status, err := s.Parse(words...)
		report(errOut, words[0], status, err)
	}
}

func report(errOut io.Writer, name string, status int, err error) {
	switch {
	case err != nil:
		fmt.Fprintf(errOut, "%s: %v\n", name, err)
	case status != 0:
		fmt.Fprintf(errOut, "%s: status %d\n", name, status)
	}
}
