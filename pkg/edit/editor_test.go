//go:build unix

package edit

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"src.lined.sh/pkg/histutil"
	"src.lined.sh/pkg/must"
	"src.lined.sh/pkg/testutil"
	. "src.lined.sh/pkg/tt"
)

type fixture struct {
	ed  *Editor
	w   *os.File
	out *bytes.Buffer
}

func setup(t *testing.T, cfg Config) *fixture {
	t.Helper()
	r, w := must.Pipe()
	out := new(bytes.Buffer)
	if cfg.Prompt == nil {
		cfg.Prompt = func() string { return "p> " }
	}
	cfg.NoSource = true
	ed, err := New("test", r, out, cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		ed.Close()
		r.Close()
		w.Close()
	})
	return &fixture{ed, w, out}
}

func (f *fixture) feed(s string) { f.w.WriteString(s) }

func TestGets_Editing(t *testing.T) {
	gets := func(input string) (string, error) {
		f := setup(t, Config{})
		f.feed(input)
		return f.ed.Gets()
	}

	Test(t, Fn("gets", gets), Table{
		Args("echo hello\n").Rets("echo hello\n", nil),
		// Ctrl-M commits like Enter.
		Args("abc\r").Rets("abc\n", nil),
		Args("a\tb\n").Rets("a\tb\n", nil),
		Args("héllo 你好\n").Rets("héllo 你好\n", nil),

		// ed-prev-char, ed-next-char
		Args("ab\x02X\n").Rets("aXb\n", nil),
		Args("ab\033[DX\033[CY\n").Rets("aXbY\n", nil),
		// ed-move-to-beg, ed-move-to-end
		Args("bc\x01a\x05d\n").Rets("abcd\n", nil),
		Args("bc\033[Ha\033[Fd\n").Rets("abcd\n", nil),
		// ed-delete-prev-char, ed-delete-next-char
		Args("abc\x7f\n").Rets("ab\n", nil),
		Args("abc\x01\033[3~\n").Rets("bc\n", nil),
		// em-delete-or-list deletes on a non-empty line.
		Args("abc\x01\x04\n").Rets("bc\n", nil),
		// ed-kill-line and em-yank
		Args("echo foo\x02\x02\x02\x0b\x01\x19\n").Rets("fooecho \n", nil),
		// em-kill-line
		Args("junk\x15ok\n").Rets("ok\n", nil),
		// ed-delete-prev-word
		Args("echo foo bar\x17\n").Rets("echo foo \n", nil),
		// ed-transpose-chars
		Args("ab\x14\n").Rets("ba\n", nil),
		// Unbound control keys are ignored.
		Args("a\x07b\n").Rets("ab\n", nil),
		// Bad escape sequences are ignored.
		Args("a\033[xb\n").Rets("ab\n", nil),
		// Ctrl-L clears the screen without changing the line.
		Args("ab\x0c\n").Rets("ab\n", nil),
	})
}

func TestGets_EndOfInput(t *testing.T) {
	f := setup(t, Config{})
	f.feed("partial")
	f.w.Close()

	line, err := f.ed.Gets()
	if line != "partial" || err != nil {
		t.Errorf("Gets() -> (%q, %v), want (\"partial\", nil)", line, err)
	}
	line, err = f.ed.Gets()
	if line != "" || err != io.EOF {
		t.Errorf("Gets() -> (%q, %v), want (\"\", io.EOF)", line, err)
	}
}

func TestGets_CtrlDOnEmptyLine(t *testing.T) {
	f := setup(t, Config{})
	f.feed("\x04next\n")

	if _, err := f.ed.Gets(); err != io.EOF {
		t.Errorf("Gets() -> error %v, want io.EOF", err)
	}
	if line, _ := f.ed.Gets(); line != "next\n" {
		t.Errorf("Gets() after EOF -> %q, want \"next\\n\"", line)
	}
}

func TestGets_CRLFFromNonTerminal(t *testing.T) {
	f := setup(t, Config{})
	f.feed("cr\r\nnext\n\r\r\n")
	f.w.Close()

	for _, want := range []string{"cr\n", "next\n", "\n", "\n"} {
		if line, err := f.ed.Gets(); line != want || err != nil {
			t.Errorf("Gets() -> (%q, %v), want (%q, nil)", line, err, want)
		}
	}
	if line, err := f.ed.Gets(); err != io.EOF {
		t.Errorf("Gets() at end of input -> (%q, %v), want io.EOF", line, err)
	}
}

func TestGets_CRThenGetc(t *testing.T) {
	f := setup(t, Config{})
	f.feed("cr\r\n")

	if line, _ := f.ed.Gets(); line != "cr\n" {
		t.Errorf("Gets() -> %q, want \"cr\\n\"", line)
	}
	if b, err := f.ed.Getc(); b != '\n' || err != nil {
		t.Errorf("Getc() -> (%q, %v), want ('\\n', nil)", b, err)
	}
}

func TestGets_Push(t *testing.T) {
	f := setup(t, Config{})
	f.feed("typed\n")
	f.ed.Push("pushed ")
	f.ed.Push("twice ")

	line, err := f.ed.Gets()
	if line != "pushed twice typed\n" || err != nil {
		t.Errorf("Gets() -> (%q, %v), want (\"pushed twice typed\\n\", nil)", line, err)
	}
}

func TestGets_History(t *testing.T) {
	hist, err := histutil.NewStore(histutil.Config{Unique: true})
	if err != nil {
		t.Fatal(err)
	}
	hist.Append("first")
	hist.Append("second")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"previous", "\033[A\n", "second\n"},
		{"previous twice", "\033[A\033[A\n", "first\n"},
		{"stops at oldest", "\033[A\033[A\033[A\n", "first\n"},
		{"back to scratch", "wip\033[A\033[B\n", "wip\n"},
		{"ctrl keys", "\x10\x10\x0e\n", "second\n"},
		{"edit recalled line", "\033[A!\n", "second!\n"},
		{"next without walk", "x\033[B\n", "x\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := setup(t, Config{History: hist})
			f.feed(test.input)
			line, err := f.ed.Gets()
			if line != test.want || err != nil {
				t.Errorf("Gets() -> (%q, %v), want (%q, nil)", line, err, test.want)
			}
		})
	}
}

func TestGets_RendersPrompts(t *testing.T) {
	f := setup(t, Config{
		Prompt:  func() string { return "left> " },
		RPrompt: func() string { return "right" }})
	f.feed("x\n")
	f.ed.Gets()

	out := f.out.String()
	if !strings.Contains(out, "\rleft> x\033[K") {
		t.Errorf("output %q doesn't contain rendered line", out)
	}
	// The width of a pipe is unknown, so the right prompt is not shown.
	if strings.Contains(out, "right") {
		t.Errorf("output %q contains right prompt", out)
	}
}

func TestGetsContext_Canceled(t *testing.T) {
	f := setup(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(testutil.Scaled(10 * time.Millisecond))
		cancel()
	}()

	if _, err := f.ed.GetsContext(ctx); err != context.Canceled {
		t.Errorf("GetsContext -> error %v, want context.Canceled", err)
	}

	f.feed("after\n")
	if line, err := f.ed.Gets(); line != "after\n" || err != nil {
		t.Errorf("Gets() after cancel -> (%q, %v), want (\"after\\n\", nil)", line, err)
	}
}

func TestGetc(t *testing.T) {
	f := setup(t, Config{})
	f.ed.Push("x")
	f.feed("y")

	for _, want := range []byte("xy") {
		if b, err := f.ed.Getc(); b != want || err != nil {
			t.Errorf("Getc() -> (%q, %v), want (%q, nil)", b, err, want)
		}
	}
	f.w.Close()
	if _, err := f.ed.Getc(); err != io.EOF {
		t.Errorf("Getc() at end of input -> %v, want io.EOF", err)
	}
}

func TestReset(t *testing.T) {
	f := setup(t, Config{})
	f.ed.Push("kept\n")
	f.ed.killed = "killed"
	if err := f.ed.Reset(); err != nil {
		t.Errorf("Reset() -> %v", err)
	}
	if f.ed.killed != "" {
		t.Errorf("kill buffer not cleared")
	}
	if line, _ := f.ed.Gets(); line != "kept\n" {
		t.Errorf("Gets() after Reset -> %q, want pushed text", line)
	}
}

func TestClose(t *testing.T) {
	f := setup(t, Config{})
	if err := f.ed.Close(); err != nil {
		t.Errorf("Close() -> %v", err)
	}
	if err := f.ed.Close(); err != nil {
		t.Errorf("second Close() -> %v", err)
	}
	if _, err := f.ed.Gets(); err != ErrClosed {
		t.Errorf("Gets() after Close -> %v, want ErrClosed", err)
	}
	if _, err := f.ed.Getc(); err != ErrClosed {
		t.Errorf("Getc() after Close -> %v, want ErrClosed", err)
	}
	if err := f.ed.Push("x"); err != ErrClosed {
		t.Errorf("Push() after Close -> %v, want ErrClosed", err)
	}
}
