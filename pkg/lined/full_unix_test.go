//go:build unix

package lined

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.lined.sh/pkg/must"
	"src.lined.sh/pkg/testutil"
)

type fullFixture struct {
	s   *Session
	w   *os.File
	out *bytes.Buffer
}

func setupFull(t *testing.T, cfg Config) *fullFixture {
	t.Helper()
	r, w := must.Pipe()
	out := new(bytes.Buffer)
	cfg.Backend, cfg.In, cfg.Out, cfg.NoSource = Full, r, out, true
	s, err := Init("test", cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		s.End()
		r.Close()
		w.Close()
	})
	return &fullFixture{s, w, out}
}

func (f *fullFixture) feed(s string) { f.w.WriteString(s) }

func (f *fullFixture) readLines(t *testing.T, n int) []string {
	t.Helper()
	var lines []string
	for i := 0; i < n; i++ {
		line, ok, err := f.s.ReadLine()
		if !ok || err != nil {
			t.Fatalf("ReadLine() -> (%q, %v, %v)", line, ok, err)
		}
		lines = append(lines, line)
	}
	return lines
}

func TestFull_ReadLine(t *testing.T) {
	f := setupFull(t, Config{})
	f.feed("echo hi\nab\x02X\n")

	got := f.readLines(t, 2)
	if diff := cmp.Diff([]string{"echo hi", "aXb"}, got); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if !strings.Contains(f.out.String(), "\rtest> echo hi\033[K") {
		t.Errorf("output %q doesn't contain rendered line", f.out.String())
	}
}

func TestFull_HistoryIsUniqueAndBounded(t *testing.T) {
	f := setupFull(t, Config{HistorySize: 2})
	f.feed("a\na\nb\nc\n")
	f.readLines(t, 4)

	hist, err := f.s.History()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"b", "c"}, hist); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
}

func TestFull_NoUniqueHistory(t *testing.T) {
	f := setupFull(t, Config{NoUniqueHistory: true})
	f.feed("a\na\n")
	f.readLines(t, 2)

	hist, _ := f.s.History()
	if diff := cmp.Diff([]string{"a", "a"}, hist); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
}

func TestFull_PrevHistory(t *testing.T) {
	f := setupFull(t, Config{})
	must.OK(f.s.AddHistory("from history"))
	f.feed("\x10\n")

	if got := f.readLines(t, 1)[0]; got != "from history" {
		t.Errorf("ReadLine() -> %q, want %q", got, "from history")
	}
}

func TestFull_PushIsReadFirst(t *testing.T) {
	f := setupFull(t, Config{})
	must.OK(f.s.Push("pushed "))
	must.OK(f.s.Push("text\n"))
	f.feed("typed\n")

	got := f.readLines(t, 2)
	if diff := cmp.Diff([]string{"pushed text", "typed"}, got); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}

func TestFull_PromptOverride(t *testing.T) {
	f := setupFull(t, Config{})
	f.feed("x\ny\n")

	f.s.ReadLinePrompt("once> ")
	f.s.ReadLine()

	out := f.out.String()
	for _, want := range []string{"\ronce> x\033[K", "\rtest> y\033[K"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q doesn't contain %q", out, want)
		}
	}
}

func TestFull_EOF(t *testing.T) {
	f := setupFull(t, Config{})
	f.feed("last")
	f.w.Close()

	if line, ok, err := f.s.ReadLine(); line != "last" || !ok || err != nil {
		t.Errorf("ReadLine() -> (%q, %v, %v), want (\"last\", true, nil)", line, ok, err)
	}
	if line, ok, err := f.s.ReadLine(); line != "" || ok || err != nil {
		t.Errorf("ReadLine() at EOF -> (%q, %v, %v), want (\"\", false, nil)", line, ok, err)
	}
	if c, err := f.s.GetChar(); c != -1 || err != nil {
		t.Errorf("GetChar() at EOF -> (%d, %v), want (-1, nil)", c, err)
	}
}

func TestFull_CRLFLineEndings(t *testing.T) {
	f := setupFull(t, Config{})
	f.feed("cr\r\nnext\r\n")
	f.w.Close()

	got := f.readLines(t, 2)
	if diff := cmp.Diff([]string{"cr", "next"}, got); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if line, ok, err := f.s.ReadLine(); ok || err != nil {
		t.Errorf("ReadLine() at EOF -> (%q, %v, %v), want (\"\", false, nil)", line, ok, err)
	}
}

func TestFull_GetChar(t *testing.T) {
	f := setupFull(t, Config{})
	must.OK(f.s.Push("a"))
	f.feed("b")

	for _, want := range []int{'a', 'b'} {
		if c, err := f.s.GetChar(); c != want || err != nil {
			t.Errorf("GetChar() -> (%d, %v), want (%d, nil)", c, err, want)
		}
	}
}

func TestFull_Parse(t *testing.T) {
	f := setupFull(t, Config{})

	if st, err := f.s.Parse("test:echo", "hello"); st != 0 || err != nil {
		t.Errorf("Parse -> (%d, %v), want (0, nil)", st, err)
	}
	if st, _ := f.s.Parse("no-such-command"); st != -1 {
		t.Errorf("Parse of unknown command -> %d, want -1", st)
	}
	if !strings.Contains(f.out.String(), "hello\n") {
		t.Errorf("output %q doesn't contain echoed text", f.out.String())
	}

	// Rebinding takes effect on the next read.
	f.s.Parse("bind", "^A", "ed-move-to-end")
	f.feed("ab\x02\x01c\n")
	if got := f.readLines(t, 1)[0]; got != "abc" {
		t.Errorf("ReadLine() after bind -> %q, want %q", got, "abc")
	}
}

func TestFull_Source(t *testing.T) {
	dir := testutil.TempDir(t)
	rc := filepath.Join(dir, "editrc")
	must.WriteFile(rc, "# comment\nbind ^A ed-move-to-end\ntest:edit on\n")

	f := setupFull(t, Config{})
	if st, err := f.s.Source(rc); st != 0 || err != nil {
		t.Errorf("Source -> (%d, %v), want (0, nil)", st, err)
	}
	if st, _ := f.s.Source(filepath.Join(dir, "missing")); st != -1 {
		t.Errorf("Source of missing file -> %d, want -1", st)
	}
}

func TestFull_SourcesStartupFile(t *testing.T) {
	dir := testutil.TempDir(t)
	rc := filepath.Join(dir, "editrc")
	must.WriteFile(rc, "bind ^A ed-move-to-end\n")

	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	s, err := Init("test", Config{Backend: Full, In: r, Out: new(bytes.Buffer), EditRC: rc})
	if err != nil {
		t.Fatal(err)
	}
	defer s.End()

	w.WriteString("ab\x02\x01c\n")
	if line, _, _ := s.ReadLine(); line != "abc" {
		t.Errorf("ReadLine() -> %q, want %q", line, "abc")
	}
}

func TestFull_PersistentHistory(t *testing.T) {
	db := filepath.Join(testutil.TempDir(t), "db")

	f := setupFull(t, Config{DB: db})
	f.feed("first\nsecond\n")
	f.readLines(t, 2)
	f.s.End()

	f = setupFull(t, Config{DB: db})
	hist, err := f.s.History()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, hist); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}

	if st, err := f.s.Parse("history", "delete", "1"); st != 0 || err != nil {
		t.Errorf("Parse(history delete 1) -> (%d, %v), want (0, nil)", st, err)
	}
	f.s.End()

	f = setupFull(t, Config{DB: db})
	hist, _ = f.s.History()
	if diff := cmp.Diff([]string{"second"}, hist); diff != "" {
		t.Errorf("history after delete (-want +got):\n%s", diff)
	}
}
