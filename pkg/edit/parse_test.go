//go:build unix

package edit

import (
	"strings"
	"testing"

	"src.lined.sh/pkg/histutil"
)

func TestParse_Status(t *testing.T) {
	tests := []struct {
		args []string
		want int
	}{
		{nil, -1},
		{[]string{"nosuchcmd"}, -1},
		{[]string{"test:nosuchcmd"}, -1},
		{[]string{"other:bind", "-v"}, 0},
		{[]string{"test:bind", "-v"}, 1},
		{[]string{"bind"}, 0},
		{[]string{"bind", "-e"}, 0},
		{[]string{"bind", "-v"}, 1},
		{[]string{"bind", "-l"}, 0},
		{[]string{"bind", "-r", "^A"}, 0},
		{[]string{"bind", "-r", "Bad-Key"}, 1},
		{[]string{"bind", "^A", "ed-move-to-end"}, 0},
		{[]string{"bind", "^A", "no-such-function"}, 1},
		{[]string{"bind", "a", "b", "c"}, 1},
		{[]string{"edit", "on"}, 0},
		{[]string{"edit", "maybe"}, 1},
		{[]string{"edit"}, 1},
		{[]string{"history"}, 0},
		{[]string{"history", "list"}, 0},
		{[]string{"history", "clear"}, 0},
		{[]string{"history", "size", "10"}, 1},
		{[]string{"history", "unique", "0"}, 1},
		{[]string{"history", "frobnicate"}, 1},
		{[]string{"history", "list", "1"}, 0},
		{[]string{"history", "list", "2", "1"}, 1},
		{[]string{"history", "list", "x"}, 1},
		{[]string{"history", "show", "1"}, 1},
		{[]string{"history", "show"}, 1},
		{[]string{"history", "delete", "1"}, 1},
		{[]string{"history", "delete", "0"}, 1},
		{[]string{"history", "delete", "1", "2"}, 1},
		{[]string{"echo", "hello"}, 0},
		{[]string{"echotc", "cl"}, -1},
		{[]string{"settc", "co", "80"}, -1},
		{[]string{"gettc", "co"}, -1},
		{[]string{"telltc"}, -1},
		{[]string{"setty", "-d"}, -1},
	}
	for _, test := range tests {
		f := setup(t, Config{})
		if got := f.ed.Parse(test.args); got != test.want {
			t.Errorf("Parse(%q) -> %d, want %d", test.args, got, test.want)
		}
	}
}

func TestParse_Bind(t *testing.T) {
	f := setup(t, Config{})

	f.ed.Parse([]string{"bind"})
	if !strings.Contains(f.out.String(), "Ctrl-A\ted-move-to-beg\n") {
		t.Errorf("bind listing %q doesn't contain Ctrl-A", f.out.String())
	}

	f.ed.Parse([]string{"bind", "^A", "ed-move-to-end"})
	f.ed.Parse([]string{"bind", `\eb`, "ed-move-to-beg"})
	f.ed.Parse([]string{"bind", "-r", "^B"})
	f.feed("bc\033ba\x01d\x02\n")
	if line, _ := f.ed.Gets(); line != "abcd\n" {
		t.Errorf("Gets() with custom bindings -> %q, want \"abcd\\n\"", line)
	}

	f.ed.Parse([]string{"bind", "-e"})
	f.feed("bc\x01a\n")
	if line, _ := f.ed.Gets(); line != "abc\n" {
		t.Errorf("Gets() after bind -e -> %q, want \"abc\\n\"", line)
	}
}

func TestParse_BindList(t *testing.T) {
	f := setup(t, Config{})
	f.ed.Parse([]string{"bind", "-l"})
	lines := strings.Split(strings.TrimSuffix(f.out.String(), "\n"), "\n")
	if len(lines) != len(functions) {
		t.Errorf("bind -l printed %d lines, want %d", len(lines), len(functions))
	}
	if !strings.HasPrefix(lines[0], "ed-clear-screen\t") {
		t.Errorf("first line of bind -l is %q", lines[0])
	}
}

func TestParse_History(t *testing.T) {
	hist, _ := histutil.NewStore(histutil.Config{Unique: true})
	hist.Append("ls")
	hist.Append("pwd")
	f := setup(t, Config{History: hist})

	f.ed.Parse([]string{"history"})
	if got, want := f.out.String(), "1\tls\n2\tpwd\n"; got != want {
		t.Errorf("history printed %q, want %q", got, want)
	}

	f.ed.Parse([]string{"history", "clear"})
	if hist.Len() != 0 {
		t.Errorf("history clear left %d entries", hist.Len())
	}
}

func TestParse_HistoryEntries(t *testing.T) {
	hist, _ := histutil.NewStore(histutil.Config{})
	for _, line := range []string{"ls", "pwd", "cd /", "ls"} {
		hist.Append(line)
	}
	f := setup(t, Config{History: hist})

	tests := []struct {
		args    []string
		wantOut string
	}{
		{[]string{"history", "list", "2", "4"}, "2\tpwd\n3\tcd /\n"},
		{[]string{"history", "list", "3"}, "3\tcd /\n4\tls\n"},
		{[]string{"history", "show", "3"}, "cd /\n"},
		{[]string{"history", "delete", "2"}, ""},
		{[]string{"history"}, "1\tls\n3\tcd /\n4\tls\n"},
		{[]string{"history", "show", "2"}, "history: show 2: no matching command line\n"},
	}
	for _, test := range tests {
		f.out.Reset()
		f.ed.Parse(test.args)
		if got := f.out.String(); got != test.wantOut {
			t.Errorf("Parse(%q) printed %q, want %q", test.args, got, test.wantOut)
		}
	}
}

func TestParse_Echo(t *testing.T) {
	f := setup(t, Config{})
	f.ed.Parse([]string{"echo", "a", "b"})
	f.ed.Parse([]string{"echo", "-n", "c"})
	if got, want := f.out.String(), "a b\nc"; got != want {
		t.Errorf("echo printed %q, want %q", got, want)
	}
}

func TestParse_EditOff(t *testing.T) {
	f := setup(t, Config{})
	f.ed.Parse([]string{"edit", "off"})
	// Without editing, control characters are kept as is.
	f.feed("a\x02b\n")
	if line, err := f.ed.Gets(); line != "a\x02b\n" || err != nil {
		t.Errorf("Gets() with edit off -> (%q, %v), want (\"a\\x02b\\n\", nil)", line, err)
	}
	if !strings.HasPrefix(f.out.String(), "p> ") {
		t.Errorf("prompt not written, output is %q", f.out.String())
	}

	f.ed.Parse([]string{"edit", "on"})
	f.feed("a\x02b\n")
	if line, _ := f.ed.Gets(); line != "ba\n" {
		t.Errorf("Gets() with edit on -> %q, want \"ba\\n\"", line)
	}
}
