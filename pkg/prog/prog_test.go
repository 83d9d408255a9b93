package prog_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"src.lined.sh/pkg/logutil"
	"src.lined.sh/pkg/must"
	. "src.lined.sh/pkg/prog"
	"src.lined.sh/pkg/prog/progtest"
	"src.lined.sh/pkg/testutil"
)

var (
	Test      = progtest.Test
	ThatLined = progtest.ThatLined
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := testutil.TempHome(t)
	homedir.Reset()
	t.Cleanup(homedir.Reset)
	return home
}

func TestCommonFlagHandling(t *testing.T) {
	setupHome(t)

	Test(t, testProgram{},
		ThatLined("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatLined("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatLined("-help").
			WritesStdoutContaining("Usage: lined [flags]"),
	)
}

func TestLogFlag(t *testing.T) {
	home := setupHome(t)
	logPath := filepath.Join(home, "log")
	t.Cleanup(func() { logutil.SetOutputFile("") })

	Test(t, testProgram{}, ThatLined("-log", logPath).DoesNothing())
	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("log file does not exist: %v", err)
	}
}

func TestBadUsage(t *testing.T) {
	setupHome(t)
	Test(t, testProgram{err: BadUsage("lorem ipsum")},
		ThatLined().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExit(t *testing.T) {
	setupHome(t)
	Test(t, testProgram{err: Exit(3)}, ThatLined().ExitsWith(3))
	Test(t, testProgram{err: Exit(0)}, ThatLined().DoesNothing())
}

func TestNoSuitableSubprogram(t *testing.T) {
	setupHome(t)
	Test(t, testProgram{notSuitable: true},
		ThatLined().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	setupHome(t)
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatLined().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	setupHome(t)
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatLined().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestConfigFile(t *testing.T) {
	home := setupHome(t)
	must.OK(os.MkdirAll(filepath.Join(home, ".config", "lined"), 0700))
	must.WriteFile(filepath.Join(home, ".config", "lined", "config.yaml"), `
backend: minimal
db: ~/lined.db
norc: true
history:
  size: 10
  unique: false
  file: ~/hist
`)

	Test(t, printFlags{},
		ThatLined().WritesStdout(fmt.Sprintf(
			"backend=minimal db=%s editrc= norc=true size=10 nounique=true file=%s\n",
			filepath.Join(home, "lined.db"), filepath.Join(home, "hist"))),
		// Flags override the config file.
		ThatLined("-backend", "full", "-db", "/tmp/db").WritesStdout(fmt.Sprintf(
			"backend=full db=/tmp/db editrc= norc=true size=10 nounique=true file=%s\n",
			filepath.Join(home, "hist"))),
	)
}

func TestConfigFile_Explicit(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "lined.yaml")
	must.WriteFile(path, "editrc: /etc/editrc\n")

	Test(t, printFlags{},
		ThatLined("-config", path).WritesStdout(
			"backend= db= editrc=/etc/editrc norc=false size=0 nounique=false file=\n"),
		ThatLined("-config", filepath.Join(home, "missing.yaml")).
			ExitsWith(2).
			WritesStderrContaining("cannot read config"),
	)
}

func TestConfigFile_Empty(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "empty.yaml")
	must.WriteFile(path, "")

	Test(t, printFlags{},
		ThatLined("-config", path).WritesStdout(
			"backend= db= editrc= norc=false size=0 nounique=false file=\n"),
	)
}

func TestConfigFile_Bad(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "bad.yaml")
	must.WriteFile(path, "no_such_field: 1\n")

	Test(t, testProgram{},
		ThatLined("-config", path).
			ExitsWith(2).
			WritesStderrContaining("parse "+path),
	)
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	err         error
}

func (p testProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.err
}

type printFlags struct{}

func (printFlags) Run(fds [3]*os.File, f *Flags, args []string) error {
	fmt.Fprintf(fds[1], "backend=%s db=%s editrc=%s norc=%v size=%d nounique=%v file=%s\n",
		f.Backend, f.DB, f.EditRC, f.NoRc, f.HistorySize, f.NoUniqueHistory, f.HistoryFile)
	return nil
}
