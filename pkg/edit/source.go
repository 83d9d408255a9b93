//go:build unix

package edit

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"src.lined.sh/pkg/strutil"
)

// EditRCEnv is the environment variable naming the default startup file.
const EditRCEnv = "EDITRC"

// DefaultEditRC returns the path of the default startup file: the value of
// $EDITRC if set, otherwise ~/.editrc.
func DefaultEditRC() (string, error) {
	if path := os.Getenv(EditRCEnv); path != "" {
		return path, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".editrc"), nil
}

// Source runs the configuration commands in a file, one per line. If path is
// empty, the default startup file is used. Blank lines and lines starting
// with "#" are skipped. It returns -1 if the file cannot be opened, a line
// cannot be tokenized or a command returns -1, at which point the rest of the
// file is skipped. Otherwise it returns the status of the last command.
func (ed *Editor) Source(path string) int {
	if path == "" {
		var err error
		path, err = DefaultEditRC()
		if err != nil {
			logger.Debug("no default startup file", "err", err)
			return -1
		}
	}
	file, err := os.Open(path)
	if err != nil {
		logger.Debug("cannot open startup file", "path", path, "err", err)
		return -1
	}
	defer file.Close()

	status := 0
	scanner := bufio.NewScanner(file)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(strutil.ChopLineEnding(scanner.Text()))
		if line == "" || line[0] == '#' {
			continue
		}
		args, err := strutil.Tokenize(line)
		if err != nil {
			logger.Info("bad line in startup file", "path", path, "line", lineno, "err", err)
			return -1
		}
		if status = ed.Parse(args); status == -1 {
			logger.Info("unknown command in startup file", "path", path, "line", lineno)
			return -1
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Info("cannot read startup file", "path", path, "err", err)
		return -1
	}
	return status
}
