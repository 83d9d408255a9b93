package testutil

import (
	"os"
	"path/filepath"

	"src.lined.sh/pkg/must"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. It is different from testing.TB.TempDir in that it
// resolves symlinks in the path of the directory.
func TempDir(c Cleanuper) string {
	dir := must.OK1(os.MkdirTemp("", "linedtest"))
	dir = must.OK1(filepath.EvalSymlinks(dir))
	c.Cleanup(func() {
		err := os.RemoveAll(dir)
		if err != nil {
			println("failed to remove temp dir", dir)
		}
	})
	return dir
}

// TempHome is equivalent to Setenv(c, "HOME", TempDir(c)).
func TempHome(c Cleanuper) string {
	return Setenv(c, "HOME", TempDir(c))
}
