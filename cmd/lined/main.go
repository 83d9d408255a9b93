// Lined reads lines from the terminal with in-line editing and history, and
// prints the shell-like words of each line. Lines starting with ":" configure
// the line editor.
package main

import (
	"os"

	"src.lined.sh/pkg/buildinfo"
	"src.lined.sh/pkg/prog"
	"src.lined.sh/pkg/repl"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, repl.Program)))
}
