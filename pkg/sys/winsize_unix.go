//go:build unix

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

func winSize(file *os.File) (row, col int) {
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return -1, -1
	}
	return orUnknown(ws.Row), orUnknown(ws.Col)
}

// Serial consoles and some pseudo-terminals report a zero size.
func orUnknown(n uint16) int {
	if n == 0 {
		return -1
	}
	return int(n)
}
