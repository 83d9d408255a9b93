package sys

import (
	"testing"

	"src.lined.sh/pkg/must"
)

func TestIsATTY_Pipe(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()

	if IsATTY(r.Fd()) {
		t.Errorf("IsATTY(pipe) -> true, want false")
	}
}

func TestWinSize_NotTerminal(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()

	row, col := WinSize(r)
	if row != -1 || col != -1 {
		t.Errorf("WinSize(pipe) -> (%v, %v), want (-1, -1)", row, col)
	}
}
