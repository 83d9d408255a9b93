// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.lined.sh/pkg/store/storedefs"
)

var cmds = []string{"echo foo", "put bar", "put lorem", "echo bar"}

// TestCmd tests the command history functionality of a Store.
func TestCmd(t *testing.T, store storedefs.Store) {
	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> (%v, %v), want (1, nil)",
			startSeq, err)
	}

	// AddCmd
	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%v) -> (%v, %v), want (%v, nil)",
				cmd, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextCmdSeq()
	wantedEndSeq := startSeq + len(cmds)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() -> (%v, %v), want (%v, nil)",
			endSeq, err, wantedEndSeq)
	}

	// CmdsWithSeq
	wantCmdWithSeqs := make([]storedefs.Cmd, len(cmds))
	for i, cmd := range cmds {
		wantCmdWithSeqs[i] = storedefs.Cmd{Text: cmd, Seq: i + 1}
	}
	for i := 0; i < len(cmds); i++ {
		for j := i; j <= len(cmds); j++ {
			cmdWithSeqs, err := store.CmdsWithSeq(i+1, j+1)
			if !equalCmds(cmdWithSeqs, wantCmdWithSeqs[i:j]) || err != nil {
				t.Errorf("store.CmdsWithSeq(%v, %v) -> (%v, %v), want (%v, nil)",
					i+1, j+1, cmdWithSeqs, err, wantCmdWithSeqs[i:j])
			}
		}
	}

	// Cmd
	for i, wantedCmd := range cmds {
		seq := i + startSeq
		cmd, err := store.Cmd(seq)
		if cmd != wantedCmd || err != nil {
			t.Errorf("store.Cmd(%v) -> (%v, %v), want (%v, nil)",
				seq, cmd, err, wantedCmd)
		}
	}

	// LastCmds
	for n := 0; n <= len(cmds)+1; n++ {
		from := len(cmds) - n
		if from < 0 {
			from = 0
		}
		got, err := store.LastCmds(n)
		if !equalCmds(got, wantCmdWithSeqs[from:]) || err != nil {
			t.Errorf("store.LastCmds(%v) -> (%v, %v), want (%v, nil)",
				n, got, err, wantCmdWithSeqs[from:])
		}
	}

	// DelCmd
	if err := store.DelCmd(1); err != nil {
		t.Error("Failed to remove cmd")
	}
	if seq, err := store.Cmd(1); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(1) -> (%v, %v), want (%v)",
			seq, err, storedefs.ErrNoMatchingCmd)
	}

	// ClearCmds
	if err := store.ClearCmds(); err != nil {
		t.Errorf("store.ClearCmds() -> %v, want nil", err)
	}
	if got, err := store.LastCmds(len(cmds)); len(got) != 0 || err != nil {
		t.Errorf("store.LastCmds after ClearCmds -> (%v, %v), want ([], nil)", got, err)
	}
	if seq, err := store.NextCmdSeq(); seq != wantedEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() after ClearCmds -> (%v, %v), want (%v, nil)",
			seq, err, wantedEndSeq)
	}
}

func equalCmds(a, b []storedefs.Cmd) bool {
	return (len(a) == 0 && len(b) == 0) || cmp.Equal(a, b)
}
