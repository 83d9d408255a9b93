//go:build unix

package edit

import (
	"sort"

	"src.lined.sh/pkg/histutil"
	"src.lined.sh/pkg/ui"
)

type function struct {
	fn   func(ed *Editor, k ui.Key) action
	desc string
}

// Editing functions, addressable by name in bindings.
var functions = map[string]function{
	"ed-insert":           {insertKey, "Add character to the line"},
	"ed-newline":          {func(*Editor, ui.Key) action { return commitLine }, "Execute command"},
	"ed-end-of-file":      {func(*Editor, ui.Key) action { return commitEOF }, "Indicate end of file"},
	"em-delete-or-list":   {deleteOrEOF, "Delete character under cursor or end of file on an empty line"},
	"ed-delete-prev-char": {bufOp((*buffer).deleteLeft), "Delete the character to the left of the cursor"},
	"ed-delete-next-char": {bufOp((*buffer).deleteRight), "Delete character under cursor"},
	"ed-move-to-beg":      {moveToBeg, "Move to the beginning of line"},
	"ed-move-to-end":      {moveToEnd, "Move to the end of line"},
	"ed-prev-char":        {bufOp((*buffer).moveLeft), "Move to the left one character"},
	"ed-next-char":        {bufOp((*buffer).moveRight), "Move to the right one character"},
	"ed-kill-line":        {kill((*buffer).killRight), "Cut to the end of line"},
	"em-kill-line":        {kill((*buffer).killAll), "Cut the entire line and save in cut buffer"},
	"ed-delete-prev-word": {kill((*buffer).killWordLeft), "Delete from beginning of current word to cursor"},
	"em-yank":             {yank, "Paste cut buffer at cursor position"},
	"ed-transpose-chars":  {bufOp((*buffer).transpose), "Swap this character and the one before it"},
	"ed-prev-history":     {prevHistory, "Move to the previous history line"},
	"ed-next-history":     {nextHistory, "Move to the next history line"},
	"ed-clear-screen":     {clearScreen, "Clear screen leaving current line at the top"},
	"ed-redisplay":        {redisplay, "Redisplay everything"},
	"ed-ignore":           {func(*Editor, ui.Key) action { return noAction }, "Ignore this character"},
}

func functionNames() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func insertKey(ed *Editor, k ui.Key) action {
	if !isInsertable(k) {
		ed.writer.Bell()
		return noAction
	}
	ed.buf.insert(string(k.Rune))
	return noAction
}

func deleteOrEOF(ed *Editor, _ ui.Key) action {
	if ed.buf.Content == "" {
		return commitEOF
	}
	if !ed.buf.deleteRight() {
		ed.writer.Bell()
	}
	return noAction
}

func moveToBeg(ed *Editor, _ ui.Key) action {
	ed.buf.Dot = 0
	return noAction
}

func moveToEnd(ed *Editor, _ ui.Key) action {
	ed.buf.Dot = len(ed.buf.Content)
	return noAction
}

// bufOp wraps a buffer method that reports whether it did anything. The bell
// rings when it did not.
func bufOp(op func(*buffer) bool) func(*Editor, ui.Key) action {
	return func(ed *Editor, _ ui.Key) action {
		if !op(&ed.buf) {
			ed.writer.Bell()
		}
		return noAction
	}
}

// kill wraps a buffer method that removes text. Non-empty text replaces the
// kill buffer.
func kill(op func(*buffer) string) func(*Editor, ui.Key) action {
	return func(ed *Editor, _ ui.Key) action {
		if killed := op(&ed.buf); killed != "" {
			ed.killed = killed
		}
		return noAction
	}
}

func yank(ed *Editor, _ ui.Key) action {
	if ed.killed == "" {
		ed.writer.Bell()
		return noAction
	}
	ed.buf.insert(ed.killed)
	return noAction
}

func prevHistory(ed *Editor, _ ui.Key) action {
	if ed.walk == nil {
		ed.walk = ed.hist.Cursor("")
		ed.scratch = ed.buf.Content
	}
	ed.walk.Prev()
	cmd, err := ed.walk.Get()
	if err != nil {
		// Stay on the oldest entry.
		ed.walk.Next()
		ed.writer.Bell()
		if _, err := ed.walk.Get(); err == histutil.ErrEndOfHistory {
			// History is empty.
			ed.walk = nil
		}
		return noAction
	}
	ed.buf = buffer{cmd.Text, len(cmd.Text)}
	return noAction
}

func nextHistory(ed *Editor, _ ui.Key) action {
	if ed.walk == nil {
		ed.writer.Bell()
		return noAction
	}
	ed.walk.Next()
	cmd, err := ed.walk.Get()
	if err != nil {
		// Back to the line being edited before the walk started.
		ed.buf = buffer{ed.scratch, len(ed.scratch)}
		ed.walk = nil
		return noAction
	}
	ed.buf = buffer{cmd.Text, len(cmd.Text)}
	return noAction
}

func clearScreen(ed *Editor, _ ui.Key) action {
	ed.writer.ClearScreen()
	return noAction
}

func redisplay(ed *Editor, _ ui.Key) action {
	ed.widthSet = false
	return noAction
}
