//go:build unix

package edit

import (
	"fmt"
	"sort"

	"src.lined.sh/pkg/ui"
)

func defaultBindings() map[ui.Key]string {
	return map[ui.Key]string{
		ui.K('A', ui.Ctrl): "ed-move-to-beg",
		ui.K('B', ui.Ctrl): "ed-prev-char",
		ui.K('D', ui.Ctrl): "em-delete-or-list",
		ui.K('E', ui.Ctrl): "ed-move-to-end",
		ui.K('F', ui.Ctrl): "ed-next-char",
		ui.K('K', ui.Ctrl): "ed-kill-line",
		ui.K('L', ui.Ctrl): "ed-clear-screen",
		ui.K('M', ui.Ctrl): "ed-newline",
		ui.K('N', ui.Ctrl): "ed-next-history",
		ui.K('P', ui.Ctrl): "ed-prev-history",
		ui.K('R', ui.Ctrl): "ed-redisplay",
		ui.K('T', ui.Ctrl): "ed-transpose-chars",
		ui.K('U', ui.Ctrl): "em-kill-line",
		ui.K('W', ui.Ctrl): "ed-delete-prev-word",
		ui.K('Y', ui.Ctrl): "em-yank",

		ui.K(ui.Enter):     "ed-newline",
		ui.K(ui.Tab):       "ed-insert",
		ui.K(ui.Backspace): "ed-delete-prev-char",
		ui.K(ui.Delete):    "ed-delete-next-char",
		ui.K(ui.Left):      "ed-prev-char",
		ui.K(ui.Right):     "ed-next-char",
		ui.K(ui.Up):        "ed-prev-history",
		ui.K(ui.Down):      "ed-next-history",
		ui.K(ui.Home):      "ed-move-to-beg",
		ui.K(ui.End):       "ed-move-to-end",

		ui.K(ui.Backspace, ui.Alt): "ed-delete-prev-word",
	}
}

// bind implements the bind command.
func (ed *Editor) bind(args []string) int {
	switch {
	case len(args) == 0:
		ed.listBindings()
		return 0
	case args[0] == "-e" && len(args) == 1:
		ed.bindings = defaultBindings()
		return 0
	case args[0] == "-v" && len(args) == 1:
		ed.errorf("bind: vi mode is not supported")
		return 1
	case args[0] == "-l" && len(args) == 1:
		for _, name := range functionNames() {
			fmt.Fprintf(ed.out, "%s\t%s\n", name, functions[name].desc)
		}
		return 0
	case args[0] == "-r" && len(args) == 2:
		k, err := ui.ParseKey(args[1])
		if err != nil {
			ed.errorf("bind: %v", err)
			return 1
		}
		delete(ed.bindings, k)
		return 0
	case len(args) == 2:
		k, err := ui.ParseKey(args[0])
		if err != nil {
			ed.errorf("bind: %v", err)
			return 1
		}
		if _, ok := functions[args[1]]; !ok {
			ed.errorf("bind: unknown function %q", args[1])
			return 1
		}
		ed.bindings[k] = args[1]
		return 0
	}
	ed.errorf("bind: bad arguments %q", args)
	return 1
}

func (ed *Editor) listBindings() {
	keys := make(ui.Keys, 0, len(ed.bindings))
	for k := range ed.bindings {
		keys = append(keys, k)
	}
	sort.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(ed.out, "%s\t%s\n", k, ed.bindings[k])
	}
}
