//go:build unix

package edit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse runs a configuration command. If args[0] has the form "prog:command",
// the command only runs if prog is the program name of the Editor; otherwise
// Parse returns 0. It returns 0 on success, 1 if the command failed, and -1 if
// args is empty or the command is unknown.
func (ed *Editor) Parse(args []string) int {
	if len(args) == 0 {
		return -1
	}
	name := args[0]
	if i := strings.IndexByte(name, ':'); i >= 0 {
		if name[:i] != ed.prog {
			return 0
		}
		name = name[i+1:]
	}
	cmd, ok := commands[name]
	if !ok {
		return -1
	}
	return cmd(ed, args[1:])
}

var commands map[string]func(*Editor, []string) int

func init() {
	commands = map[string]func(*Editor, []string) int{
		"bind":    (*Editor).bind,
		"echo":    (*Editor).echo,
		"edit":    (*Editor).edit,
		"history": (*Editor).history,

		// Terminal capabilities are not configurable.
		"echotc": unsupported,
		"gettc":  unsupported,
		"settc":  unsupported,
		"setty":  unsupported,
		"telltc": unsupported,
	}
}

func unsupported(*Editor, []string) int { return -1 }

func (ed *Editor) echo(args []string) int {
	newline := true
	if len(args) > 0 && args[0] == "-n" {
		newline = false
		args = args[1:]
	}
	fmt.Fprint(ed.out, strings.Join(args, " "))
	if newline {
		fmt.Fprintln(ed.out)
	}
	return 0
}

func (ed *Editor) edit(args []string) int {
	if len(args) == 1 {
		switch args[0] {
		case "on":
			ed.editing = true
			return 0
		case "off":
			ed.editing = false
			return 0
		}
	}
	ed.errorf("edit: usage: edit on|off")
	return 1
}

func (ed *Editor) history(args []string) int {
	if len(args) == 0 || (len(args) == 1 && args[0] == "list") {
		for _, cmd := range ed.hist.Cmds() {
			fmt.Fprintf(ed.out, "%d\t%s\n", cmd.Seq, cmd.Text)
		}
		return 0
	}
	switch args[0] {
	case "clear":
		if len(args) != 1 {
			break
		}
		if err := ed.hist.Clear(); err != nil {
			ed.errorf("history: %v", err)
			return 1
		}
		return 0
	case "list":
		from, upto, ok := parseSeqRange(args[1:])
		if !ok {
			break
		}
		cmds, err := ed.hist.Range(from, upto)
		if err != nil {
			ed.errorf("history: %v", err)
			return 1
		}
		for _, cmd := range cmds {
			fmt.Fprintf(ed.out, "%d\t%s\n", cmd.Seq, cmd.Text)
		}
		return 0
	case "show", "delete":
		if len(args) != 2 {
			break
		}
		seq, err := strconv.Atoi(args[1])
		if err != nil || seq < 1 {
			break
		}
		if args[0] == "delete" {
			err = ed.hist.Delete(seq)
		} else {
			var text string
			text, err = ed.hist.Get(seq)
			if err == nil {
				fmt.Fprintln(ed.out, text)
			}
		}
		if err != nil {
			ed.errorf("history: %s %d: %v", args[0], seq, err)
			return 1
		}
		return 0
	case "size", "unique":
		ed.errorf("history: %s is fixed when the editor is created", args[0])
		return 1
	}
	ed.errorf("history: bad arguments %q", args)
	return 1
}

// parseSeqRange parses "FROM [UPTO]" of sequence numbers. A missing UPTO
// means no upper bound.
func parseSeqRange(args []string) (from, upto int, ok bool) {
	if len(args) < 1 || len(args) > 2 {
		return 0, 0, false
	}
	from, err := strconv.Atoi(args[0])
	if err != nil || from < 1 {
		return 0, 0, false
	}
	upto = math.MaxInt
	if len(args) == 2 {
		upto, err = strconv.Atoi(args[1])
		if err != nil || upto < from {
			return 0, 0, false
		}
	}
	return from, upto, true
}

func (ed *Editor) errorf(format string, args ...any) {
	fmt.Fprintf(ed.out, format+"\n", args...)
}
