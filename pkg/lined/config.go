package lined

import (
	"fmt"
	"io"
	"os"

	"src.lined.sh/pkg/sys"
)

// Kind identifies a backend.
type Kind int

// Possible values of Kind.
const (
	// Auto selects Full when the input is a terminal and Minimal otherwise.
	Auto Kind = iota
	// Full is the in-process line editor with bounded history, key bindings,
	// configuration commands and a secondary prompt.
	Full
	// Minimal is a plain readline library with its own history file.
	Minimal
)

var kindNames = [...]string{Auto: "auto", Full: "full", Minimal: "minimal"}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the name of a backend kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if s == name {
			return Kind(i), nil
		}
	}
	return Auto, fmt.Errorf("unknown backend %q, want one of auto, full, minimal", s)
}

// Config keeps the options of a session. The zero value is usable.
type Config struct {
	// Backend to use.
	Backend Kind
	// Input and output. Default to os.Stdin and os.Stdout.
	In  *os.File
	Out io.Writer

	// Capacity of the history of the Full backend. Defaults to 128.
	HistorySize int
	// If true, the history of the Full backend keeps consecutive duplicates.
	NoUniqueHistory bool
	// Path of a database for persistent history of the Full backend. If
	// empty, history only lives as long as the session.
	DB string

	// Startup file of the Full backend. If empty, $EDITRC or ~/.editrc.
	EditRC string
	// If true, the Full backend doesn't source a startup file.
	NoSource bool

	// History file of the Minimal backend. If empty, ~/.<prog>_history.
	HistoryFile string

	// Creates the backend. If nil, the built-in backend of the selected Kind
	// is used. It is mostly useful for tests.
	NewBackend func(BackendSpec) (Backend, error)
}

func (cfg Config) withDefaults() Config {
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	return cfg
}

// selectKind resolves Auto to a concrete Kind.
func selectKind(k Kind, in *os.File) Kind {
	if k != Auto {
		return k
	}
	if fullAvailable && sys.IsATTY(in.Fd()) {
		return Full
	}
	return Minimal
}
