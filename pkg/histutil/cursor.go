package histutil

import (
	"strings"

	"src.lined.sh/pkg/store/storedefs"
)

// Cursor is used to navigate a Store. It starts past the newest entry.
type Cursor interface {
	// Prev moves the cursor to the previous entry with the prefix, or to
	// before the oldest entry.
	Prev()
	// Next moves the cursor to the next entry with the prefix, or to past the
	// newest entry.
	Next()
	// Get returns the entry under the cursor, or ErrEndOfHistory if the cursor
	// is out of range.
	Get() (storedefs.Cmd, error)
}

// Cursor returns a Cursor over the entries starting with prefix. The cursor
// works on a snapshot; later changes to the Store are not seen.
func (s *Store) Cursor(prefix string) Cursor {
	cmds := s.Cmds()
	return &cursor{cmds, prefix, len(cmds)}
}

type cursor struct {
	cmds   []storedefs.Cmd
	prefix string
	index  int
}

func (c *cursor) Prev() {
	if c.index < 0 {
		return
	}
	for c.index--; c.index >= 0; c.index-- {
		if strings.HasPrefix(c.cmds[c.index].Text, c.prefix) {
			return
		}
	}
}

func (c *cursor) Next() {
	if c.index >= len(c.cmds) {
		return
	}
	for c.index++; c.index < len(c.cmds); c.index++ {
		if strings.HasPrefix(c.cmds[c.index].Text, c.prefix) {
			return
		}
	}
}

func (c *cursor) Get() (storedefs.Cmd, error) {
	if c.index < 0 || c.index >= len(c.cmds) {
		return storedefs.Cmd{}, ErrEndOfHistory
	}
	return c.cmds[c.index], nil
}
