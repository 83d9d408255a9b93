// Package histutil provides the in-memory command history used by the line
// editor, optionally backed by a persistent database.
package histutil

import (
	"errors"
	"sort"

	perrors "github.com/pkg/errors"
	"src.lined.sh/pkg/store/storedefs"
)

// DefaultSize is the capacity of a Store whose Config has no Size.
const DefaultSize = 128

// ErrEndOfHistory is returned by Cursor.Get when the cursor is out of range.
var ErrEndOfHistory = errors.New("end of history")

// DB is the interface of the storage database.
type DB interface {
	AddCmd(cmd string) (int, error)
	DelCmd(seq int) error
	ClearCmds() error
	Cmd(seq int) (string, error)
	CmdsWithSeq(from, upto int) ([]storedefs.Cmd, error)
	LastCmds(n int) ([]storedefs.Cmd, error)
}

// Config keeps the parameters of a Store. They are fixed once the Store is
// created.
type Config struct {
	// Maximum number of entries. When exceeded, the oldest entry is evicted.
	Size int
	// Whether to reject a line equal to the newest entry.
	Unique bool
	// Optional database. The newest Size commands are loaded when the Store is
	// created, and accepted lines are written through.
	DB DB
}

// Store is a bounded, ordered list of history entries, oldest first.
type Store struct {
	cfg     Config
	cmds    []storedefs.Cmd
	nextSeq int
}

// NewStore creates a new Store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	s := &Store{cfg: cfg, nextSeq: 1}
	if cfg.DB != nil {
		cmds, err := cfg.DB.LastCmds(cfg.Size)
		if err != nil {
			return nil, perrors.Wrap(err, "load history")
		}
		s.cmds = cmds
		if len(cmds) > 0 {
			s.nextSeq = cmds[len(cmds)-1].Seq + 1
		}
	}
	return s, nil
}

// Size returns the capacity of the Store.
func (s *Store) Size() int { return s.cfg.Size }

// Unique returns whether the Store rejects a line equal to the newest entry.
func (s *Store) Unique() bool { return s.cfg.Unique }

// Append adds a line as the newest entry and reports whether it was added.
// When the Store is unique and the line equals the newest entry, nothing is
// added. An error writing the line to the database is returned after the line
// has been added in memory.
func (s *Store) Append(line string) (bool, error) {
	if s.cfg.Unique && len(s.cmds) > 0 && s.cmds[len(s.cmds)-1].Text == line {
		return false, nil
	}
	seq := s.nextSeq
	var err error
	if s.cfg.DB != nil {
		var dbSeq int
		dbSeq, err = s.cfg.DB.AddCmd(line)
		if err == nil {
			seq = dbSeq
		} else {
			err = perrors.Wrap(err, "save history")
		}
	}
	s.nextSeq = seq + 1
	s.cmds = append(s.cmds, storedefs.Cmd{Text: line, Seq: seq})
	if len(s.cmds) > s.cfg.Size {
		// Copy so that evicted entries can be collected.
		s.cmds = append([]storedefs.Cmd(nil), s.cmds[len(s.cmds)-s.cfg.Size:]...)
	}
	return true, err
}

// All returns the text of all entries, oldest first.
func (s *Store) All() []string {
	texts := make([]string, len(s.cmds))
	for i, cmd := range s.cmds {
		texts[i] = cmd.Text
	}
	return texts
}

// Cmds returns all entries with their sequence numbers, oldest first.
func (s *Store) Cmds() []storedefs.Cmd {
	return append([]storedefs.Cmd(nil), s.cmds...)
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.cmds) }

// Newest returns the newest entry, and false if the Store is empty.
func (s *Store) Newest() (string, bool) {
	if len(s.cmds) == 0 {
		return "", false
	}
	return s.cmds[len(s.cmds)-1].Text, true
}

// Clear removes all entries, including those in the database.
func (s *Store) Clear() error {
	s.cmds = nil
	if s.cfg.DB != nil {
		return perrors.Wrap(s.cfg.DB.ClearCmds(), "clear history")
	}
	return nil
}

// Get returns the text of the entry with the given sequence number. Entries
// evicted from memory are looked up in the database. If there is no such
// entry, the error is storedefs.ErrNoMatchingCmd.
func (s *Store) Get(seq int) (string, error) {
	if i, ok := s.index(seq); ok {
		return s.cmds[i].Text, nil
	}
	if s.cfg.DB != nil {
		return s.cfg.DB.Cmd(seq)
	}
	return "", storedefs.ErrNoMatchingCmd
}

// Range returns the entries with sequence numbers in [from, upto), oldest
// first. With a database, entries are read from it, so entries evicted from
// memory are included.
func (s *Store) Range(from, upto int) ([]storedefs.Cmd, error) {
	if s.cfg.DB != nil {
		cmds, err := s.cfg.DB.CmdsWithSeq(from, upto)
		if err != nil {
			return nil, perrors.Wrap(err, "read history")
		}
		return cmds, nil
	}
	var cmds []storedefs.Cmd
	for _, cmd := range s.cmds {
		if from <= cmd.Seq && cmd.Seq < upto {
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}

// Delete removes the entry with the given sequence number, including its copy
// in the database. If there is no such entry, the error is
// storedefs.ErrNoMatchingCmd.
func (s *Store) Delete(seq int) error {
	i, inMemory := s.index(seq)
	if s.cfg.DB != nil {
		if !inMemory {
			if _, err := s.cfg.DB.Cmd(seq); err != nil {
				return err
			}
		}
		if err := s.cfg.DB.DelCmd(seq); err != nil {
			return perrors.Wrap(err, "delete history")
		}
	} else if !inMemory {
		return storedefs.ErrNoMatchingCmd
	}
	if inMemory {
		s.cmds = append(s.cmds[:i:i], s.cmds[i+1:]...)
	}
	return nil
}

// Entries are kept in increasing order of sequence number.
func (s *Store) index(seq int) (int, bool) {
	i := sort.Search(len(s.cmds), func(i int) bool { return s.cmds[i].Seq >= seq })
	return i, i < len(s.cmds) && s.cmds[i].Seq == seq
}
