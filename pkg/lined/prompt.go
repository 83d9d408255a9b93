package lined

import (
	"src.lined.sh/pkg/errutil"
	"src.lined.sh/pkg/histutil"
	"src.lined.sh/pkg/store"
)

// MaxPromptLen is the maximum number of characters kept of a prompt.
const MaxPromptLen = 255

// sideData is the state a session owns besides its backend. It is allocated
// by Init and released once by End.
type sideData struct {
	prompt   string
	rprompt  string
	override *string

	// Only for the Full backend.
	hist *histutil.Store
	db   store.DBStore
}

func newSideData(prog string) *sideData {
	return &sideData{prompt: truncatePrompt(prog + "> ")}
}

// resolvePrompt returns the primary prompt of the current read.
func (sd *sideData) resolvePrompt() string {
	if sd.override != nil {
		return *sd.override
	}
	return sd.prompt
}

func (sd *sideData) resolveRPrompt() string { return sd.rprompt }

// setOverride replaces the primary prompt until clearOverride is called and
// clears the secondary prompt.
func (sd *sideData) setOverride(p string) {
	p = truncatePrompt(p)
	sd.override = &p
	sd.rprompt = ""
}

func (sd *sideData) clearOverride() { sd.override = nil }

func (sd *sideData) release() error {
	var err error
	if sd.db != nil {
		err = sd.db.Close()
	}
	*sd = sideData{}
	return errutil.Multi(err)
}

func truncatePrompt(p string) string {
	n := 0
	for i := range p {
		if n == MaxPromptLen {
			return p[:i]
		}
		n++
	}
	return p
}
