//go:build unix

package lined

import (
	"context"

	"src.lined.sh/pkg/edit"
)

const fullAvailable = true

// fullBackend is the Full backend, built on the in-process editor.
type fullBackend struct {
	ed *edit.Editor
}

func newFull(spec BackendSpec) (Backend, error) {
	ed, err := edit.New(spec.Prog, spec.In, spec.Out, edit.Config{
		Prompt:   spec.Prompt,
		RPrompt:  spec.RPrompt,
		History:  spec.History,
		EditRC:   spec.Config.EditRC,
		NoSource: spec.Config.NoSource,
	})
	if err != nil {
		return nil, err
	}
	return fullBackend{ed}, nil
}

func (b fullBackend) ReadLine(ctx context.Context) (string, error) {
	return b.ed.GetsContext(ctx)
}

func (b fullBackend) AddHistory(line string) error {
	_, err := b.ed.History().Append(line)
	return err
}

func (b fullBackend) Push(text string) error  { return b.ed.Push(text) }
func (b fullBackend) GetChar() (byte, error)  { return b.ed.Getc() }
func (b fullBackend) Reset() error            { return b.ed.Reset() }
func (b fullBackend) Close() error            { return b.ed.Close() }
func (b fullBackend) Parse(args []string) int { return b.ed.Parse(args) }
func (b fullBackend) Source(path string) int  { return b.ed.Source(path) }
