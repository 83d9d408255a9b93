package term

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// Line is the content of a single-line editor display.
type Line struct {
	Prompt  string
	RPrompt string
	Buffer  string
	// Dot is the byte index of the cursor within Buffer.
	Dot int
}

// Writer renders a Line to the terminal with VT100 sequences.
type Writer interface {
	// UpdateLine redraws the current line. The right prompt is only shown
	// when width is positive and there is room for it.
	UpdateLine(l Line, width int) error
	// Newline moves the cursor to the start of the next line.
	Newline() error
	// ClearScreen clears the terminal screen and places the cursor at the top
	// left corner.
	ClearScreen() error
	// Bell rings the terminal bell.
	Bell() error
}

type writer struct {
	file io.Writer
}

// NewWriter returns a Writer that writes VT100 sequences to the given
// io.Writer.
func NewWriter(f io.Writer) Writer {
	return &writer{f}
}

func (w *writer) UpdateLine(l Line, width int) error {
	buf := new(bytes.Buffer)
	buf.WriteString("\r")
	buf.WriteString(l.Prompt)
	buf.WriteString(l.Buffer)
	// Erase the rest of the line.
	buf.WriteString("\033[K")

	tail := runewidth.StringWidth(l.Buffer[l.Dot:])
	if l.RPrompt != "" && width > 0 {
		used := runewidth.StringWidth(l.Prompt) + runewidth.StringWidth(l.Buffer)
		rpromptWidth := runewidth.StringWidth(l.RPrompt)
		// Leave the last column free so that the terminal doesn't wrap.
		if padding := width - 1 - used - rpromptWidth; padding > 0 {
			buf.Write(bytes.Repeat([]byte{' '}, padding))
			buf.WriteString(l.RPrompt)
			tail += padding + rpromptWidth
		}
	}
	if tail > 0 {
		fmt.Fprintf(buf, "\033[%dD", tail)
	}
	_, err := w.file.Write(buf.Bytes())
	return err
}

func (w *writer) Newline() error {
	_, err := io.WriteString(w.file, "\r\n")
	return err
}

func (w *writer) ClearScreen() error {
	_, err := io.WriteString(w.file, "\033[H\033[2J")
	return err
}

func (w *writer) Bell() error {
	_, err := io.WriteString(w.file, "\a")
	return err
}
