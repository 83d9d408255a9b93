package edit

import (
	"unicode"
	"unicode/utf8"
)

// buffer is the content of the line being edited and the position of the
// cursor in it. Dot is a byte index that is always on a rune boundary.
type buffer struct {
	Content string
	Dot     int
}

func (b *buffer) insert(s string) {
	b.Content = b.Content[:b.Dot] + s + b.Content[b.Dot:]
	b.Dot += len(s)
}

// prevRuneStart returns the start of the rune before Dot, or -1 if Dot is at
// the beginning.
func (b *buffer) prevRuneStart() int {
	if b.Dot == 0 {
		return -1
	}
	_, w := utf8.DecodeLastRuneInString(b.Content[:b.Dot])
	return b.Dot - w
}

// nextRuneEnd returns the end of the rune after Dot, or -1 if Dot is at the
// end.
func (b *buffer) nextRuneEnd() int {
	if b.Dot == len(b.Content) {
		return -1
	}
	_, w := utf8.DecodeRuneInString(b.Content[b.Dot:])
	return b.Dot + w
}

func (b *buffer) moveLeft() bool {
	i := b.prevRuneStart()
	if i < 0 {
		return false
	}
	b.Dot = i
	return true
}

func (b *buffer) moveRight() bool {
	i := b.nextRuneEnd()
	if i < 0 {
		return false
	}
	b.Dot = i
	return true
}

func (b *buffer) deleteLeft() bool {
	i := b.prevRuneStart()
	if i < 0 {
		return false
	}
	b.Content = b.Content[:i] + b.Content[b.Dot:]
	b.Dot = i
	return true
}

func (b *buffer) deleteRight() bool {
	i := b.nextRuneEnd()
	if i < 0 {
		return false
	}
	b.Content = b.Content[:b.Dot] + b.Content[i:]
	return true
}

// killRight removes and returns the text from Dot to the end.
func (b *buffer) killRight() string {
	killed := b.Content[b.Dot:]
	b.Content = b.Content[:b.Dot]
	return killed
}

// killAll removes and returns the whole content.
func (b *buffer) killAll() string {
	killed := b.Content
	b.Content, b.Dot = "", 0
	return killed
}

// killWordLeft removes and returns the word before Dot, along with any
// non-word characters between the word and Dot.
func (b *buffer) killWordLeft() string {
	i := b.Dot
	for i > 0 {
		r, w := utf8.DecodeLastRuneInString(b.Content[:i])
		if isWordRune(r) {
			break
		}
		i -= w
	}
	for i > 0 {
		r, w := utf8.DecodeLastRuneInString(b.Content[:i])
		if !isWordRune(r) {
			break
		}
		i -= w
	}
	killed := b.Content[i:b.Dot]
	b.Content = b.Content[:i] + b.Content[b.Dot:]
	b.Dot = i
	return killed
}

// transpose swaps the rune before Dot with the rune under Dot and moves Dot
// forward. At the end of the content the last two runes are swapped.
func (b *buffer) transpose() bool {
	saved := b.Dot
	if b.Dot == len(b.Content) {
		b.moveLeft()
	}
	left := b.prevRuneStart()
	right := b.nextRuneEnd()
	if left < 0 || right < 0 {
		b.Dot = saved
		return false
	}
	b.Content = b.Content[:left] + b.Content[b.Dot:right] + b.Content[left:b.Dot] + b.Content[right:]
	b.Dot = right
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
