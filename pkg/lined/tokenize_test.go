package lined

import (
	"errors"
	"testing"

	. "src.lined.sh/pkg/tt"
)

func TestTokenize(t *testing.T) {
	Test(t, Fn("Tokenize", Tokenize), Table{
		Args("a b c").Rets([]string{"a", "b", "c"}, nil),
		Args("").Rets([]string{}, nil),
		Args(`a "b c" d`).Rets([]string{"a", "b c", "d"}, nil),
	})

	_, err := Tokenize(`a "b`)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Tokenize of unterminated quote -> %v, want *ParseError", err)
	}
}
