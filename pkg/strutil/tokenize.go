package strutil

import (
	"fmt"

	"github.com/flynn/go-shlex"
)

// ParseError is returned by Tokenize when the input is malformed, for example
// when a quote is not terminated.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot tokenize %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Tokenize splits s into words following shell quoting and escaping rules.
// It returns an empty slice for a blank input.
func Tokenize(s string) ([]string, error) {
	words, err := shlex.Split(s)
	if err != nil {
		return nil, &ParseError{s, err}
	}
	if words == nil {
		words = []string{}
	}
	return words, nil
}
