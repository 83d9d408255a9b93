package lined

import "src.lined.sh/pkg/strutil"

// Tokenize splits s into shell-like words. It does not need a session. A
// blank input yields an empty slice; an unterminated quote yields a
// *ParseError.
func Tokenize(s string) ([]string, error) {
	return strutil.Tokenize(s)
}
