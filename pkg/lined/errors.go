package lined

import (
	"errors"

	"src.lined.sh/pkg/strutil"
)

var (
	// ErrResourceExhausted is returned by Init when the backend or its side
	// data cannot be allocated. No session is created.
	ErrResourceExhausted = errors.New("resource exhausted")
	// ErrInvalidState is returned when an operation other than End is invoked
	// on a session that is not active.
	ErrInvalidState = errors.New("session not active")
	// ErrBackendUnsupported is returned when an operation is not implemented
	// by the backend of the session.
	ErrBackendUnsupported = errors.New("operation not supported by backend")
)

// ParseError is returned by Tokenize for malformed input, such as an
// unterminated quote.
type ParseError = strutil.ParseError
