package strutil

// ChopLineEnding removes a trailing "\n" and then a trailing "\r" from s. It
// returns s if it doesn't end with either.
func ChopLineEnding(s string) string {
	s = ChopTerminator(s, '\n')
	return ChopTerminator(s, '\r')
}

// ChopTerminator removes a specific terminator byte from the end of s. It
// returns s if it doesn't end with the specified terminator.
func ChopTerminator(s string, terminator byte) string {
	if len(s) >= 1 && s[len(s)-1] == terminator {
		return s[:len(s)-1]
	}
	return s
}
