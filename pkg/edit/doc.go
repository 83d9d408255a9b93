// Package edit implements the in-process line editor used by the full
// backend.
//
// The editor reads keys from a terminal (or any file), edits a single line
// with emacs-style functions that can be rebound by name, keeps a bounded
// history and understands a small set of editline configuration commands,
// which can also be loaded from a startup file.
package edit
