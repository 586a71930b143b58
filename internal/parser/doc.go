// Package parser reads one bracketed constituency tree per call.
//
// Grammar:
//
//	tree := '(' label (tree+ | word+) ')'
//
// The parser is fail-fast: the first problem aborts the line, is reported to
// Options.Reporter and is returned as *Error wrapping ErrMalformedBracketing.
// No partial tree is ever returned.
package parser
