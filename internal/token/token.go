package token

import (
	"treespan/internal/source"
)

// Token represents a single token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsBracket reports whether the token is '(' or ')'.
func (t Token) IsBracket() bool {
	return t.Kind == LParen || t.Kind == RParen
}

// IsWord reports whether the token is a bare word.
func (t Token) IsWord() bool { return t.Kind == Word }
