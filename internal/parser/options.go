package parser

import (
	"treespan/internal/diag"
	"treespan/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil
	// NormalizeNFC applies Unicode NFC normalization to every leaf word.
	NormalizeNFC bool
	// MaxWordLen bounds one word in bytes; 0 uses the lexer default.
	MaxWordLen int
	// Labels, when set, interns labels and tags across trees.
	Labels *source.Interner
}

func (o Options) label(s string) string {
	if o.Labels == nil {
		return s
	}
	return o.Labels.Canonical(s)
}
