package lexer

import (
	"treespan/internal/diag"
	"treespan/internal/source"
)

// DefaultMaxWordLen bounds a single word when Options.MaxWordLen is zero.
const DefaultMaxWordLen = 4096

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	// MaxWordLen limits the byte length of one word; 0 means DefaultMaxWordLen.
	MaxWordLen int
}

func (o Options) maxWordLen() int {
	if o.MaxWordLen <= 0 {
		return DefaultMaxWordLen
	}
	return o.MaxWordLen
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	diag.Emit(lx.opts.Reporter, diag.New(sev, code, sp, msg))
}
