package lexer

import (
	"fmt"
	"unicode/utf8"

	"treespan/internal/diag"
	"treespan/internal/token"
)

// scanWord читает максимальную последовательность байт без пробелов и скобок.
func (lx *Lexer) scanWord() token.Token {
	start := lx.win.off
	if n, limit := lx.win.skipWhile(isWordByte), lx.opts.maxWordLen(); n > limit {
		return lx.tooLong(start, limit)
	}
	tok := lx.emit(token.Word, start)
	if !utf8.ValidString(tok.Text) {
		lx.report(diag.LexBadEncoding, diag.SevWarning, tok.Span, "word is not valid UTF-8")
	}
	return tok
}

// tooLong reports the oversized word and drains the range: nothing after it
// can be tokenized reliably.
func (lx *Lexer) tooLong(start uint32, limit int) token.Token {
	tok := lx.emit(token.Invalid, start)
	lx.report(diag.LexTokenTooLong, diag.SevError, tok.Span,
		fmt.Sprintf("word of %d bytes exceeds the limit of %d", len(tok.Text), limit))
	lx.win.drain()
	return tok
}
