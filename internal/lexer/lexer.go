package lexer

import (
	"treespan/internal/diag"
	"treespan/internal/source"
	"treespan/internal/token"
)

type Lexer struct {
	file *source.File
	win  window
	opts Options
	look *token.Token // 1 элементный буфер для токена
}

// New creates a lexer over the whole file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		win:  newWindow(file, 0, ^uint32(0)),
		opts: opts,
	}
}

// NewRange creates a lexer over the byte range [start, end) of file,
// typically one line of a treebank.
func NewRange(file *source.File, start, end uint32, opts Options) *Lexer {
	return &Lexer{
		file: file,
		win:  newWindow(file, start, end),
		opts: opts,
	}
}

// Next возвращает следующий значимый токен; пробелы пропускаются.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.win.skipWhile(isSpace)

	if lx.win.done() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
		}
	}

	start := lx.win.off
	switch ch := lx.win.peek(); {
	case ch == '(':
		lx.win.advance()
		return lx.emit(token.LParen, start)
	case ch == ')':
		lx.win.advance()
		return lx.emit(token.RParen, start)
	case ch == 0:
		lx.win.advance()
		tok := lx.emit(token.Invalid, start)
		lx.report(diag.LexUnknownChar, diag.SevError, tok.Span, "unexpected NUL byte")
		return tok
	default:
		return lx.scanWord()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-width span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.At(lx.file.ID, lx.win.off)
}

func (lx *Lexer) emit(kind token.Kind, start uint32) token.Token {
	sp := lx.win.spanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.win.text(sp)}
}
