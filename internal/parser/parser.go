package parser

import (
	"context"
	"fmt"
	"strconv"

	"treespan/internal/diag"
	"treespan/internal/lexer"
	"treespan/internal/source"
	"treespan/internal/token"
	"treespan/internal/trace"
	"treespan/internal/tree"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

const (
	topLabel     = "TOP"
	defaultLabel = "S"
	// virtualName is the path of files created by ParseLine.
	virtualName = "<input>"
)

// Parser: состояние парсера на одну строку
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	lexErr   *lexCapture
	lastSpan source.Span // span последнего съеденного токена
	err      *Error
}

// ParseLine parses a standalone bracketed string.
func ParseLine(line string, opts Options) (*tree.Node, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(virtualName, []byte(line)))
	end, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return nil, fmt.Errorf("line too long: %w", err)
	}
	return ParseRange(context.Background(), file, 0, end, opts)
}

// ParseRange parses the tree stored in [start, end) of file, usually one
// line of a treebank. Leading and trailing whitespace is ignored.
func ParseRange(ctx context.Context, file *source.File, start, end uint32, opts Options) (*tree.Node, error) {
	var loc trace.Loc
	if trace.Enabled(ctx, trace.ScopeLine) {
		loc = trace.Loc{File: file.Path, Line: int(file.Position(start).Line)}
	}
	_, span := trace.Start(ctx, trace.ScopeLine, "parse_line", loc)

	capture := &lexCapture{next: opts.Reporter}
	p := &Parser{
		file:   file,
		opts:   opts,
		lexErr: capture,
	}
	p.lx = lexer.NewRange(file, start, end, lexer.Options{
		Reporter:   capture,
		MaxWordLen: opts.MaxWordLen,
	})
	p.lastSpan = p.lx.EmptySpan()

	root := p.parseTree()
	if p.err != nil {
		span.End(p.err.Diag.Code.ID())
		return nil, p.err
	}
	if span.Enabled() {
		span.Attr("tokens", strconv.Itoa(root.Len()))
	}
	span.End("")
	return root, nil
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) parseTree() *tree.Node {
	first := p.lx.Peek()
	switch first.Kind {
	case token.EOF:
		p.fail(diag.NewError(diag.SynEmptyInput, first.Span, "empty input: expected a bracketed tree"))
		return nil
	case token.Invalid:
		p.failLex(first)
		return nil
	case token.LParen:
	default:
		p.fail(diag.NewError(diag.SynUnexpectedToken, first.Span,
			fmt.Sprintf("expected '(' at start of tree, found %s", describe(first))))
		return nil
	}

	root, toks, ok := p.parseNode(0, true)
	if !ok {
		return nil
	}

	if rest := p.lx.Peek(); rest.Kind != token.EOF {
		if rest.Kind == token.Invalid {
			p.failLex(rest)
			return nil
		}
		p.fail(diag.NewError(diag.SynTrailingInput, rest.Span,
			fmt.Sprintf("unexpected %s after the end of the tree", describe(rest))).
			WithNote(first.Span, "tree starts here"))
		return nil
	}

	if len(toks) == 0 {
		p.fail(diag.NewError(diag.SynEmptyTree, first.Span.Cover(p.lastSpan), "tree contains no words"))
		return nil
	}

	if root.Label() == topLabel && len(root.Children()) == 1 {
		root = root.Children()[0]
	}
	return root.Attach(tree.Sentence(toks))
}

// parseNode разбирает одну скобку, начиная с '('. base: позиция первого
// токена этого поддерева в предложении. Возвращает узел (nil, если слов нет)
// и собственные токены поддерева.
func (p *Parser) parseNode(base int, root bool) (*tree.Node, []tree.Token, bool) {
	open := p.advance()

	var (
		label     string
		hasLabel  bool
		children  []*tree.Node
		toks      []tree.Token
		wordSpan  source.Span
		hasWord   bool
		childSpan source.Span
	)

	setLabel := func(l string) {
		label, hasLabel = l, true
		if root && label == "" {
			label = defaultLabel
		}
	}
	// "( dog)": пробел сразу после '(' означает пустую метку
	if next := p.lx.Peek(); next.Kind == token.Word && next.Span.Start > open.Span.End {
		setLabel("")
	}

	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.LParen:
			if hasWord {
				p.mixed(tok.Span, wordSpan, "child bracket after the word of a leaf")
				return nil, nil, false
			}
			child, ctoks, ok := p.parseNode(base+len(toks), false)
			if !ok {
				return nil, nil, false
			}
			if len(ctoks) > 0 {
				if len(children) == 0 {
					childSpan = tok.Span.Cover(p.lastSpan)
				}
				children = append(children, child)
				toks = append(toks, ctoks...)
			}

		case token.Word:
			if !hasLabel {
				setLabel(stripLabel(p.advance().Text))
				continue
			}
			if len(children) > 0 {
				p.mixed(tok.Span, childSpan, "word mixed with child brackets")
				return nil, nil, false
			}
			wordSpan = p.scanWords()
			toks = append(toks, tree.Token{Word: p.word(wordSpan), Tag: p.opts.label(label)})
			hasWord = true

		case token.RParen:
			p.advance()
			if root && label == "" {
				label = defaultLabel
			}
			switch {
			case hasWord:
				return tree.NewLeaf(base), toks, true
			case len(children) > 0:
				return tree.NewInternal(p.opts.label(label), children), toks, true
			default:
				return nil, nil, true
			}

		case token.EOF:
			at := source.At(p.file.ID, p.lastSpan.End)
			p.fail(diag.NewError(diag.SynUnclosedParen, at, "missing ')': unexpected end of line").
				WithNote(open.Span, "bracket opened here").
				WithFix("insert ')'", diag.FixEdit{Span: at, NewText: ")"}))
			return nil, nil, false

		default:
			p.failLex(tok)
			return nil, nil, false
		}
	}
}

// scanWords съедает подряд идущие слова и возвращает их общий span.
func (p *Parser) scanWords() source.Span {
	sp := p.advance().Span
	for p.at(token.Word) {
		sp = sp.Cover(p.advance().Span)
	}
	return sp
}

// word returns the raw source text of the span, spacing preserved.
func (p *Parser) word(sp source.Span) string {
	w := p.file.Text(sp)
	if p.opts.NormalizeNFC {
		w = norm.NFC.String(w)
	}
	return w
}

func (p *Parser) mixed(at, other source.Span, msg string) {
	p.fail(diag.NewError(diag.SynMixedContent, at, msg).WithNote(other, "conflicting content here"))
}

func (p *Parser) fail(d diag.Diagnostic) {
	if p.err != nil {
		return
	}
	diag.Emit(p.opts.Reporter, d)
	p.err = &Error{Diag: d, Path: p.file.Path, Pos: p.file.Position(d.Primary.Start)}
}

// failLex converts an Invalid token into a parse error. The lexer has
// already reported it.
func (p *Parser) failLex(tok token.Token) {
	if p.err != nil {
		return
	}
	d, ok := p.lexErr.first()
	if !ok {
		d = diag.NewError(diag.LexUnknownChar, tok.Span, fmt.Sprintf("invalid token %q", tok.Text))
		p.fail(d)
		return
	}
	p.err = &Error{Diag: d, Path: p.file.Path, Pos: p.file.Position(d.Primary.Start)}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Word:
		return strconv.Quote(tok.Text)
	case token.RParen:
		return "')'"
	case token.LParen:
		return "'('"
	}
	return tok.Kind.String()
}
