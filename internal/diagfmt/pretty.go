package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"treespan/internal/diag"
	"treespan/internal/source"
)

type palette struct {
	err, warn, info, path, caret, note, fix *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:   mk(color.FgRed, color.Bold),
		warn:  mk(color.FgYellow, color.Bold),
		info:  mk(color.FgCyan, color.Bold),
		path:  mk(color.Bold),
		caret: mk(color.FgGreen, color.Bold),
		note:  mk(color.FgBlue),
		fix:   mk(color.FgMagenta),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "\n%d more diagnostics not shown\n", n)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID())
	if !located(fs, d) {
		fmt.Fprintf(w, "%s: %s\n", sev, d.Message)
		return
	}
	f := fs.Get(d.Primary.File)
	pos := f.Position(d.Primary.Start)
	loc := pal.path.Sprintf("%s:%d:%d", formatPath(fs, f, opts.PathMode), pos.Line, pos.Col)
	fmt.Fprintf(w, "%s: %s: %s\n", loc, sev, d.Message)
	writeSnippet(w, f, d.Primary, int(opts.Context), pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf, ok := fileOf(fs, n.Span)
			if !ok {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
				continue
			}
			np := nf.Position(n.Span.Start)
			fmt.Fprintf(w, "  %s %s (%d:%d)\n", pal.note.Sprint("note:"), n.Msg, np.Line, np.Col)
		}
	}
	if opts.ShowFixes {
		for _, fx := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprint("fix:"), fx.Title)
		}
	}
}

// writeSnippet печатает строку с ошибкой (и context строк вокруг) и каретку.
func writeSnippet(w io.Writer, f *source.File, sp source.Span, context int, pal palette) {
	start := f.Position(sp.Start)
	first := max(1, int(start.Line)-context)
	last := int(start.Line) + context
	gutter := len(fmt.Sprint(last))

	lines := f.Lines()
	for n := first; n <= last && n <= len(lines); n++ {
		text := expandTabs(f.Text(lines[n-1]))
		fmt.Fprintf(w, " %*d | %s\n", gutter, n, text)
		if n != int(start.Line) {
			continue
		}
		lineSpan := lines[n-1]
		prefix := expandTabs(f.Text(source.Span{File: f.ID, Start: lineSpan.Start, End: sp.Start}))
		end := min(sp.End, lineSpan.End)
		underlined := f.Text(source.Span{File: f.ID, Start: sp.Start, End: end})
		width := max(1, runewidth.StringWidth(expandTabs(underlined)))
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %*s | %s%s\n", gutter, "", strings.Repeat(" ", runewidth.StringWidth(prefix)), pal.caret.Sprint(marker))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
