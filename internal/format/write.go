package format

import "strings"

// treeWriter собирает отступленную скобочную запись: каждая составляющая
// начинается с новой строки на глубине своего родителя плюс один.
type treeWriter struct {
	sb    strings.Builder
	unit  string // один уровень отступа
	depth int
}

func newTreeWriter(opt Options) *treeWriter {
	opt = opt.withDefaults()
	unit := strings.Repeat(" ", opt.IndentWidth)
	if opt.UseTabs {
		unit = "\t"
	}
	return &treeWriter{unit: unit}
}

// line переводит строку (кроме самой первой) и пишет отступ текущей глубины.
func (w *treeWriter) line() {
	if w.sb.Len() > 0 {
		w.sb.WriteByte('\n')
	}
	for range w.depth {
		w.sb.WriteString(w.unit)
	}
}

func (w *treeWriter) open(label string) {
	w.sb.WriteByte('(')
	w.sb.WriteString(label)
	w.depth++
}

func (w *treeWriter) close() {
	w.depth--
	w.sb.WriteByte(')')
}

func (w *treeWriter) text(s string) { w.sb.WriteString(s) }

// String возвращает запись с завершающим переводом строки.
func (w *treeWriter) String() string {
	return w.sb.String() + "\n"
}
