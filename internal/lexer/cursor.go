package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"treespan/internal/source"
)

// window is a byte cursor over [off, end) of one file, usually one treebank
// line. Reads past end yield 0.
type window struct {
	src  []byte
	file source.FileID
	off  uint32
	end  uint32
}

// newWindow clamps start and end to the file content.
func newWindow(f *source.File, start, end uint32) window {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	end = min(end, n)
	return window{src: f.Content, file: f.ID, off: min(start, end), end: end}
}

func (w *window) done() bool { return w.off >= w.end }

func (w *window) peek() byte {
	if w.done() {
		return 0
	}
	return w.src[w.off]
}

func (w *window) advance() {
	if !w.done() {
		w.off++
	}
}

// skipWhile съедает байты, пока ok истинно, и возвращает их число.
func (w *window) skipWhile(ok func(byte) bool) int {
	from := w.off
	for w.off < w.end && ok(w.src[w.off]) {
		w.off++
	}
	return int(w.off - from)
}

// drain переносит курсор в конец окна.
func (w *window) drain() { w.off = w.end }

func (w *window) spanFrom(start uint32) source.Span {
	return source.Span{File: w.file, Start: start, End: w.off}
}

func (w *window) text(sp source.Span) string {
	return string(w.src[sp.Start:sp.End])
}
