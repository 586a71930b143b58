package source

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Position converts a byte offset into a 1-based line/column pair. The '\n'
// itself belongs to the line it ends.
func (f *File) Position(off uint32) LineCol {
	// число переводов строки строго перед off
	line, _ := slices.BinarySearch(f.LineIdx, off)
	var lineStart uint32
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - lineStart + 1} //nolint:gosec // line <= len(LineIdx)
}

// Text returns the bytes covered by sp, clamped to the content.
func (f *File) Text(sp Span) string {
	end := min(sp.End, f.size())
	if sp.Start >= end {
		return ""
	}
	return string(f.Content[sp.Start:end])
}

// Line returns the span of 1-based line n without its '\n'.
func (f *File) Line(n int) (Span, bool) {
	if n < 1 || n > f.lineCount() {
		return Span{}, false
	}
	var start uint32
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end := f.size()
	if n <= len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	return Span{File: f.ID, Start: start, End: end}, true
}

// Lines returns the span of every line. A trailing newline does not produce
// an extra empty line.
func (f *File) Lines() []Span {
	out := make([]Span, 0, f.lineCount())
	for n := 1; n <= f.lineCount(); n++ {
		sp, _ := f.Line(n)
		out = append(out, sp)
	}
	return out
}

func (f *File) lineCount() int {
	last := -1
	if k := len(f.LineIdx); k > 0 {
		last = int(f.LineIdx[k-1])
	}
	// хвост без завершающего '\n' - ещё одна строка
	if last+1 < len(f.Content) {
		return len(f.LineIdx) + 1
	}
	return len(f.LineIdx)
}

func (f *File) size() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

func buildLineIndex(content []byte) []uint32 {
	var out []uint32
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) //nolint:gosec // bounded by FileSet.Add
		}
	}
	return out
}
