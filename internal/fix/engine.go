// Package fix applies the text edits carried by diagnostics.
package fix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"treespan/internal/diag"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ErrConflict is returned by ApplyEdits when two edits overlap.
var ErrConflict = errors.New("overlapping edits")

// Applied records a successfully applied fix.
type Applied struct {
	Title     string
	EditCount int
}

// Skipped captures a fix that could not be applied, with a reason.
type Skipped struct {
	Title  string
	Reason string
}

// Apply applies fixes to content in order. A fix whose edits conflict with
// an already applied one, or fall outside content, is skipped as a whole.
// Edit spans always refer to the original content.
func Apply(content []byte, fixes []diag.Fix) ([]byte, []Applied, []Skipped) {
	var (
		accepted []diag.FixEdit
		applied  []Applied
		skipped  []Skipped
	)
	for _, f := range fixes {
		if len(f.Edits) == 0 {
			skipped = append(skipped, Skipped{Title: f.Title, Reason: "fix has no edits"})
			continue
		}
		if reason := check(content, accepted, f.Edits); reason != "" {
			skipped = append(skipped, Skipped{Title: f.Title, Reason: reason})
			continue
		}
		accepted = append(accepted, f.Edits...)
		applied = append(applied, Applied{Title: f.Title, EditCount: len(f.Edits)})
	}
	if len(accepted) == 0 {
		return append([]byte(nil), content...), applied, skipped
	}
	out, err := ApplyEdits(content, accepted)
	if err != nil {
		// check уже отсеял конфликты
		panic(fmt.Sprintf("fix: %v", err))
	}
	return out, applied, skipped
}

func check(content []byte, accepted, edits []diag.FixEdit) string {
	for i, e := range edits {
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(content) {
			return "edit span out of range"
		}
		for _, prev := range accepted {
			if spansConflict(prev, e) {
				return "conflicts with previously applied edits"
			}
		}
		for _, other := range edits[:i] {
			if spansConflict(other, e) {
				return "fix contains overlapping edits"
			}
		}
	}
	return ""
}

// ApplyEdits returns a copy of content with edits applied. Edits are given in
// original coordinates, in any order.
func ApplyEdits(content []byte, edits []diag.FixEdit) ([]byte, error) {
	sorted := append([]diag.FixEdit(nil), edits...)
	// с конца, чтобы смещения ранних правок не съезжали
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start == sorted[j].Span.Start {
			return sorted[i].Span.End > sorted[j].Span.End
		}
		return sorted[i].Span.Start > sorted[j].Span.Start
	})
	for i := 1; i < len(sorted); i++ {
		if spansConflict(sorted[i-1], sorted[i]) {
			return nil, fmt.Errorf("%w at %d..%d", ErrConflict, sorted[i].Span.Start, sorted[i].Span.End)
		}
	}

	working := append([]byte(nil), content...)
	for _, edit := range sorted {
		start, end := int(edit.Span.Start), int(edit.Span.End)
		if end < start || end > len(working) {
			return nil, fmt.Errorf("fix: edit span %d..%d out of range", start, end)
		}
		suffix := append([]byte(nil), working[end:]...)
		working = append(append(working[:start], edit.NewText...), suffix...)
	}
	return working, nil
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// never conflict. A zero-length edit conflicts with a non-zero span if its
// position is within that span (Start <= pos < End).
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// WriteFile replaces path with content, keeping the file mode. The write goes
// through a temporary file in the same directory.
func WriteFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".treespan-fix-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // после rename файла уже нет
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
