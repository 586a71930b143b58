package diagfmt

import (
	"path/filepath"
	"strings"

	"treespan/internal/diag"
	"treespan/internal/source"
)

// fileOf returns the file of span, if the set knows it.
func fileOf(fs *source.FileSet, sp source.Span) (*source.File, bool) {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil, false
	}
	return fs.Get(sp.File), true
}

// located reports whether a diagnostic points into a source file. I/O
// diagnostics are raised before a file exists and carry a zero span.
func located(fs *source.FileSet, d diag.Diagnostic) bool {
	if d.Code >= diag.IOLoadFileError && d.Code < diag.ObsInfo && d.Primary == (source.Span{}) {
		return false
	}
	_, ok := fileOf(fs, d.Primary)
	return ok
}

// formatPath renders f.Path for a diagnostic location.
func formatPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if rel, ok := relativeTo(f.Path, fs.BaseDir()); ok {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeAuto:
		// длинные абсолютные пути сворачиваем до имени файла
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

// relativeTo returns target relative to base. A path that escapes base comes
// back absolute rather than as a chain of "../".
func relativeTo(target, base string) (string, bool) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", false
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(absTarget), true
	}
	return filepath.ToSlash(rel), true
}
