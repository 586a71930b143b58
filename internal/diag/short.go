package diag

import (
	"fmt"
	"sort"
	"strings"

	"treespan/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
	located  bool
}

// FormatShort renders diagnostics one per line as
// "path:line:col: SEV CODE: message", sorted by position. Notes are appended
// as indented lines when includeNotes is set.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = append(rendered, toShort(d.Severity, d.Code, d.Primary, d.Message, fs))
		if includeNotes {
			for _, n := range d.Notes {
				rendered = append(rendered, toShort(SevInfo, d.Code, n.Span, "note: "+n.Msg, fs))
			}
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		return di.Column < dj.Column
	})

	var sb strings.Builder
	for i, r := range rendered {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if !r.located {
			fmt.Fprintf(&sb, "%s %s: %s", r.Severity, r.Code, r.Message)
			continue
		}
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s", r.Path, r.Line, r.Column, r.Severity, r.Code, r.Message)
	}
	return sb.String()
}

func toShort(sev Severity, code Code, sp source.Span, msg string, fs *source.FileSet) shortDiagnostic {
	if int(sp.File) >= fs.Len() {
		return shortDiagnostic{Severity: sev.String(), Code: code.ID(), Message: msg}
	}
	f := fs.Get(sp.File)
	pos := f.Position(sp.Start)
	return shortDiagnostic{
		Severity: sev.String(),
		Code:     code.ID(),
		Path:     f.Path,
		Line:     pos.Line,
		Column:   pos.Col,
		Message:  msg,
		located:  true,
	}
}
