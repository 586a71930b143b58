package diagfmt

import (
	"encoding/json"
	"io"

	"treespan/internal/diag"
	"treespan/internal/source"
)

// JSONReport is the document written by --diag-format=json.
type JSONReport struct {
	Diagnostics []JSONEntry `json:"diagnostics"`
	Count       int         `json:"count"`
	// Omitted: cut by JSONOpts.Max plus dropped by the bag's own limit.
	Omitted int `json:"omitted,omitempty"`
}

type JSONEntry struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *JSONLocation `json:"location,omitempty"`
	Notes    []JSONNote    `json:"notes,omitempty"`
	Fixes    []JSONFix     `json:"fixes,omitempty"`
}

// JSONLocation: байтовый диапазон и, по запросу, line:col обоих концов.
type JSONLocation struct {
	File  string        `json:"file"`
	Start uint32        `json:"start_byte"`
	End   uint32        `json:"end_byte"`
	From  *JSONPosition `json:"from,omitempty"`
	To    *JSONPosition `json:"to,omitempty"`
}

type JSONPosition struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type JSONNote struct {
	Message  string        `json:"message"`
	Location *JSONLocation `json:"location,omitempty"`
}

type JSONFix struct {
	Title string     `json:"title"`
	Edits []JSONEdit `json:"edits,omitempty"`
}

type JSONEdit struct {
	Location *JSONLocation `json:"location,omitempty"`
	NewText  string        `json:"new_text"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(sp source.Span) *JSONLocation {
	f, ok := fileOf(b.fs, sp)
	if !ok {
		return nil
	}
	loc := &JSONLocation{File: formatPath(b.fs, f, b.opts.PathMode), Start: sp.Start, End: sp.End}
	if b.opts.IncludePositions {
		from, to := b.fs.Resolve(sp)
		loc.From = &JSONPosition{Line: from.Line, Col: from.Col}
		loc.To = &JSONPosition{Line: to.Line, Col: to.Col}
	}
	return loc
}

func (b jsonBuilder) entry(d diag.Diagnostic) JSONEntry {
	e := JSONEntry{Severity: d.Severity.String(), Code: d.Code.ID(), Message: d.Message}
	if located(b.fs, d) {
		e.Location = b.location(d.Primary)
	}
	// заметка таймингов и есть полезная нагрузка
	if b.opts.IncludeNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			e.Notes = append(e.Notes, JSONNote{Message: n.Msg, Location: b.location(n.Span)})
		}
	}
	if b.opts.IncludeFixes {
		for _, fx := range d.Fixes {
			jf := JSONFix{Title: fx.Title}
			for _, ed := range fx.Edits {
				jf.Edits = append(jf.Edits, JSONEdit{Location: b.location(ed.Span), NewText: ed.NewText})
			}
			e.Fixes = append(e.Fixes, jf)
		}
	}
	return e
}

// BuildJSON converts the bag into a JSONReport without encoding it.
func BuildJSON(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) JSONReport {
	items := bag.Items()
	keep := len(items)
	if opts.Max > 0 {
		keep = min(keep, opts.Max)
	}
	b := jsonBuilder{fs: fs, opts: opts}
	r := JSONReport{
		Diagnostics: make([]JSONEntry, 0, keep),
		Count:       keep,
		Omitted:     len(items) - keep + bag.Dropped(),
	}
	for _, d := range items[:keep] {
		r.Diagnostics = append(r.Diagnostics, b.entry(d))
	}
	return r
}

// JSON writes BuildJSON's report as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSON(bag, fs, opts))
}
