package diagfmt

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"treespan/internal/diag"
	"treespan/internal/source"
)

func newBag(t *testing.T, fs *source.FileSet, id source.FileID) *diag.Bag {
	t.Helper()
	bag := diag.NewBag(10)
	d := diag.NewError(diag.SynUnclosedParen, source.Span{File: id, Start: 3, End: 4}, "missing ')'").
		WithNote(source.Span{File: id, Start: 3, End: 4}, "bracket opened here").
		WithFix("insert ')'", diag.FixEdit{Span: source.At(id, 13), NewText: ")"})
	bag.Add(d)
	return bag
}

func TestPrettyLocationAndCaret(t *testing.T) {
	fs := source.NewFileSetWithBase("/work")
	id := fs.AddVirtual("a.mrg", []byte("(S (NP (DT a)\n"))
	bag := newBag(t, fs, id)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "a.mrg:1:4: ERROR SYN2006: missing ')'" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != " 1 | (S (NP (DT a)" {
		t.Errorf("source line = %q", lines[1])
	}
	if lines[2] != "   |    ^" {
		t.Errorf("caret line = %q", lines[2])
	}
	if lines[3] != "  note: bracket opened here (1:4)" {
		t.Errorf("note = %q", lines[3])
	}
	if lines[4] != "  fix: insert ')'" {
		t.Errorf("fix = %q", lines[4])
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	content := "(NN 日本) x"
	id := fs.AddVirtual("w.mrg", []byte(content))
	start := uint32(strings.Index(content, "x"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynTrailingInput, source.Span{File: id, Start: start, End: start + 1}, "trailing input"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	// "(NN 日本) " occupies 10 cells
	if lines[2] != "   | "+strings.Repeat(" ", 10)+"^" {
		t.Errorf("caret line = %q", lines[2])
	}
}

func TestPrettyWithoutLocation(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "open x.mrg: no such file"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if got := buf.String(); got != "ERROR IO4001: open x.mrg: no such file\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/work")
	id := fs.AddVirtual("/work/sub/a.mrg", []byte("(A a)"))
	f := fs.Get(id)

	cases := []struct {
		mode PathMode
		want string
	}{
		{PathModeRelative, "sub/a.mrg"},
		{PathModeBasename, "a.mrg"},
		{PathModeAuto, "/work/sub/a.mrg"},
	}
	for _, tc := range cases {
		if got := formatPath(fs, f, tc.mode); got != tc.want {
			t.Errorf("mode %d: got %q, want %q", tc.mode, got, tc.want)
		}
	}
}

func TestRelativeToOutsideBase(t *testing.T) {
	base := t.TempDir()
	got, ok := relativeTo(filepath.Join(filepath.Dir(base), "other", "x.mrg"), base)
	if !ok || !filepath.IsAbs(filepath.FromSlash(got)) {
		t.Errorf("expected absolute path, got %q", got)
	}

	got, ok = relativeTo(filepath.Join(base, "wsj", "00.mrg"), base)
	if !ok || got != "wsj/00.mrg" {
		t.Errorf("got %q, want wsj/00.mrg", got)
	}
}

func TestPrettyReportsDroppedDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("d.mrg", []byte(")))"))
	bag := diag.NewBag(1)
	for i := range uint32(3) {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: i, End: i + 1}, "unexpected ')'"))
	}

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.HasSuffix(buf.String(), "\n2 more diagnostics not shown\n") {
		t.Fatalf("got:\n%s", buf.String())
	}
}
