package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"treespan/internal/diag"
	"treespan/internal/source"
)

func edit(start, end uint32, text string) diag.FixEdit {
	return diag.FixEdit{Span: source.Span{Start: start, End: end}, NewText: text}
}

func TestApplyEditsOrderIndependent(t *testing.T) {
	content := []byte("(NP (DT a) (NN b)")
	got, err := ApplyEdits(content, []diag.FixEdit{
		edit(17, 17, ")"),
		edit(5, 7, "JJ"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "(NP (JJ a) (NN b))" {
		t.Fatalf("got %q", got)
	}
	if string(content) != "(NP (DT a) (NN b)" {
		t.Fatal("input must not be modified")
	}
}

func TestApplyEditsConflict(t *testing.T) {
	_, err := ApplyEdits([]byte("abcdef"), []diag.FixEdit{edit(1, 4, "x"), edit(3, 5, "y")})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	// две вставки в одну точку не конфликтуют
	got, err := ApplyEdits([]byte("ab"), []diag.FixEdit{edit(2, 2, ")"), edit(2, 2, ")")})
	if err != nil || string(got) != "ab))" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestApplySkipsConflictingFix(t *testing.T) {
	content := []byte("(A a) junk")
	fixes := []diag.Fix{
		{Title: "delete junk", Edits: []diag.FixEdit{edit(5, 10, "")}},
		{Title: "replace junk", Edits: []diag.FixEdit{edit(6, 10, "x")}},
		{Title: "out of range", Edits: []diag.FixEdit{edit(20, 21, "")}},
		{Title: "empty"},
	}
	out, applied, skipped := Apply(content, fixes)
	if string(out) != "(A a)" {
		t.Fatalf("got %q", out)
	}
	if len(applied) != 1 || applied[0].Title != "delete junk" {
		t.Fatalf("applied = %+v", applied)
	}
	if len(skipped) != 3 || skipped[0].Reason != "conflicts with previously applied edits" {
		t.Fatalf("skipped = %+v", skipped)
	}
}

func TestWriteFileKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mrg")
	if err := os.WriteFile(path, []byte("(A a"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("(A a)")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "(A a)" || info.Mode().Perm() != 0o600 {
		t.Fatalf("content %q, mode %v", data, info.Mode())
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temporary file left behind: %v", entries)
	}
}
