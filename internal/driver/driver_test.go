package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"treespan/internal/diag"
	"treespan/internal/parser"
	"treespan/internal/token"
	"treespan/internal/treebank"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.mrg", "(A a)\n(B\x00)\n")
	res, err := Tokenize(path, 10, 0)
	require.NoError(t, err)

	kinds := make([]token.Kind, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{
		token.LParen, token.Word, token.Word, token.RParen,
		token.LParen, token.Word, token.Invalid, token.RParen, token.EOF,
	}, kinds)
	require.True(t, res.Bag.HasErrors())
	require.Equal(t, diag.LexUnknownChar, res.Bag.Items()[0].Code)
}

func TestLoadFileWithTimings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.mrg", "(S (NP (DT a) (NN b)))\n\n(NP-SBJ (NN c))\n")
	res, err := Load(context.Background(), LoadRequest{
		Path:           path,
		Options:        treebank.DefaultOptions(),
		MaxDiagnostics: 10,
		Timings:        true,
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.Trees())
	require.Equal(t, []int{1, 3}, res.Corpora[0].Lines)
	require.Equal(t, "NP", res.Corpora[0].Trees[1].Label())

	items := res.Bag.Items()
	require.Len(t, items, 1)
	require.Equal(t, diag.ObsTimings, items[0].Code)
	require.Len(t, items[0].Notes, 1)
	require.Contains(t, items[0].Notes[0].Msg, `"kind":"load"`)
}

func TestLoadDirStopsAtBrokenFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mrg", "(A a)\n")
	writeFile(t, dir, "b.mrg", "(B b)\n(B (C c)\n")
	writeFile(t, dir, "skip.json", "{}")

	res, err := Load(context.Background(), LoadRequest{
		Path:           dir,
		Options:        treebank.DefaultOptions(),
		MaxDiagnostics: 10,
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, parser.ErrMalformedBracketing))
	var lineErr *treebank.LineError
	require.ErrorAs(t, err, &lineErr)
	require.Equal(t, 2, lineErr.Line)

	require.Len(t, res.Corpora, 1)
	require.True(t, res.Bag.HasErrors())
	require.Equal(t, diag.SynUnclosedParen, res.Bag.Items()[0].Code)
}

func TestLoadMissingPath(t *testing.T) {
	res, err := Load(context.Background(), LoadRequest{
		Path:           filepath.Join(t.TempDir(), "missing.mrg"),
		Options:        treebank.DefaultOptions(),
		MaxDiagnostics: 10,
	})
	require.Error(t, err)
	require.NotNil(t, res.FileSet)
	require.Equal(t, diag.IOLoadFileError, res.Bag.Items()[0].Code)
}

func TestInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.tree", "(A a)")
	writeFile(t, dir, "sub/a.mrg", "(A a)")
	writeFile(t, dir, "c.go", "package c")

	files, isDir, err := Inputs(dir, nil)
	require.NoError(t, err)
	require.True(t, isDir)
	require.Equal(t, []string{filepath.Join(dir, "b.tree"), filepath.Join(dir, "sub", "a.mrg")}, files)
}

func TestRepair(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.mrg", "(S (NP (DT a)\n\n(A a)\n(A a) (B b)")
	res, err := Repair(context.Background(), RepairRequest{Path: path, DryRun: true})
	require.NoError(t, err)
	require.False(t, res.Written)
	require.Equal(t, "(S (NP (DT a)))\n\n(A a)\n(A a) (B b)", string(res.Content))
	require.Len(t, res.Repaired, 1)
	require.Equal(t, 1, res.Repaired[0].Line)
	require.Equal(t, []string{"insert ')'", "insert ')'"}, res.Repaired[0].Fixes)
	require.Len(t, res.Failed, 1)
	require.Equal(t, 4, res.Failed[0].Line)
	require.Equal(t, diag.SynTrailingInput, res.Failed[0].Diag.Code)

	res, err = Repair(context.Background(), RepairRequest{Path: path})
	require.NoError(t, err)
	require.True(t, res.Written)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(res.Content), string(data))
}

func TestRepairGivesUpAfterMaxRounds(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.mrg", "(A (B (C c)\n")
	res, err := Repair(context.Background(), RepairRequest{Path: path, MaxRounds: 1, DryRun: true})
	require.NoError(t, err)
	require.Len(t, res.Failed, 1)
	require.Equal(t, "(A (B (C c))\n", string(res.Content))
}

func TestLoadEmptyDirWarns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", "(A a)\n")
	res, err := Load(context.Background(), LoadRequest{
		Path:           dir,
		Options:        treebank.DefaultOptions(),
		MaxDiagnostics: 10,
	})
	require.NoError(t, err)
	require.Empty(t, res.Corpora)
	require.False(t, res.Bag.HasErrors())
	require.True(t, res.Bag.HasWarnings())
	require.Equal(t, diag.IONoInputs, res.Bag.Items()[0].Code)
}

func TestRepairKeepsCRLFAndBOM(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.mrg", "\xEF\xBB\xBF(A a)\r\n(S (NP (DT a)\r\n")
	res, err := Repair(context.Background(), RepairRequest{Path: path})
	require.NoError(t, err)
	require.True(t, res.Written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "\xEF\xBB\xBF(A a)\r\n(S (NP (DT a)))\r\n", string(data))
}
