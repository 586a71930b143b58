package treebank

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"treespan/internal/diag"
	"treespan/internal/parser"
	"treespan/internal/treecache"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) OnEvent(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func TestLoadKeepsFileOrder(t *testing.T) {
	var sb strings.Builder
	for i := range 200 {
		fmt.Fprintf(&sb, "(S (NN w%d) (VB v))\n", i)
		if i%50 == 0 {
			sb.WriteString("   \n")
		}
	}
	path := writeFile(t, t.TempDir(), "big.mrg", sb.String())

	opts := DefaultOptions()
	opts.Jobs = 8
	c, err := Load(context.Background(), path, opts)
	require.NoError(t, err)
	require.Equal(t, 200, c.Len())
	for i, root := range c.Trees {
		require.Equal(t, fmt.Sprintf("w%d", i), root.Sentence()[0].Word)
	}
	// blank lines shift the source line numbers
	require.Equal(t, 1, c.Lines[0])
	require.Equal(t, 3, c.Lines[1])

	root, ok := c.TreeAtLine(3)
	require.True(t, ok)
	require.Equal(t, "w1", root.Sentence()[0].Word)
}

func TestLoadFailsOnLowestBadLine(t *testing.T) {
	var sb strings.Builder
	for i := range 100 {
		switch i {
		case 37, 60, 99:
			sb.WriteString("(S (NN broken)\n")
		default:
			sb.WriteString("(S (NN ok))\n")
		}
	}
	path := writeFile(t, t.TempDir(), "bad.mrg", sb.String())

	for range 5 {
		bag := diag.NewBag(100)
		opts := DefaultOptions()
		opts.Jobs = 16
		opts.Parse = parser.Options{Reporter: bag}

		c, err := Load(context.Background(), path, opts)
		require.Nil(t, c)
		var lerr *LineError
		require.True(t, errors.As(err, &lerr))
		require.Equal(t, 38, lerr.Line)
		require.ErrorIs(t, err, parser.ErrMalformedBracketing)

		// only the winning line is reported
		require.Equal(t, 1, bag.Len())
		require.Equal(t, diag.SynUnclosedParen, bag.Items()[0].Code)
	}
}

func TestLoadBlankLinesWithoutSkip(t *testing.T) {
	path := writeFile(t, t.TempDir(), "blank.mrg", "(A a)\n\n(B b)\n")
	opts := DefaultOptions()
	opts.SkipBlank = false
	_, err := Load(context.Background(), path, opts)

	var lerr *LineError
	require.True(t, errors.As(err, &lerr))
	require.Equal(t, 2, lerr.Line)
	var perr *parser.Error
	require.True(t, errors.As(err, &perr))
	require.Equal(t, diag.SynEmptyInput, perr.Code())
}

func TestLoadMissingFile(t *testing.T) {
	bag := diag.NewBag(4)
	opts := DefaultOptions()
	opts.Parse.Reporter = bag
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.mrg"), opts)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Equal(t, diag.IOLoadFileError, bag.Items()[0].Code)
}

func TestLoadCancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.mrg", strings.Repeat("(A a)\n", 10))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, path, DefaultOptions())
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadDirSortedWithProgress(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.mrg", "(B b)\n")
	writeFile(t, dir, "a.mrg", "(A a)\n(A2 a2)\n")
	writeFile(t, dir, "sub/c.tree", "(C c)\n")
	writeFile(t, dir, "notes.md", "# not a treebank\n")

	sink := &recordSink{}
	opts := DefaultOptions()
	opts.Progress = sink
	corpora, err := LoadDir(context.Background(), dir, opts)
	require.NoError(t, err)
	require.Len(t, corpora, 3)
	require.Equal(t, "a.mrg", filepath.Base(corpora[0].Path))
	require.Equal(t, "b.mrg", filepath.Base(corpora[1].Path))
	require.Equal(t, "c.tree", filepath.Base(corpora[2].Path))

	var done int
	for _, e := range sink.events {
		if e.Status == StatusDone {
			done++
		}
	}
	require.Equal(t, 3, done)
	require.Equal(t, StatusQueued, sink.events[0].Status)

	stats := Summarize(corpora...)
	require.Equal(t, 3, stats.Files)
	require.Equal(t, 4, stats.Trees)
	require.Equal(t, 4, stats.Tokens)
}

func TestLoadUsesCache(t *testing.T) {
	cache, err := treecache.OpenAt(t.TempDir())
	require.NoError(t, err)
	path := writeFile(t, t.TempDir(), "bank.mrg", "(S (NP (DT the) (NN dog)))\n\n(S (VB go))\n")

	opts := DefaultOptions()
	opts.Cache = cache
	first, err := Load(context.Background(), path, opts)
	require.NoError(t, err)
	require.False(t, first.Cached)

	second, err := Load(context.Background(), path, opts)
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, first.Lines, second.Lines)
	require.Len(t, second.Trees, 2)
	for i := range first.Trees {
		require.Equal(t, first.Trees[i].String(), second.Trees[i].String())
	}
}

func TestTopHistogram(t *testing.T) {
	got := Top(map[string]int{"NP": 3, "VP": 3, "S": 5, "PP": 1}, 3)
	require.Equal(t, []Count{{"S", 5}, {"NP", 3}, {"VP", 3}}, got)
}
