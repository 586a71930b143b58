package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"treespan/internal/diag"
	"treespan/internal/observ"
	"treespan/internal/source"
	"treespan/internal/treebank"
)

// LoadRequest describes one parse run over a file or a directory.
type LoadRequest struct {
	Path           string
	Options        treebank.Options
	MaxDiagnostics int
	Timings        bool
}

type LoadResult struct {
	FileSet *source.FileSet
	Labels  *source.Interner
	Corpora []*treebank.Corpus
	Bag     *diag.Bag
	Timer   *observ.Timer
}

// Trees returns the number of trees across all corpora.
func (r *LoadResult) Trees() int {
	n := 0
	for _, c := range r.Corpora {
		n += c.Len()
	}
	return n
}

// Inputs returns the files a LoadRequest for path would read and whether
// path is a directory.
func Inputs(path string, exts []string) ([]string, bool, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return []string{path}, false, nil
	}
	if len(exts) == 0 {
		exts = treebank.DefaultExtensions
	}
	files, err := treebank.ListFiles(path, exts)
	return files, true, err
}

// Load parses req.Path. The result is returned even on failure so that the
// caller can render the collected diagnostics.
func Load(ctx context.Context, req LoadRequest) (*LoadResult, error) {
	timer := observ.NewTimer()
	res := &LoadResult{
		Bag:    diag.NewBag(req.MaxDiagnostics),
		Labels: source.NewInterner(),
		Timer:  timer,
	}

	opts := req.Options
	opts.Parse.Reporter = diag.Dedup(res.Bag)
	opts.Parse.Labels = res.Labels

	done := timer.Track("stat")
	files, isDir, err := Inputs(req.Path, opts.Extensions)
	done(len(files), "files")
	if err != nil {
		res.FileSet = source.NewFileSet()
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, err.Error()))
		return res, err
	}

	if isDir && len(files) == 0 {
		exts := opts.Extensions
		if len(exts) == 0 {
			exts = treebank.DefaultExtensions
		}
		diag.Emit(opts.Parse.Reporter, diag.New(diag.SevWarning, diag.IONoInputs, source.Span{},
			fmt.Sprintf("no %s files in %s", strings.Join(exts, "|"), req.Path)))
	}

	done = timer.Track("load")
	if isDir {
		res.FileSet = source.NewFileSetWithBase(req.Path)
		opts.FileSet = res.FileSet
		res.Corpora, err = treebank.LoadDir(ctx, req.Path, opts)
	} else {
		res.FileSet = source.NewFileSetWithBase(filepath.Dir(req.Path))
		opts.FileSet = res.FileSet
		var c *treebank.Corpus
		if c, err = treebank.Load(ctx, req.Path, opts); err == nil {
			res.Corpora = []*treebank.Corpus{c}
		}
	}
	done(res.Trees(), "trees")

	if req.Timings {
		appendTimingDiagnostic(res.Bag, timingPayload{Kind: "load", Path: req.Path, Report: timer.Report()})
	}
	return res, err
}
