package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"treespan/internal/driver"
	"treespan/internal/source"
	"treespan/internal/tree"
	"treespan/internal/treebank"
)

// errReported marks failures whose diagnostics were already printed.
var errReported = errors.New("diagnostics reported")

// loadTrees parses path (file or directory) with the effective settings,
// prints diagnostics and timings, and returns the loaded corpora.
func loadTrees(cmd *cobra.Command, path string, ui autoSwitch) (*driver.LoadResult, error) {
	s := settingsFrom(cmd)
	req := driver.LoadRequest{
		Path:           path,
		Options:        s.treebankOptions(cmd),
		MaxDiagnostics: s.cfg.Output.MaxDiagnostics,
		Timings:        s.timings && s.diagFormat == "json",
	}

	var (
		res *driver.LoadResult
		err error
	)
	useUI := false
	if ui != switchOff && !s.quiet {
		files, isDir, inErr := driver.Inputs(path, req.Options.Extensions)
		useUI = inErr == nil && isDir && len(files) > 0 && ui.resolve(os.Stdout, os.Stderr)
		if useUI {
			res, err = runLoadWithUI(cmd.Context(), "parsing "+path, files, req)
		}
	}
	if !useUI {
		res, err = driver.Load(cmd.Context(), req)
	}
	if res == nil {
		return nil, err
	}

	if perr := printDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet, s); perr != nil {
		return res, perr
	}
	if s.timings && s.diagFormat != "json" {
		printTimings(cmd.ErrOrStderr(), res.Timer)
	}
	if err != nil && res.Bag.HasErrors() {
		return res, fmt.Errorf("%w: %w", errReported, err)
	}
	return res, err
}

// treeAt returns the tree of a 1-based source line in a single-file load.
func treeAt(res *driver.LoadResult, line int) (*treebank.Corpus, *tree.Node, error) {
	if len(res.Corpora) != 1 {
		return nil, nil, fmt.Errorf("expected one treebank file, got %d", len(res.Corpora))
	}
	c := res.Corpora[0]
	root, ok := c.TreeAtLine(line)
	if !ok {
		return nil, nil, fmt.Errorf("%s: no tree on line %d", c.Path, line)
	}
	return c, root, nil
}

// lineSpan is the source span of a 1-based line, or a zero span when the
// file text is not available.
func lineSpan(c *treebank.Corpus, line int) source.Span {
	if c.File == nil {
		return source.Span{}
	}
	sp, _ := c.File.Line(line)
	return sp
}
