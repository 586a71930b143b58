package main

import (
	"fmt"
	"io"

	"treespan/internal/diag"
	"treespan/internal/diagfmt"
	"treespan/internal/source"
)

// printDiagnostics renders bag to out in the configured format. Informational
// diagnostics are hidden by --quiet.
func printDiagnostics(out io.Writer, bag *diag.Bag, fs *source.FileSet, s *settings) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	if s.quiet && !bag.HasWarnings() {
		return nil
	}
	bag.Sort()
	switch s.diagFormat {
	case "json":
		return diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			Max:              s.cfg.Output.MaxDiagnostics,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	case "short":
		if _, err := fmt.Fprintln(out, diag.FormatShort(bag.Items(), fs, false)); err != nil {
			return err
		}
		if n := bag.Dropped(); n > 0 {
			_, err := fmt.Fprintf(out, "%d more diagnostics not shown\n", n)
			return err
		}
		return nil
	default:
		diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:     s.colorErr,
			Context:   0,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
			ShowFixes: true,
		})
		return nil
	}
}

func logf(out io.Writer, s *settings, format string, args ...any) {
	if s.quiet {
		return
	}
	fmt.Fprintf(out, format, args...)
}
