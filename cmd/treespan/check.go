package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"treespan/internal/diag"
	"treespan/internal/testkit"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>",
	Short: "Parse treebank files and verify span invariants",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)

	res, err := loadTrees(cmd, args[0], switchOff)
	if err != nil {
		return err
	}

	bag := diag.NewBag(s.cfg.Output.MaxDiagnostics)
	failed := 0
	for _, c := range res.Corpora {
		for i, root := range c.Trees {
			if !testkit.Report(root, bag, lineSpan(c, c.Lines[i])) {
				failed++
			}
		}
	}
	if err := printDiagnostics(cmd.ErrOrStderr(), bag, res.FileSet, s); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d trees violate span invariants", errReported, failed, res.Trees())
	}
	logf(cmd.OutOrStdout(), s, "ok: %d trees in %d files\n", res.Trees(), len(res.Corpora))
	return nil
}
