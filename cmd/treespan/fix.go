package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"treespan/internal/driver"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file>",
	Short: "Close unbalanced brackets in a treebank file",
	Long: `Reparse every line and apply the suggested fixes (for now, inserting
missing ')') until the line parses. Lines that cannot be repaired are reported
and left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "print the repaired content instead of writing the file")
	fixCmd.Flags().Int("max-rounds", driver.DefaultRepairRounds, "maximum fix rounds per line")
}

func runFix(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	rounds, err := cmd.Flags().GetInt("max-rounds")
	if err != nil {
		return fmt.Errorf("failed to get max-rounds flag: %w", err)
	}

	res, err := driver.Repair(cmd.Context(), driver.RepairRequest{
		Path:      args[0],
		Parse:     s.cfg.ParseOptions(),
		MaxRounds: rounds,
		DryRun:    dryRun,
	})
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	for _, r := range res.Repaired {
		logf(errOut, s, "%s:%d: %s\n", res.Path, r.Line, summarizeFixes(r.Fixes))
	}
	for _, f := range res.Failed {
		fmt.Fprintf(errOut, "%s:%d:%d: %s %s: %s\n", res.Path, f.Line, f.Diag.Primary.Start+1,
			f.Diag.Severity, f.Diag.Code.ID(), f.Diag.Message)
	}
	if dryRun {
		if _, err := cmd.OutOrStdout().Write(res.Content); err != nil {
			return err
		}
	} else if res.Written {
		logf(cmd.OutOrStdout(), s, "fixed %d lines in %s\n", len(res.Repaired), res.Path)
	} else if len(res.Failed) == 0 {
		logf(cmd.OutOrStdout(), s, "nothing to fix in %s\n", res.Path)
	}
	if len(res.Failed) > 0 {
		return fmt.Errorf("%w: %d lines could not be repaired", errReported, len(res.Failed))
	}
	return nil
}

// summarizeFixes сворачивает повторы: "insert ')' (x2)".
func summarizeFixes(titles []string) string {
	var parts []string
	for i := 0; i < len(titles); {
		j := i
		for j < len(titles) && titles[j] == titles[i] {
			j++
		}
		if n := j - i; n > 1 {
			parts = append(parts, fmt.Sprintf("%s (x%d)", titles[i], n))
		} else {
			parts = append(parts, titles[i])
		}
		i = j
	}
	return strings.Join(parts, ", ")
}
