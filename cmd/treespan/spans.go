package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"treespan/internal/format"
)

var spansCmd = &cobra.Command{
	Use:   "spans [flags] file",
	Short: "List the labeled constituents of every tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpans,
}

func init() {
	spansCmd.Flags().Int("line", 0, "only the tree on this 1-based source line (0=all)")
	spansCmd.Flags().String("format", "text", "output format (text|json|yaml)")
}

type spanRecord struct {
	Line  int    `json:"line" yaml:"line"`
	Label string `json:"label" yaml:"label"`
	Left  int    `json:"left" yaml:"left"`
	Right int    `json:"right" yaml:"right"`
}

func runSpans(cmd *cobra.Command, args []string) error {
	line, err := cmd.Flags().GetInt("line")
	if err != nil {
		return fmt.Errorf("failed to get line flag: %w", err)
	}
	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch outFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", outFormat)
	}

	res, err := loadTrees(cmd, args[0], switchOff)
	if err != nil {
		return err
	}
	if len(res.Corpora) != 1 {
		return fmt.Errorf("expected one treebank file, got %d", len(res.Corpora))
	}
	c := res.Corpora[0]

	records := make([]spanRecord, 0)
	for i, root := range c.Trees {
		if line != 0 && c.Lines[i] != line {
			continue
		}
		for _, b := range root.Brackets() {
			records = append(records, spanRecord{Line: c.Lines[i], Label: b.Label, Left: b.Left, Right: b.Right})
		}
	}
	if line != 0 && len(records) == 0 {
		return fmt.Errorf("%s: no tree on line %d", c.Path, line)
	}

	switch outFormat {
	case "json":
		return format.Encode(cmd.OutOrStdout(), format.StyleJSON, records)
	case "yaml":
		return format.Encode(cmd.OutOrStdout(), format.StyleYAML, records)
	}
	out := bufio.NewWriter(cmd.OutOrStdout())
	for _, r := range records {
		fmt.Fprintf(out, "%d\t%s\t%d\t%d\n", r.Line, r.Label, r.Left, r.Right)
	}
	return out.Flush()
}
