package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"treespan/internal/format"
	"treespan/internal/treebank"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] <file|directory>",
	Short: "Print corpus statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("top", 10, "number of labels and tags to list (0=all)")
	statsCmd.Flags().String("format", "text", "output format (text|json|yaml)")
}

type statsReport struct {
	Files     int              `json:"files" yaml:"files"`
	Trees     int              `json:"trees" yaml:"trees"`
	Tokens    int              `json:"tokens" yaml:"tokens"`
	MaxHeight int              `json:"max_height" yaml:"max_height"`
	MaxLen    int              `json:"max_len" yaml:"max_len"`
	Labels    []treebank.Count `json:"labels" yaml:"labels"`
	Tags      []treebank.Count `json:"tags" yaml:"tags"`
}

func runStats(cmd *cobra.Command, args []string) error {
	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return fmt.Errorf("failed to get top flag: %w", err)
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
	st := treebank.Summarize(res.Corpora...)
	report := statsReport{
		Files:     st.Files,
		Trees:     st.Trees,
		Tokens:    st.Tokens,
		MaxHeight: st.MaxHeight,
		MaxLen:    st.MaxLen,
		Labels:    treebank.Top(st.Labels, top),
		Tags:      treebank.Top(st.Tags, top),
	}

	switch outFormat {
	case "json":
		return format.Encode(cmd.OutOrStdout(), format.StyleJSON, report)
	case "yaml":
		return format.Encode(cmd.OutOrStdout(), format.StyleYAML, report)
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	fmt.Fprintf(out, "files:      %d\n", report.Files)
	fmt.Fprintf(out, "trees:      %d\n", report.Trees)
	fmt.Fprintf(out, "tokens:     %d\n", report.Tokens)
	fmt.Fprintf(out, "max height: %d\n", report.MaxHeight)
	fmt.Fprintf(out, "max length: %d\n", report.MaxLen)
	writeCounts(out, "labels", report.Labels)
	writeCounts(out, "tags", report.Tags)
	return out.Flush()
}

func writeCounts(out *bufio.Writer, title string, counts []treebank.Count) {
	fmt.Fprintf(out, "%s:\n", title)
	width := 0
	for _, c := range counts {
		width = max(width, len(c.Name))
	}
	for _, c := range counts {
		fmt.Fprintf(out, "  %-*s %d\n", width, c.Name, c.N)
	}
}
