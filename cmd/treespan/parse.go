package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"treespan/internal/format"
	"treespan/internal/treebank"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file|directory>",
	Short: "Parse treebank files and print the trees",
	Long: `Parse reads one bracketed tree per line from a file, or from every treebank
file in a directory, and prints the parsed trees`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "", "output format (bracket|pretty|json|yaml|tokens); default from config")
	parseCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

// parsedTree is the structured output record of one tree.
type parsedTree struct {
	Path string             `json:"path" yaml:"path"`
	Line int                `json:"line" yaml:"line"`
	Tree format.Constituent `json:"tree" yaml:"tree"`
}

func runParse(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)

	styleName := s.cfg.Output.Format
	if cmd.Flags().Changed("format") {
		var err error
		if styleName, err = cmd.Flags().GetString("format"); err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	style, err := format.ParseStyle(styleName)
	if err != nil {
		return err
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseAutoSwitch("ui", uiValue)
	if err != nil {
		return err
	}

	res, err := loadTrees(cmd, args[0], mode)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	if err := writeTrees(out, res.Corpora, style); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}
	logf(cmd.ErrOrStderr(), s, "parsed %d trees from %d files\n", res.Trees(), len(res.Corpora))
	return nil
}

func writeTrees(w io.Writer, corpora []*treebank.Corpus, style format.Style) error {
	if style == format.StyleJSON || style == format.StyleYAML {
		records := make([]parsedTree, 0)
		for _, c := range corpora {
			for i, root := range c.Trees {
				records = append(records, parsedTree{Path: c.Path, Line: c.Lines[i], Tree: format.Build(root)})
			}
		}
		return format.Encode(w, style, records)
	}
	for _, c := range corpora {
		for _, root := range c.Trees {
			if err := format.Write(w, root, style, format.Options{}); err != nil {
				return err
			}
		}
	}
	return nil
}
