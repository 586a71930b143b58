package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"treespan/internal/diag"
	"treespan/internal/format"
	"treespan/internal/trace"
	"treespan/internal/tree"
)

var queryCmd = &cobra.Command{
	Use:   "query [flags] file --left L --right R",
	Short: "Answer a span query on one tree",
	Long: `Query runs a span query on the tree parsed from --line of a treebank file.
Token positions are 0-based and inclusive.

Operations:
  enclosing  smallest constituent containing [L,R] (may equal it)
  strict     smallest constituent strictly larger than [L,R]
  labels     labels of every constituent spanning exactly [L,R], outermost first
  splits     split points of [L,R] in its smallest enclosing constituent
  exact      outermost constituent spanning exactly [L,R]`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	f := queryCmd.Flags()
	f.Int("line", 1, "1-based source line of the tree")
	f.Int("left", 0, "left token position (0-based, inclusive)")
	f.Int("right", 0, "right token position (0-based, inclusive)")
	f.String("op", "enclosing", "query operation (enclosing|strict|labels|splits|exact)")
	f.String("format", "text", "output format (text|json|yaml)")
	_ = queryCmd.MarkFlagRequired("left")
	_ = queryCmd.MarkFlagRequired("right")
}

// queryResult is the structured answer of one query.
type queryResult struct {
	Op     string   `json:"op" yaml:"op"`
	Line   int      `json:"line" yaml:"line"`
	Left   int      `json:"left" yaml:"left"`
	Right  int      `json:"right" yaml:"right"`
	Found  bool     `json:"found" yaml:"found"`
	Label  string   `json:"label,omitempty" yaml:"label,omitempty"`
	Span   *[2]int  `json:"span,omitempty" yaml:"span,omitempty,flow"`
	Tree   string   `json:"tree,omitempty" yaml:"tree,omitempty"`
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Splits []int    `json:"splits,omitempty" yaml:"splits,omitempty,flow"`
}

func (r *queryResult) setNode(n *tree.Node) {
	l, rr := n.Span()
	r.Found = true
	r.Label = n.Label()
	r.Span = &[2]int{l, rr}
	r.Tree = n.String()
}

func runQuery(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)
	f := cmd.Flags()

	line, err := f.GetInt("line")
	if err != nil {
		return fmt.Errorf("failed to get line flag: %w", err)
	}
	left, err := f.GetInt("left")
	if err != nil {
		return fmt.Errorf("failed to get left flag: %w", err)
	}
	right, err := f.GetInt("right")
	if err != nil {
		return fmt.Errorf("failed to get right flag: %w", err)
	}
	op, err := f.GetString("op")
	if err != nil {
		return fmt.Errorf("failed to get op flag: %w", err)
	}
	outFormat, err := f.GetString("format")
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
	c, root, err := treeAt(res, line)
	if err != nil {
		return err
	}

	result := queryResult{Op: op, Line: line, Left: left, Right: right}
	_, span := trace.Start(cmd.Context(), trace.ScopeQuery, "query", trace.Loc{File: c.Path, Line: line})
	span.Attr("op", op).Attr("range", fmt.Sprintf("%d..%d", left, right))
	err = answer(root, &result)
	span.Attr("found", strconv.FormatBool(result.Found)).End("")
	if err != nil {
		var spanErr *tree.SpanError
		if !errors.As(err, &spanErr) {
			return err
		}
		code := diag.QryOutOfRange
		if errors.Is(err, tree.ErrEmptySpan) {
			code = diag.QryEmptySpan
		}
		res.Bag.Add(diag.NewError(code, lineSpan(c, line), err.Error()))
		if perr := printDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet, s); perr != nil {
			return perr
		}
		return fmt.Errorf("%w: %w", errReported, err)
	}
	if !result.Found && op == "exact" && !s.quiet {
		d := diag.New(diag.SevInfo, diag.QryNoExactMatch, lineSpan(c, line),
			fmt.Sprintf("no constituent spans exactly [%d,%d]", left, right))
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %s\n", d.Severity, d.Code.ID(), d.Message)
	}

	out := cmd.OutOrStdout()
	switch outFormat {
	case "json":
		return format.Encode(out, format.StyleJSON, result)
	case "yaml":
		return format.Encode(out, format.StyleYAML, result)
	}
	return writeQueryText(out, &result)
}

// answer fills result for the requested operation.
func answer(root *tree.Node, result *queryResult) error {
	left, right := result.Left, result.Right
	switch result.Op {
	case "enclosing", "strict":
		n, err := root.Enclosing(left, right, result.Op == "enclosing")
		if err != nil {
			return err
		}
		result.setNode(n)
	case "labels":
		labels, err := root.SpanLabels(left, right)
		if err != nil {
			return err
		}
		result.Labels = labels
		result.Found = len(labels) > 0
	case "splits":
		splits, err := root.SpanSplits(left, right)
		if err != nil {
			return err
		}
		result.Splits = splits
		result.Found = true
	case "exact":
		n, ok, err := root.Exact(left, right)
		if err != nil {
			return err
		}
		if ok {
			result.setNode(n)
		}
	default:
		return fmt.Errorf("unknown query operation %q (expected enclosing|strict|labels|splits|exact)", result.Op)
	}
	return nil
}

func writeQueryText(w io.Writer, r *queryResult) error {
	var err error
	switch r.Op {
	case "labels":
		_, err = fmt.Fprintln(w, strings.Join(r.Labels, " "))
	case "splits":
		parts := make([]string, len(r.Splits))
		for i, s := range r.Splits {
			parts[i] = strconv.Itoa(s)
		}
		_, err = fmt.Fprintln(w, strings.Join(parts, " "))
	default:
		if !r.Found {
			return nil
		}
		_, err = fmt.Fprintf(w, "%s [%d,%d] %s\n", r.Label, r.Span[0], r.Span[1], r.Tree)
	}
	return err
}
