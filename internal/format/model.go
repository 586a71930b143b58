package format

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"treespan/internal/tree"
)

// Constituent is the structured form of a tree node used by JSON and YAML.
type Constituent struct {
	Label    string        `json:"label" yaml:"label"`
	Span     [2]int        `json:"span" yaml:"span,flow"`
	Word     string        `json:"word,omitempty" yaml:"word,omitempty"`
	Children []Constituent `json:"children,omitempty" yaml:"children,omitempty"`
}

// Build converts n into its structured form.
func Build(n *tree.Node) Constituent {
	l, r := n.Span()
	c := Constituent{Label: n.Label(), Span: [2]int{l, r}}
	if n.IsLeaf() {
		c.Word = n.Word()
		return c
	}
	c.Children = make([]Constituent, 0, len(n.Children()))
	for _, ch := range n.Children() {
		c.Children = append(c.Children, Build(ch))
	}
	return c
}

// JSON writes the structured form of n.
func JSON(w io.Writer, n *tree.Node) error {
	return Encode(w, StyleJSON, Build(n))
}

// YAML writes the structured form of n.
func YAML(w io.Writer, n *tree.Node) error {
	return Encode(w, StyleYAML, Build(n))
}

// Encode writes v as JSON or YAML.
func Encode(w io.Writer, style Style, v any) error {
	switch style {
	case StyleJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case StyleYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("format: %s is not a structured format", style)
}

// Write renders n in the given style followed by a newline.
func Write(w io.Writer, n *tree.Node, style Style, opt Options) error {
	var err error
	switch style {
	case StyleBracket:
		_, err = fmt.Fprintln(w, Bracketed(n))
	case StylePretty:
		_, err = io.WriteString(w, Pretty(n, opt))
	case StyleTokens:
		_, err = fmt.Fprintln(w, Tokens(n))
	case StyleJSON, StyleYAML:
		err = Encode(w, style, Build(n))
	default:
		err = fmt.Errorf("format: unknown style %d", style)
	}
	return err
}
