package format

import (
	"treespan/internal/tree"
)

// Bracketed renders n on one line, identical to n.String().
func Bracketed(n *tree.Node) string {
	return n.String()
}

// Tokens renders the words under n as "word/TAG word/TAG ...".
func Tokens(n *tree.Node) string {
	l, r := n.Span()
	return n.Sentence()[l : r+1].String()
}

// Pretty renders n with one constituent per line. Preterminal groups (nodes
// whose children are all leaves) stay on a single line.
func Pretty(n *tree.Node, opt Options) string {
	w := newTreeWriter(opt)
	printNode(w, n)
	return w.String()
}

func printNode(w *treeWriter, n *tree.Node) {
	if flat(n) {
		w.text(n.String())
		return
	}
	w.open(n.Label())
	for _, c := range n.Children() {
		w.line()
		printNode(w, c)
	}
	w.close()
}

func flat(n *tree.Node) bool {
	for _, c := range n.Children() {
		if !c.IsLeaf() {
			return false
		}
	}
	return true
}
