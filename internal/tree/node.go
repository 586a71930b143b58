package tree

import (
	"fmt"
	"strings"
)

const noLeaf = -1

// Node is either an internal constituent or a leaf referencing one token.
type Node struct {
	label    string
	children []*Node
	leaf     int
	sent     Sentence

	left, right int
	spanned     bool
}

// NewLeaf creates a leaf for the token at position pos.
func NewLeaf(pos int) *Node {
	if pos < 0 {
		panic(fmt.Sprintf("tree: negative leaf position %d", pos))
	}
	return &Node{leaf: pos}
}

// NewInternal creates an internal node. The children slice is copied.
func NewInternal(label string, children []*Node) *Node {
	if len(children) == 0 {
		panic("tree: internal node " + label + " without children")
	}
	own := make([]*Node, len(children))
	copy(own, children)
	return &Node{label: label, children: own, leaf: noLeaf}
}

// Attach shares sent with every node of the tree and precomputes spans.
// It must be called once, before the tree is published to other goroutines.
func (n *Node) Attach(sent Sentence) *Node {
	n.attach(sent)
	return n
}

func (n *Node) attach(sent Sentence) {
	n.sent = sent
	for _, c := range n.children {
		c.attach(sent)
	}
	n.computeSpans()
}

func (n *Node) computeSpans() {
	if n.spanned {
		return
	}
	if n.IsLeaf() {
		n.left, n.right = n.leaf, n.leaf
	} else {
		first, last := n.children[0], n.children[len(n.children)-1]
		first.computeSpans()
		last.computeSpans()
		n.left, n.right = first.left, last.right
	}
	n.spanned = true
}

func (n *Node) IsLeaf() bool { return n.leaf != noLeaf }

// Label returns the non-terminal label, or the token tag for a leaf.
func (n *Node) Label() string {
	if n.IsLeaf() {
		if n.leaf < len(n.sent) {
			return n.sent[n.leaf].Tag
		}
		return ""
	}
	return n.label
}

// Word returns the leaf word; internal nodes have none.
func (n *Node) Word() string {
	if n.IsLeaf() && n.leaf < len(n.sent) {
		return n.sent[n.leaf].Word
	}
	return ""
}

// Position returns the token index of a leaf, or -1.
func (n *Node) Position() int { return n.leaf }

// Children returns the ordered children.
// ВАЖНО: не модифицируйте возвращаемый срез!
func (n *Node) Children() []*Node { return n.children }

func (n *Node) Sentence() Sentence { return n.sent }

// Len returns the number of tokens of the whole tree.
func (n *Node) Len() int { return len(n.sent) }

func (n *Node) LeftSpan() int {
	n.computeSpans()
	return n.left
}

func (n *Node) RightSpan() int {
	n.computeSpans()
	return n.right
}

// Span returns both bounds.
func (n *Node) Span() (left, right int) {
	n.computeSpans()
	return n.left, n.right
}

func (n *Node) Height() int {
	h := 0
	for _, c := range n.children {
		h = max(h, c.Height())
	}
	return h + 1
}

// Walk visits nodes in pre-order. Returning false from fn skips the subtree.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// Leaves returns the leaves under n, left to right.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(node *Node, _ int) bool {
		if node.IsLeaf() {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Words returns the words covered by n.
func (n *Node) Words() []string {
	l, r := n.Span()
	return n.sent[l : r+1].Words()
}

// Tags returns the tags covered by n.
func (n *Node) Tags() []string {
	l, r := n.Span()
	return n.sent[l : r+1].Tags()
}

// Bracket is a labeled constituent with its span.
type Bracket struct {
	Label string
	Left  int
	Right int
}

// Brackets lists the internal constituents of n in pre-order.
func (n *Node) Brackets() []Bracket {
	var out []Bracket
	n.Walk(func(node *Node, _ int) bool {
		if !node.IsLeaf() {
			l, r := node.Span()
			out = append(out, Bracket{Label: node.label, Left: l, Right: r})
		}
		return true
	})
	return out
}

// String renders the tree in bracketed notation: (label child ...) for
// internal nodes and (TAG word) for leaves.
func (n *Node) String() string {
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func (n *Node) writeTo(sb *strings.Builder) {
	sb.WriteByte('(')
	sb.WriteString(n.Label())
	if n.IsLeaf() {
		sb.WriteByte(' ')
		sb.WriteString(n.Word())
	}
	for _, c := range n.children {
		sb.WriteByte(' ')
		c.writeTo(sb)
	}
	sb.WriteByte(')')
}
