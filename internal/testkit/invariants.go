package testkit

import (
	"errors"
	"fmt"

	"treespan/internal/diag"
	"treespan/internal/source"
	"treespan/internal/tree"
)

// ErrInvariant is wrapped by every error returned from CheckSpanInvariants.
var ErrInvariant = errors.New("span invariant violated")

// CheckSpanInvariants runs the structural checks on a parsed tree:
// 1) every node shares the root's sentence
// 2) leaves appear in order, positions equal token indices, word/tag match
// 3) the root spans the whole sentence
// 4) children partition their parent's span left to right without gaps
func CheckSpanInvariants(root *tree.Node) error {
	if root == nil {
		return fmt.Errorf("%w: nil tree", ErrInvariant)
	}
	sent := root.Sentence()
	if len(sent) == 0 {
		return fmt.Errorf("%w: tree has no sentence attached", ErrInvariant)
	}

	next := 0
	var err error
	root.Walk(func(n *tree.Node, depth int) bool {
		if err != nil {
			return false
		}
		err = checkNode(n, sent, &next)
		return err == nil
	})
	if err != nil {
		return err
	}
	if next != len(sent) {
		return fmt.Errorf("%w: %d leaves for %d tokens", ErrInvariant, next, len(sent))
	}

	// 3) root covers everything
	if l, r := root.Span(); l != 0 || r != len(sent)-1 {
		return fmt.Errorf("%w: root span [%d,%d], want [0,%d]", ErrInvariant, l, r, len(sent)-1)
	}
	return nil
}

func checkNode(n *tree.Node, sent tree.Sentence, next *int) error {
	s := n.Sentence()
	if len(s) != len(sent) || &s[0] != &sent[0] {
		return fmt.Errorf("%w: node %s does not share the root sentence", ErrInvariant, n.Label())
	}
	l, r := n.Span()

	if n.IsLeaf() {
		pos := n.Position()
		if pos != *next {
			return fmt.Errorf("%w: leaf %q at position %d, want %d", ErrInvariant, n.Word(), pos, *next)
		}
		if l != pos || r != pos {
			return fmt.Errorf("%w: leaf %d has span [%d,%d]", ErrInvariant, pos, l, r)
		}
		if sent[pos].Word != n.Word() || sent[pos].Tag != n.Label() {
			return fmt.Errorf("%w: leaf %d is (%s %s), sentence has %s/%s",
				ErrInvariant, pos, n.Label(), n.Word(), sent[pos].Word, sent[pos].Tag)
		}
		*next++
		return nil
	}

	children := n.Children()
	if len(children) == 0 {
		return fmt.Errorf("%w: internal node %s has no children", ErrInvariant, n.Label())
	}
	if first := children[0].LeftSpan(); first != l {
		return fmt.Errorf("%w: %s left span %d, first child starts at %d", ErrInvariant, n.Label(), l, first)
	}
	if last := children[len(children)-1].RightSpan(); last != r {
		return fmt.Errorf("%w: %s right span %d, last child ends at %d", ErrInvariant, n.Label(), r, last)
	}
	for i := 1; i < len(children); i++ {
		prev, cur := children[i-1].RightSpan(), children[i].LeftSpan()
		if cur != prev+1 {
			return fmt.Errorf("%w: %s children %d and %d leave [%d,%d] unpartitioned",
				ErrInvariant, n.Label(), i-1, i, prev, cur)
		}
	}
	return nil
}

// Report runs CheckSpanInvariants and reports a failure as QryInvariantFail
// at primary. It returns true when the tree is consistent.
func Report(root *tree.Node, rep diag.Reporter, primary source.Span) bool {
	err := CheckSpanInvariants(root)
	if err == nil {
		return true
	}
	diag.Emit(rep, diag.NewError(diag.QryInvariantFail, primary, err.Error()))
	return false
}
