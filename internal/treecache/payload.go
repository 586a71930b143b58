package treecache

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"treespan/internal/tree"
)

// Current schema version - increment when payload format changes
const schemaVersion uint16 = 1

// SchemaVersion reports the on-disk payload version; entries written by
// another version are treated as misses.
func SchemaVersion() uint16 { return schemaVersion }

var errCorrupt = errors.New("treecache: corrupt entry")

type payload struct {
	Schema uint16     `msgpack:"schema"`
	Path   string     `msgpack:"path"`
	Lines  []int      `msgpack:"lines"`
	Trees  []flatTree `msgpack:"trees"`
}

// flatTree: дерево в прямом порядке обхода; у внутренних узлов Leaf = -1.
type flatTree struct {
	Words []string   `msgpack:"w"`
	Tags  []string   `msgpack:"t"`
	Nodes []flatNode `msgpack:"n"`
}

type flatNode struct {
	Label string `msgpack:"l,omitempty"`
	Leaf  int32  `msgpack:"p"`
	Arity uint32 `msgpack:"a,omitempty"`
}

func flatten(root *tree.Node) (flatTree, error) {
	sent := root.Sentence()
	ft := flatTree{
		Words: sent.Words(),
		Tags:  sent.Tags(),
		Nodes: make([]flatNode, 0, 2*len(sent)),
	}
	var err error
	root.Walk(func(n *tree.Node, _ int) bool {
		if err != nil {
			return false
		}
		if n.IsLeaf() {
			var pos int32
			pos, err = safecast.Conv[int32](n.Position())
			ft.Nodes = append(ft.Nodes, flatNode{Leaf: pos})
			return true
		}
		var arity uint32
		arity, err = safecast.Conv[uint32](len(n.Children()))
		ft.Nodes = append(ft.Nodes, flatNode{Label: n.Label(), Leaf: -1, Arity: arity})
		return true
	})
	return ft, err
}

func (ft flatTree) build() (*tree.Node, error) {
	if len(ft.Words) != len(ft.Tags) || len(ft.Nodes) == 0 {
		return nil, errCorrupt
	}
	next := 0
	var rec func() (*tree.Node, error)
	rec = func() (*tree.Node, error) {
		if next >= len(ft.Nodes) {
			return nil, errCorrupt
		}
		fn := ft.Nodes[next]
		next++
		if fn.Leaf >= 0 {
			if int(fn.Leaf) >= len(ft.Words) {
				return nil, fmt.Errorf("%w: leaf %d out of %d words", errCorrupt, fn.Leaf, len(ft.Words))
			}
			return tree.NewLeaf(int(fn.Leaf)), nil
		}
		if fn.Arity == 0 {
			return nil, fmt.Errorf("%w: internal node %q without children", errCorrupt, fn.Label)
		}
		children := make([]*tree.Node, 0, fn.Arity)
		for range fn.Arity {
			c, err := rec()
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		return tree.NewInternal(fn.Label, children), nil
	}
	root, err := rec()
	if err != nil {
		return nil, err
	}
	if next != len(ft.Nodes) {
		return nil, fmt.Errorf("%w: %d trailing nodes", errCorrupt, len(ft.Nodes)-next)
	}
	sent := make(tree.Sentence, len(ft.Words))
	for i := range ft.Words {
		sent[i] = tree.Token{Word: ft.Words[i], Tag: ft.Tags[i]}
	}
	return root.Attach(sent), nil
}
