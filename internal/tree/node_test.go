package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"treespan/internal/tree"
)

func TestManualConstruction(t *testing.T) {
	kids := []*tree.Node{tree.NewLeaf(0), tree.NewLeaf(1)}
	np := tree.NewInternal("NP", kids)
	kids[0] = nil // the node owns its own copy

	root := tree.NewInternal("S", []*tree.Node{np, tree.NewLeaf(2)})
	root.Attach(tree.Sentence{
		{Word: "the", Tag: "DT"},
		{Word: "dog", Tag: "NN"},
		{Word: "runs", Tag: "VBZ"},
	})

	require.Equal(t, "(S (NP (DT the) (NN dog)) (VBZ runs))", root.String())
	require.Equal(t, root.Sentence(), np.Children()[0].Sentence())
	require.Equal(t, "the/DT dog/NN runs/VBZ", root.Sentence().String())
}

func TestSpansBeforeAttach(t *testing.T) {
	n := tree.NewInternal("X", []*tree.Node{tree.NewLeaf(3), tree.NewLeaf(4)})
	l, r := n.Span()
	require.Equal(t, 3, l)
	require.Equal(t, 4, r)
}

func TestNewInternalWithoutChildrenPanics(t *testing.T) {
	require.Panics(t, func() { tree.NewInternal("NP", nil) })
	require.Panics(t, func() { tree.NewLeaf(-1) })
}

func TestNodeAccessors(t *testing.T) {
	root := mustParse(t, sample)

	require.Equal(t, 4, root.Height())
	require.Equal(t, []string{"saw", "a", "cat"}, root.Children()[1].Words())
	require.Equal(t, []string{"VBD", "DT", "NN"}, root.Children()[1].Tags())
	require.Equal(t, -1, root.Position())
	require.Empty(t, root.Word())

	leaves := root.Leaves()
	require.Len(t, leaves, 5)
	require.Equal(t, "cat", leaves[4].Word())
	require.Equal(t, "NN", leaves[4].Label())

	require.Equal(t, []tree.Bracket{
		{Label: "S", Left: 0, Right: 4},
		{Label: "NP", Left: 0, Right: 1},
		{Label: "VP", Left: 2, Right: 4},
		{Label: "NP", Left: 3, Right: 4},
	}, root.Brackets())
}

func TestWalkSkipsSubtree(t *testing.T) {
	root := mustParse(t, sample)
	var labels []string
	var maxDepth int
	root.Walk(func(n *tree.Node, depth int) bool {
		labels = append(labels, n.Label())
		maxDepth = max(maxDepth, depth)
		return n.Label() != "VP"
	})
	require.Equal(t, []string{"S", "NP", "DT", "NN", "VP"}, labels)
	require.Equal(t, 2, maxDepth)
}
