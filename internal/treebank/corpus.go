package treebank

import (
	"treespan/internal/source"
	"treespan/internal/tree"
)

// Corpus is the parsed content of one treebank file, in file order.
type Corpus struct {
	Path   string
	File   *source.File // nil when served from the cache without reading
	Trees  []*tree.Node
	Lines  []int // 1-based source line of every tree
	Cached bool
}

func (c *Corpus) Len() int { return len(c.Trees) }

// TreeAtLine returns the tree parsed from the given 1-based source line.
func (c *Corpus) TreeAtLine(line int) (*tree.Node, bool) {
	for i, l := range c.Lines {
		if l == line {
			return c.Trees[i], true
		}
	}
	return nil, false
}
