package treebank

import (
	"cmp"
	"slices"

	"treespan/internal/tree"
)

// Stats aggregates simple corpus statistics.
type Stats struct {
	Files     int            `json:"files" yaml:"files"`
	Trees     int            `json:"trees" yaml:"trees"`
	Tokens    int            `json:"tokens" yaml:"tokens"`
	MaxHeight int            `json:"max_height" yaml:"max_height"`
	MaxLen    int            `json:"max_len" yaml:"max_len"`
	Labels    map[string]int `json:"labels" yaml:"labels"`
	Tags      map[string]int `json:"tags" yaml:"tags"`
}

// Count is one histogram entry.
type Count struct {
	Name string `json:"name" yaml:"name"`
	N    int    `json:"n" yaml:"n"`
}

// Summarize walks every tree of the corpora.
func Summarize(corpora ...*Corpus) Stats {
	s := Stats{Labels: map[string]int{}, Tags: map[string]int{}}
	for _, c := range corpora {
		s.Files++
		for _, t := range c.Trees {
			s.Add(t)
		}
	}
	return s
}

// Add accounts one tree.
func (s *Stats) Add(root *tree.Node) {
	s.Trees++
	s.Tokens += root.Len()
	s.MaxLen = max(s.MaxLen, root.Len())
	s.MaxHeight = max(s.MaxHeight, root.Height())
	for _, b := range root.Brackets() {
		s.Labels[b.Label]++
	}
	for _, tok := range root.Sentence() {
		s.Tags[tok.Tag]++
	}
}

// Top returns the n most frequent entries of a histogram, ties by name.
// n <= 0 returns all entries.
func Top(hist map[string]int, n int) []Count {
	out := make([]Count, 0, len(hist))
	for name, c := range hist {
		out = append(out, Count{Name: name, N: c})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if a.N != b.N {
			return cmp.Compare(b.N, a.N)
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
