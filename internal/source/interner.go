package source

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// Interner keeps one shared copy of every distinct label or tag, so a
// treebank with a million NP nodes holds a single "NP" string. Safe for
// concurrent use: the loader parses lines on several goroutines.
type Interner struct {
	mu   sync.RWMutex
	pool map[string]string
}

func NewInterner() *Interner {
	return &Interner{pool: make(map[string]string)}
}

// Canonical returns the pooled copy of s, adding it on first sight.
func (i *Interner) Canonical(s string) string {
	i.mu.RLock()
	c, ok := i.pool[s]
	i.mu.RUnlock()
	if ok {
		return c
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if c, ok := i.pool[s]; ok {
		return c
	}
	// своя копия: s может ссылаться на буфер целого файла
	c = strings.Clone(s)
	i.pool[c] = c
	return c
}

func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.pool)
}

// Strings returns the pooled strings in sorted order.
func (i *Interner) Strings() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Sorted(maps.Keys(i.pool))
}
