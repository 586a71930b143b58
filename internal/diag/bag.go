package diag

import (
	"cmp"
	"slices"
	"sync"
)

// Bag collects diagnostics up to a limit and counts the ones it had to drop.
// Safe for concurrent use: the treebank loader reports from several workers
// into one bag.
type Bag struct {
	mu      sync.Mutex
	items   []Diagnostic
	limit   int // <= 0 - без ограничения
	dropped int
}

func NewBag(limit int) *Bag {
	return &Bag{limit: limit}
}

// Add добавляет d, если лимит не исчерпан; иначе d только подсчитывается.
func (b *Bag) Add(d Diagnostic) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.limit > 0 && len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Append adds d past the limit. Used for run summaries that must not be lost
// to a flood of per-line errors.
func (b *Bag) Append(d Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, d)
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Dropped reports how many diagnostics did not fit under the limit.
func (b *Bag) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Items returns a snapshot of the collected diagnostics.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.items)
}

func (b *Bag) HasErrors() bool { return b.atLeast(SevError) }

func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

func (b *Bag) atLeast(sev Severity) bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

// Sort orders diagnostics by file and position; on the same span the more
// severe one comes first, then the lower code.
func (b *Bag) Sort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
