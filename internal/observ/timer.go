package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one timed step of a load: how long it took and how many items
// (files, trees) it handled.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Count int
	Unit  string
	done  bool
}

// Timer collects phases in start order. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Track starts a phase and returns the function that closes it. Only the
// first call of the returned function counts.
func (t *Timer) Track(name string) func(count int, unit string) {
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	t.mu.Unlock()

	return func(count int, unit string) {
		t.mu.Lock()
		defer t.mu.Unlock()
		p := &t.phases[idx]
		if p.done {
			return
		}
		p.Dur, p.Count, p.Unit, p.done = time.Since(p.Start), count, unit, true
	}
}

// PhaseReport - фаза в виде, пригодном для JSON.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Unit       string  `json:"unit,omitempty"`
	PerSecond  float64 `json:"per_second,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the closed phases; phases still running are left out.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		if !p.done {
			continue
		}
		total += p.Dur
		pr := PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Count: p.Count, Unit: p.Unit}
		if p.Count > 0 && p.Dur > 0 {
			pr.PerSecond = float64(p.Count) / p.Dur.Seconds()
		}
		r.Phases = append(r.Phases, pr)
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders the report as an aligned table for --timings.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-8s %9.2f ms", p.Name, p.DurationMS)
		if p.Unit != "" {
			fmt.Fprintf(&sb, "  %d %s", p.Count, p.Unit)
		}
		if p.PerSecond > 0 {
			fmt.Fprintf(&sb, " (%.0f/s)", p.PerSecond)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-8s %9.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
