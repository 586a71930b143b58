package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("load")
	time.Sleep(2 * time.Millisecond)
	done(3, "files")
	done(99, "ignored")
	tm.Track("render") // не закрыта

	r := tm.Report()
	if len(r.Phases) != 1 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	p := r.Phases[0]
	if p.Count != 3 || p.Unit != "files" || p.DurationMS < 1 {
		t.Fatalf("unexpected phase: %+v", p)
	}
	if p.PerSecond <= 0 || p.PerSecond > 3000 {
		t.Fatalf("rate = %f", p.PerSecond)
	}
	if r.TotalMS != p.DurationMS {
		t.Fatal("total must sum the closed phases")
	}

	s := tm.Summary()
	for _, want := range []string{"timings:", "load", "3 files", "/s)", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary lacks %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "render") {
		t.Errorf("open phase in summary:\n%s", s)
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("empty timer report = %+v", r)
	}
}
