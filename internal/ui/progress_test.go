package ui

import (
	"fmt"
	"strings"
	"testing"

	"treespan/internal/treebank"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	files := []string{"a.mrg", "b.mrg"}
	m := NewProgressModel("parse", files, nil).(*progressModel)

	m.Update(eventMsg{File: "a.mrg", Stage: treebank.StageParse, Status: treebank.StatusWorking})
	if m.rows[0].state != stateParsing {
		t.Fatalf("state = %s", m.rows[0].state)
	}
	m.Update(eventMsg{File: "a.mrg", Stage: treebank.StageParse, Status: treebank.StatusDone, Trees: 7})
	m.Update(eventMsg{File: "b.mrg", Stage: treebank.StageCache, Status: treebank.StatusDone, Trees: 3, Cached: true})
	m.Update(eventMsg{File: "unknown.mrg", Status: treebank.StatusDone, Trees: 100})
	// повторное завершение не считается дважды
	m.Update(eventMsg{File: "a.mrg", Stage: treebank.StageParse, Status: treebank.StatusDone, Trees: 7})

	if m.trees != 10 || m.finished != 2 || m.cached != 1 {
		t.Fatalf("trees=%d finished=%d cached=%d", m.trees, m.finished, m.cached)
	}
	if got := m.percent(); got != 1.0 {
		t.Fatalf("percent = %v, want 1", got)
	}

	m.Update(doneMsg{})
	view := m.View()
	for _, want := range []string{"done: parse: 2/2 files, 10 trees (1 cached, 0 failed)", "a.mrg (7)", "cached"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestProgressModelLimitsRows(t *testing.T) {
	files := make([]string, 20)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.mrg", i)
	}
	m := NewProgressModel("load", files, nil).(*progressModel)
	for i := range 4 {
		m.Update(eventMsg{File: files[i], Stage: treebank.StageParse, Status: treebank.StatusDone, Trees: 1})
	}
	m.Update(eventMsg{File: "f15.mrg", Stage: treebank.StageRead, Status: treebank.StatusWorking})

	rows := m.visible()
	if len(rows) != 5 || rows[0].path != "f15.mrg" || rows[1].path != "f03.mrg" {
		t.Fatalf("visible rows = %+v", rows)
	}
	view := m.View()
	if !strings.Contains(view, "+15 more files") || strings.Contains(view, "f10.mrg") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("corpus/wsj_0001.mrg", 10); got != "corpus/..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("文字列テスト.mrg", 7); got != "文字..." {
		t.Errorf("truncate wide = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Errorf("truncate = %q", got)
	}
}
