package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopeLine, false},
		{LevelDetail, ScopeLine, true},
		{LevelDetail, ScopeQuery, false},
		{LevelDebug, ScopeQuery, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevelAndMode(t *testing.T) {
	if l, err := ParseLevel("detail"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(detail) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if m, err := ParseMode("BOTH"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(BOTH) = %v, %v", m, err)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelPhase, FormatNDJSON))

	ctx, file := Start(ctx, ScopeFile, "load", Loc{File: "a.mrg"})
	_, line := Start(ctx, ScopeLine, "parse_line", Loc{File: "a.mrg", Line: 3})
	line.End("")
	file.Attr("trees", "3").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected only file-scope events, got %d lines:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Scope != "file" || ev.File != "a.mrg" || ev.Extra["trees"] != "3" || ev.Detail != "ok" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestStartNestsSpans(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), ring)

	ctx, cmd := Start(ctx, ScopeDriver, "parse", Loc{})
	if ParentID(ctx) != cmd.ID() {
		t.Fatal("Start must make the span current")
	}
	fileCtx, file := Start(ctx, ScopeFile, "load", Loc{File: "a.mrg"})
	_, line := Start(fileCtx, ScopeLine, "parse_line", Loc{File: "a.mrg", Line: 7})
	line.End("")
	line.End("again")
	file.End("")
	cmd.End("")

	events := ring.Snapshot()
	if len(events) != 6 {
		t.Fatalf("got %d events, want 6", len(events))
	}
	if events[2].ParentID != file.ID() || events[2].Line != 7 || events[2].File != "a.mrg" {
		t.Fatalf("line span event = %+v", events[2])
	}
	if events[1].ParentID != cmd.ID() || events[0].ParentID != 0 {
		t.Fatal("wrong parent chain")
	}
	if got := string(FormatEvent(&events[3], FormatText)); !strings.Contains(got, "← parse_line a.mrg:7") {
		t.Fatalf("text event = %q", got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	for i := range 5 {
		Point(ctx, ScopeQuery, "q", strconv.Itoa(i), Loc{})
	}
	events := tr.Snapshot()
	if len(events) != 3 || tr.Dropped() != 2 {
		t.Fatalf("snapshot has %d events, dropped %d", len(events), tr.Dropped())
	}
	for i, ev := range events {
		if ev.Detail != strconv.Itoa(i+2) {
			t.Fatalf("event %d = %q, want the newest events oldest first", i, ev.Detail)
		}
	}
	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "# 2 earlier events dropped\n") || strings.Count(buf.String(), "• q") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestDumpOnFailure(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeRing, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	_, sp := Start(WithTracer(context.Background(), tr), ScopeFile, "load", Loc{File: "bad.mrg"})
	sp.End("parse error")
	if buf.Len() != 0 {
		t.Fatal("ring mode must not write before a failure")
	}
	if err := DumpOnFailure(tr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "load bad.mrg (parse error)") {
		t.Fatalf("dump:\n%s", buf.String())
	}

	stream, err := New(Config{Level: LevelPhase, Mode: ModeStream, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if err := DumpOnFailure(stream); err != nil {
		t.Fatal(err)
	}
}

func TestHeartbeatReportsProgress(t *testing.T) {
	var p Progress
	p.EnterFile("a.mrg")
	p.EnterFile("b.mrg")
	for range 5 {
		p.LineDone()
	}
	ev := beatEvent(time.Now(), 4, &p)
	if ev.File != "b.mrg" || ev.Extra["files"] != "2" || ev.Extra["lines"] != "5" || ev.Detail != "#4" {
		t.Fatalf("heartbeat = %+v", ev)
	}
	if ev := beatEvent(time.Now(), 1, nil); ev.File != "" || ev.Extra["lines"] != "0" {
		t.Fatalf("nil progress heartbeat = %+v", ev)
	}

	ring := NewRingTracer(64, LevelPhase)
	stop := StartHeartbeat(ring, time.Millisecond, &p)
	deadline := time.Now().Add(5 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	stop()
	stop()
	events := ring.Snapshot()
	if len(events) == 0 || events[0].Kind != KindHeartbeat {
		t.Fatalf("no heartbeat recorded: %+v", events)
	}
	if n := len(ring.Snapshot()); n != len(events) {
		t.Fatal("heartbeat kept running after stop")
	}
}

func TestDisabledTracerIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("LevelOff tracer must be disabled")
	}
	ctx := WithTracer(context.Background(), tr)
	next, sp := Start(ctx, ScopeDriver, "x", Loc{})
	if next != ctx || sp.Enabled() || ParentID(next) != 0 {
		t.Fatal("disabled tracer must return an inert span")
	}
	if d := sp.Attr("k", "v").End(""); d != 0 {
		t.Fatalf("nop span duration = %v", d)
	}
	if FromContext(context.Background()) != Nop {
		t.Fatal("missing tracer must default to Nop")
	}
	if stop := StartHeartbeat(tr, time.Millisecond, nil); stop == nil {
		t.Fatal("stop must never be nil")
	}
}
