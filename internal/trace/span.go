package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func nextSeq() uint64 { return seqCounter.Add(1) }

// Loc ties a span to a treebank position. Zero fields are not reported.
type Loc struct {
	File string
	Line int // 1-based
}

// Span is one traced operation. A Span that is filtered out or whose tracer
// is disabled is inert: every method is a no-op.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	loc     Loc
	started time.Time
	attrs   map[string]string
	ended   bool
}

// Enabled reports whether events of scope started from ctx are recorded.
func Enabled(ctx context.Context, scope Scope) bool {
	t := FromContext(ctx)
	return t.Enabled() && t.Level().ShouldEmit(scope)
}

// Start opens a span below the current span of ctx and returns a context in
// which the new span is current.
func Start(ctx context.Context, scope Scope, name string, loc Loc) (context.Context, *Span) {
	if !Enabled(ctx, scope) {
		return ctx, &Span{}
	}
	s := &Span{
		tracer:  FromContext(ctx),
		id:      spanCounter.Add(1),
		parent:  ParentID(ctx),
		scope:   scope,
		name:    name,
		loc:     loc,
		started: time.Now(),
	}
	s.emit(KindSpanBegin, s.started, "", nil)
	return context.WithValue(ctx, spanKey, s.id), s
}

func (s *Span) emit(kind Kind, at time.Time, detail string, attrs map[string]string) {
	s.tracer.Emit(&Event{
		Time:     at,
		Seq:      nextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		File:     s.loc.File,
		Line:     s.loc.Line,
		Extra:    attrs,
	})
}

// Enabled reports whether the span emits events.
func (s *Span) Enabled() bool { return s != nil && s.tracer != nil }

// Attr records a key/value pair reported with the end event.
func (s *Span) Attr(key, value string) *Span {
	if !s.Enabled() {
		return s
	}
	if s.attrs == nil {
		s.attrs = make(map[string]string)
	}
	s.attrs[key] = value
	return s
}

// End emits the end event once and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.Enabled() || s.ended {
		return 0
	}
	s.ended = true
	now := time.Now()
	s.emit(KindSpanEnd, now, detail, s.attrs)
	return now.Sub(s.started)
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event below the current span of ctx.
func Point(ctx context.Context, scope Scope, name, detail string, loc Loc) {
	if !Enabled(ctx, scope) {
		return
	}
	FromContext(ctx).Emit(&Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		SpanID:   spanCounter.Add(1),
		ParentID: ParentID(ctx),
		Name:     name,
		Detail:   detail,
		File:     loc.File,
		Line:     loc.Line,
	})
}
