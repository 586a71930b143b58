package trace

import "context"

type ctxKey uint8

const (
	tracerKey ctxKey = iota
	spanKey
	progressKey
)

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey).(Tracer); ok {
			return t
		}
	}
	return Nop
}

func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey, t)
}

// ParentID is the ID of the innermost span opened with Start; 0 at the top.
func ParentID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(spanKey).(uint64)
	return id
}

// WithProgress attaches load counters read by the heartbeat.
func WithProgress(ctx context.Context, p *Progress) context.Context {
	return context.WithValue(ctx, progressKey, p)
}

// ProgressFrom returns the counters of ctx. The result may be nil; all
// Progress methods accept a nil receiver.
func ProgressFrom(ctx context.Context) *Progress {
	if ctx == nil {
		return nil
	}
	p, _ := ctx.Value(progressKey).(*Progress)
	return p
}
