package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives trace events. Implementations are goroutine-safe: lines of
// a file are parsed concurrently.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

const defaultRingSize = 4096

// StorageMode determines how events are stored.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // write every event
	ModeRing                          // keep the tail, write it if the command fails
	ModeBoth                          // stream, plus the tail on stderr on failure
)

var modeNames = [...]string{
	ModeStream: "stream",
	ModeRing:   "ring",
	ModeBoth:   "both",
}

func (m StorageMode) String() string { return lookupName(modeNames[:], int(m)) }

// ParseMode converts a flag value to StorageMode, case-insensitively.
func ParseMode(s string) (StorageMode, error) {
	for i, name := range modeNames {
		if i > 0 && strings.EqualFold(s, name) {
			return StorageMode(i), nil
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto picks by OutputPath extension
	Output     io.Writer // overrides OutputPath; never closed
	OutputPath string    // "-" or "" for stderr
	RingSize   int       // 0 uses 4096
}

// New creates a Tracer based on Config.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}

	newRing := func(out sink) *RingTracer {
		r := NewRingTracer(cfg.RingSize, cfg.Level)
		r.out, r.format = out, format
		return r
	}

	switch cfg.Mode {
	case ModeStream, ModeRing, ModeBoth:
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
	out, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case ModeStream:
		return &StreamTracer{out: out, level: cfg.Level, format: format}, nil
	case ModeRing:
		return newRing(out), nil
	default:
		var tail sink
		if out.w != os.Stderr && cfg.Output == nil {
			tail = sink{w: os.Stderr}
		}
		return &tee{
			stream: &StreamTracer{out: out, level: cfg.Level, format: format},
			ring:   newRing(tail),
		}, nil
	}
}

// sink is a trace destination; closer is nil for writers we do not own.
type sink struct {
	w      io.Writer
	closer io.Closer
}

func (s sink) close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func openOutput(cfg Config) (sink, error) {
	if cfg.Output != nil {
		return sink{w: cfg.Output}, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return sink{w: os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return sink{}, fmt.Errorf("failed to open trace output: %w", err)
	}
	return sink{w: f, closer: f}, nil
}

// DumpOnFailure writes the in-memory tail of t, if it keeps one, to the
// destination chosen by New. Call it before Close when a command failed.
func DumpOnFailure(t Tracer) error {
	var ring *RingTracer
	switch t := t.(type) {
	case *RingTracer:
		ring = t
	case *tee:
		ring = t.ring
	}
	if ring == nil || ring.out.w == nil {
		return nil
	}
	return ring.Dump(ring.out.w, ring.format)
}

// tee streams events and keeps the tail in a ring at the same time.
type tee struct {
	stream *StreamTracer
	ring   *RingTracer
}

func (t *tee) Emit(ev *Event) {
	t.stream.Emit(ev)
	t.ring.Emit(ev)
}

func (t *tee) Flush() error { return t.stream.Flush() }

func (t *tee) Close() error { return t.stream.Close() }

func (t *tee) Level() Level { return t.stream.level }

func (t *tee) Enabled() bool { return true }

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop discards everything; FromContext returns it when no tracer is set.
var Nop Tracer = nopTracer{}
