package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only emit on errors/crashes
	LevelPhase               // driver + file boundaries
	LevelDetail              // per-line events
	LevelDebug               // everything including queries
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level, case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// maxScope is the finest scope emitted at each level; 0 emits nothing.
var maxScope = [...]Scope{
	LevelOff:    0,
	LevelError:  0, // ошибки идут отдельным путём
	LevelPhase:  ScopeFile,
	LevelDetail: ScopeLine,
	LevelDebug:  ScopeQuery,
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(maxScope) && scope <= maxScope[l]
}

// accepts reports whether a tracer at level l records ev. Heartbeats pass
// every enabled level.
func accepts(l Level, ev *Event) bool {
	if ev.Kind == KindHeartbeat {
		return l > LevelOff
	}
	return l.ShouldEmit(ev.Scope)
}
