package trace

import (
	"strconv"
	"sync"
	"time"
)

// StartHeartbeat emits a heartbeat every interval until stop is called. Each
// beat names the file being loaded and the lines parsed so far, so a load that
// hangs shows where it stopped.
func StartHeartbeat(t Tracer, interval time.Duration, p *Progress) (stop func()) {
	if t == nil || !t.Enabled() || interval <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var beat uint64
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				beat++
				t.Emit(beatEvent(now, beat, p))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-finished
		})
	}
}

func beatEvent(now time.Time, beat uint64, p *Progress) *Event {
	file, files, lines := p.Snapshot()
	return &Event{
		Time:   now,
		Seq:    nextSeq(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		Name:   "heartbeat",
		Detail: "#" + strconv.FormatUint(beat, 10),
		File:   file,
		Extra: map[string]string{
			"files": strconv.FormatInt(files, 10),
			"lines": strconv.FormatInt(lines, 10),
		},
	}
}
