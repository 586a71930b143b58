package treebank

import "time"

// Stage describes a phase of loading one file.
type Stage string

const (
	// StageRead is reading the file from disk.
	StageRead Stage = "read"
	// StageCache is the tree cache lookup.
	StageCache Stage = "cache"
	// StageParse is parsing of the lines.
	StageParse Stage = "parse"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file is done.
	StatusDone Status = "done"
	// StatusError indicates loading failed.
	StatusError Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Trees   int
	Cached  bool
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func (o Options) emit(evt Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(evt)
	}
}
