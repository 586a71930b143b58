package trace

import "sync/atomic"

// Progress counts loaded files and parsed lines of one run.
type Progress struct {
	files   atomic.Int64
	lines   atomic.Int64
	current atomic.Pointer[string]
}

// EnterFile marks path as the file being loaded.
func (p *Progress) EnterFile(path string) {
	if p == nil {
		return
	}
	p.files.Add(1)
	p.current.Store(&path)
}

// LineDone counts one parsed line, successful or not.
func (p *Progress) LineDone() {
	if p == nil {
		return
	}
	p.lines.Add(1)
}

// Snapshot returns the current file and the counters so far.
func (p *Progress) Snapshot() (file string, files, lines int64) {
	if p == nil {
		return "", 0, 0
	}
	if cur := p.current.Load(); cur != nil {
		file = *cur
	}
	return file, p.files.Load(), p.lines.Load()
}
