package treebank

import (
	"runtime"

	"treespan/internal/parser"
	"treespan/internal/source"
	"treespan/internal/treecache"
)

// DefaultExtensions are the file suffixes LoadDir picks up.
var DefaultExtensions = []string{".mrg", ".tree", ".trees", ".ptb", ".txt"}

type Options struct {
	Parse parser.Options
	// Jobs bounds concurrent line parsing; <= 0 means GOMAXPROCS.
	Jobs int
	// SkipBlank ignores whitespace-only lines instead of failing on them.
	SkipBlank bool
	// Extensions filters files in LoadDir; empty means DefaultExtensions.
	Extensions []string
	// FileSet receives loaded files; nil creates a fresh set.
	FileSet  *source.FileSet
	Cache    *treecache.Cache
	Progress ProgressSink
}

// DefaultOptions returns the options used by the CLI without a config file.
func DefaultOptions() Options {
	return Options{
		SkipBlank:  true,
		Extensions: DefaultExtensions,
	}
}

func (o Options) jobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

func (o Options) cacheKey(content []byte) treecache.Digest {
	return treecache.Key(content, treecache.KeyOptions{
		NormalizeNFC: o.Parse.NormalizeNFC,
		MaxWordLen:   o.Parse.MaxWordLen,
		SkipBlank:    o.SkipBlank,
	})
}
