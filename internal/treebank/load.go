package treebank

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"treespan/internal/diag"
	"treespan/internal/parser"
	"treespan/internal/source"
	"treespan/internal/trace"
	"treespan/internal/tree"
)

// Load parses every line of the file at path.
func Load(ctx context.Context, path string, opts Options) (*Corpus, error) {
	if opts.FileSet == nil {
		opts.FileSet = source.NewFileSet()
	}
	return load(ctx, path, opts)
}

// LoadDir loads every file under dir whose extension matches, in sorted
// path order. The first failing file stops the walk.
func LoadDir(ctx context.Context, dir string, opts Options) ([]*Corpus, error) {
	files, err := ListFiles(dir, opts.extensions())
	if err != nil {
		return nil, err
	}
	if opts.FileSet == nil {
		opts.FileSet = source.NewFileSetWithBase(dir)
	}
	for _, f := range files {
		opts.emit(Event{File: f, Stage: StageRead, Status: StatusQueued})
	}

	out := make([]*Corpus, 0, len(files))
	for _, f := range files {
		c, err := load(ctx, f, opts)
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ListFiles возвращает отсортированный список файлов трибанка в директории.
func ListFiles(dir string, exts []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

func load(ctx context.Context, path string, opts Options) (*Corpus, error) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "load", trace.Loc{File: path})
	trace.ProgressFrom(ctx).EnterFile(path)
	started := time.Now()

	opts.emit(Event{File: path, Stage: StageRead, Status: StatusWorking})
	id, err := opts.FileSet.Load(path)
	if err != nil {
		diag.Emit(opts.Parse.Reporter, diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
		err = fmt.Errorf("load %s: %w", path, err)
		opts.emit(Event{File: path, Stage: StageRead, Status: StatusError, Err: err})
		span.End("read error")
		return nil, err
	}
	file := opts.FileSet.Get(id)

	if c, ok := lookupCache(file, opts); ok {
		c.File = file
		opts.emit(Event{File: path, Stage: StageCache, Status: StatusDone, Trees: c.Len(), Cached: true, Elapsed: time.Since(started)})
		span.Attr("trees", strconv.Itoa(c.Len())).End("cached")
		return c, nil
	}

	opts.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})
	c, err := parseFile(ctx, file, opts)
	if err != nil {
		opts.emit(Event{File: path, Stage: StageParse, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		span.End("parse error")
		return nil, err
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(opts.cacheKey(file.Content), path, c.Lines, c.Trees); err != nil {
			reportCache(opts, err)
		}
	}
	opts.emit(Event{File: path, Stage: StageParse, Status: StatusDone, Trees: c.Len(), Elapsed: time.Since(started)})
	span.Attr("trees", strconv.Itoa(c.Len())).End("")
	return c, nil
}

func lookupCache(file *source.File, opts Options) (*Corpus, bool) {
	if opts.Cache == nil {
		return nil, false
	}
	entry, ok, err := opts.Cache.Get(opts.cacheKey(file.Content))
	if err != nil {
		reportCache(opts, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &Corpus{Path: file.Path, Trees: entry.Trees, Lines: entry.Lines, Cached: true}, true
}

// reportCache: ошибки кэша не фатальны, файл просто разбирается заново.
func reportCache(opts Options, err error) {
	diag.Emit(opts.Parse.Reporter, diag.New(diag.SevWarning, diag.IOCacheError, source.Span{}, err.Error()))
}

// lineReporter buffers diagnostics of one line until the winner is known.
type lineReporter struct {
	items []diag.Diagnostic
}

func (r *lineReporter) Report(d diag.Diagnostic) {
	r.items = append(r.items, d)
}

func parseFile(ctx context.Context, file *source.File, opts Options) (*Corpus, error) {
	var work []source.Span
	var lineNos []int
	for i, sp := range file.Lines() {
		if opts.SkipBlank && strings.TrimSpace(file.Text(sp)) == "" {
			continue
		}
		work = append(work, sp)
		lineNos = append(lineNos, i+1)
	}

	c := &Corpus{Path: file.Path, File: file, Lines: lineNos}
	if len(work) == 0 {
		return c, nil
	}

	trees := make([]*tree.Node, len(work))
	errs := make([]error, len(work))
	reports := make([]*lineReporter, len(work))

	// индекс первой упавшей строки; строки правее можно не разбирать
	var firstErr atomic.Int64
	firstErr.Store(int64(len(work)))

	progress := trace.ProgressFrom(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(work)))
	for i, sp := range work {
		if int64(i) > firstErr.Load() {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if int64(i) > firstErr.Load() {
				return nil
			}
			popts := opts.Parse
			if popts.Reporter != nil {
				reports[i] = &lineReporter{}
				popts.Reporter = reports[i]
			}
			root, err := parser.ParseRange(gctx, file, sp.Start, sp.End, popts)
			progress.LineDone()
			if err != nil {
				errs[i] = err
				lowerTo(&firstErr, int64(i))
				return nil
			}
			trees[i] = root
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := int(firstErr.Load())
	forward(opts.Parse.Reporter, reports, min(failed, len(work)-1))
	if failed < len(work) {
		return nil, &LineError{Path: file.Path, Line: lineNos[failed], Err: errs[failed]}
	}
	c.Trees = trees
	return c, nil
}

func lowerTo(v *atomic.Int64, i int64) {
	for {
		cur := v.Load()
		if i >= cur || v.CompareAndSwap(cur, i) {
			return
		}
	}
}

// forward replays buffered diagnostics of lines [0, last] in file order.
func forward(r diag.Reporter, reports []*lineReporter, last int) {
	if r == nil {
		return
	}
	for _, lr := range reports[:last+1] {
		if lr == nil {
			continue
		}
		for _, d := range lr.items {
			r.Report(d)
		}
	}
}
