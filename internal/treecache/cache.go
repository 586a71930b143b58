package treecache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"treespan/internal/tree"
)

// Cache хранит разобранные файлы трибанка на диске по Digest.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Entry is one cached treebank file.
type Entry struct {
	Path  string
	Lines []int // 1-based source line of every tree
	Trees []*tree.Node
}

// Open initializes a cache at the standard location for app.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenAt(filepath.Join(base, app))
}

// OpenAt initializes a cache rooted at dir.
func OpenAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("treecache: %w", err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "trees", key.String()+".mp")
}

// Put serializes trees and atomically writes them under key.
func (c *Cache) Put(key Digest, path string, lines []int, trees []*tree.Node) error {
	if c == nil {
		return nil
	}
	if len(lines) != len(trees) {
		return fmt.Errorf("treecache: %d lines for %d trees", len(lines), len(trees))
	}
	p := payload{
		Schema: schemaVersion,
		Path:   path,
		Lines:  lines,
		Trees:  make([]flatTree, len(trees)),
	}
	for i, t := range trees {
		ft, err := flatten(t)
		if err != nil {
			return fmt.Errorf("treecache: tree %d: %w", i, err)
		}
		p.Trees[i] = ft
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(target), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&p); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads the entry for key. Missing entries and entries written by another
// schema version are misses, not errors.
func (c *Cache) Get(key Digest) (*Entry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, false, fmt.Errorf("treecache: decode %s: %w", key, err)
	}
	if p.Schema != schemaVersion {
		return nil, false, nil
	}
	if len(p.Lines) != len(p.Trees) {
		return nil, false, errCorrupt
	}
	entry := &Entry{Path: p.Path, Lines: p.Lines, Trees: make([]*tree.Node, len(p.Trees))}
	for i, ft := range p.Trees {
		root, err := ft.build()
		if err != nil {
			return nil, false, fmt.Errorf("treecache: tree %d: %w", i, err)
		}
		entry.Trees[i] = root
	}
	return entry, true, nil
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим целиком
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
