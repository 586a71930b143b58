package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every treebank file read during one run. FileIDs index into
// it, so a Span can be turned back into text and a line:col position.
type FileSet struct {
	files   []File
	baseDir string // относительно неё печатаются пути в диагностиках
}

func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase: baseDir - обычно каталог, переданный в CLI.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{baseDir: baseDir}
}

// BaseDir returns the base directory, falling back to the working directory.
func (s *FileSet) BaseDir() string {
	if s.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return s.baseDir
}

func (s *FileSet) Len() int { return len(s.files) }

// Add registers already decoded content. Adding the same path twice yields
// two independent files.
func (s *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(s.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	s.files = append(s.files, File{
		ID:      FileID(n),
		Path:    filepath.ToSlash(filepath.Clean(path)),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return FileID(n)
}

// Load reads path from disk; a BOM is dropped and CRLF folded to LF, with
// both recorded in the file's flags.
func (s *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := decode(raw)
	return s.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file (tests, stdin) flagged FileVirtual.
func (s *FileSet) AddVirtual(name string, content []byte) FileID {
	return s.Add(name, content, FileVirtual)
}

func (s *FileSet) Get(id FileID) *File {
	return &s.files[id]
}

// Resolve converts both ends of span into line:col positions.
func (s *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &s.files[span.File]
	return f.Position(span.Start), f.Position(span.End)
}
