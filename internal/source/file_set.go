package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every source file loaded during one compilation. FileIDs are
// stable for the FileSet's lifetime (the compilation's lifetime): nothing
// ever renumbers or evicts an entry.
type FileSet struct {
	files []File
	index map[string]FileID // absolute path -> id
}

// NewFileSet returns an empty FileSet with slot 0 reserved for NoFile.
func NewFileSet() *FileSet {
	fs := &FileSet{index: make(map[string]FileID, 16)}
	fs.files = append(fs.files, File{ID: NoFile, Path: "<builtin>"})
	return fs
}

// Load reads path from disk and registers it, returning its FileID. Loading
// the same absolute path twice returns the already-registered FileID without
// rereading the file.
func (fs *FileSet) Load(path string) (FileID, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return NoFile, fmt.Errorf("resolve path %q: %w", path, err)
	}
	if id, ok := fs.index[abs]; ok {
		return id, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return NoFile, fmt.Errorf("read %q: %w", path, err)
	}
	return fs.Add(path, abs, content)
}

// Add registers in-memory content as a file (used for stdin, tests, and
// synthetic compile units) and returns its FileID.
func (fs *FileSet) Add(path, absPath string, content []byte) (FileID, error) {
	idx, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		return NoFile, fmt.Errorf("too many source files: %w", err)
	}
	id := FileID(idx)
	fs.files = append(fs.files, newFile(id, path, absPath, content))
	if absPath != "" {
		fs.index[absPath] = id
	}
	return id, nil
}

// File returns the file registered under id. It panics on an unknown id: a
// FileID that escaped its FileSet is a compiler bug, not a user-facing error.
func (fs *FileSet) File(id FileID) *File {
	return &fs.files[id]
}

// Text returns the bytes covered by span, delegating to the owning File.
func (fs *FileSet) Text(span Span) []byte {
	return fs.File(span.File).Text(span)
}

// Position converts a span's start offset to a human-facing line/column in
// its owning file.
func (fs *FileSet) Position(span Span) Position {
	return fs.File(span.File).PositionFor(span.Start)
}
