package gamedata

import (
	"fmt"
	"os"
	"path/filepath"
)

// Source supplies the raw export bytes. Consumers depend on this interface
// rather than the file system directly to keep loading testable.
type Source interface {
	Read() ([]byte, error)
}

// FileSource reads the export from a local file.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the given path. The file must exist.
func NewFileSource(path string) (*FileSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("gamedata: resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("gamedata: stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("gamedata: %s is a directory", abs)
	}
	return &FileSource{path: abs}, nil
}

// Read returns the current file contents.
func (s *FileSource) Read() ([]byte, error) {
	return os.ReadFile(s.path)
}

// Path returns the absolute path of the data file.
func (s *FileSource) Path() string {
	return s.path
}
