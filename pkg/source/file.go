package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/notewerk/blocktree/pkg/block"
)

// FileSource serves graphs from a directory of JSON files. The document
// ID is the file name without its .json extension; subdirectories are
// not scanned.
type FileSource struct {
	dir string
}

// NewFileSource creates a source over dir. The directory must exist.
func NewFileSource(dir string) (*FileSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &FileSource{dir: dir}, nil
}

// List returns the IDs of all .json files in the directory, sorted.
func (s *FileSource) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads and decodes one graph file.
func (s *FileSource) Load(_ context.Context, id string) (block.Graph, error) {
	// Reject IDs that would escape the directory.
	if id != filepath.Base(id) || id == "." || id == ".." {
		return nil, ErrNotFound
	}

	path := filepath.Join(s.dir, id+".json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return block.ReadGraphFile(path)
}

var _ Source = (*FileSource)(nil)
