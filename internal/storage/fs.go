package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// FSStorage reads fixtures from a file system, either a local directory or the embedded defaults
type FSStorage struct {
	fsys fs.FS
	name string
}

// Ensure FSStorage implements StorageInterface
var _ StorageInterface = (*FSStorage)(nil)

// NewFSStorage wraps an fs.FS
func NewFSStorage(fsys fs.FS, name string) *FSStorage {
	return &FSStorage{fsys: fsys, name: name}
}

// NewDirStorage creates a storage rooted at a local directory
func NewDirStorage(dir string) (*FSStorage, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return NewFSStorage(os.DirFS(dir), "file"), nil
}

func (s *FSStorage) Name() string {
	return s.name
}

// Retrieve reads a fixture by name
func (s *FSStorage) Retrieve(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := path.Clean(name)
	if !fs.ValidPath(clean) {
		return nil, fmt.Errorf("invalid fixture name %q", name)
	}

	data, err := fs.ReadFile(s.fsys, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
	}

	return data, nil
}
