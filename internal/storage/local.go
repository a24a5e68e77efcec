package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// LocalStore writes uploads to the local filesystem.
type LocalStore struct{}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates a filesystem store.
func NewLocalStore() *LocalStore {
	return &LocalStore{}
}

// Save streams r into loc, refusing to overwrite an existing file.
func (s *LocalStore) Save(ctx context.Context, loc Location, r io.ReadSeeker, size int64, contentType string) error {
	if err := os.MkdirAll(loc.Dir, 0o750); err != nil {
		return fmt.Errorf("mkdir %s: %w", loc.Dir, err)
	}

	f, err := os.OpenFile(loc.Path(), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return fmt.Errorf("create %s: %w", loc.Path(), err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(loc.Path())
		return fmt.Errorf("write %s: %w", loc.Path(), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(loc.Path())
		return fmt.Errorf("close %s: %w", loc.Path(), err)
	}
	return nil
}

// Remove deletes the file at loc. A missing file is not an error.
func (s *LocalStore) Remove(ctx context.Context, loc Location) error {
	if err := os.Remove(loc.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", loc.Path(), err)
	}
	return nil
}
