// Package filestore keeps uploaded files under a single directory.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrInvalidName is returned for names that would escape the store directory.
var ErrInvalidName = errors.New("invalid file name")

// Store reads and writes files inside dir on fs.
type Store struct {
	fs  afero.Fs
	dir string
}

// New creates a Store rooted at dir on the OS filesystem, creating dir if needed.
func New(dir string) (*Store, error) {
	return NewWithFs(afero.NewOsFs(), dir)
}

// NewWithFs creates a Store on an arbitrary afero filesystem.
func NewWithFs(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{fs: fs, dir: dir}, nil
}

// Path returns the full path of name inside the store.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Save streams r into name, replacing any existing file. When the copy fails
// the partial file is removed before the error is returned.
func (s *Store) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	if err := s.checkName(name); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f, err := s.fs.OpenFile(s.Path(name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", name, err)
	}

	n, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = s.fs.Remove(s.Path(name))
		return n, fmt.Errorf("failed to write %s: %w", name, copyErr)
	}

	return n, nil
}

// Exists reports whether name is present in the store.
func (s *Store) Exists(name string) (bool, error) {
	if err := s.checkName(name); err != nil {
		return false, err
	}
	return afero.Exists(s.fs, s.Path(name))
}

// Remove deletes name. A missing file is not an error.
func (s *Store) Remove(name string) error {
	if err := s.checkName(name); err != nil {
		return err
	}
	if err := s.fs.Remove(s.Path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

// Open returns a reader for name.
func (s *Store) Open(name string) (afero.File, error) {
	if err := s.checkName(name); err != nil {
		return nil, err
	}
	return s.fs.Open(s.Path(name))
}
