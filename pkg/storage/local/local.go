// Package local implements a blob store on the local filesystem. Blobs
// are addressed by an opaque name and kept flat under one directory.
package local

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store reads and writes blobs under a single root directory.
type Store struct {
	root string
}

// New prepares the root directory and returns a store over it.
func New(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	return &Store{root: root}, nil
}

// Save streams the reader into a blob. The name must not contain path
// separators; writes go through a temp file so readers never see a
// partial blob.
func (s *Store) Save(name string, r io.Reader) (int64, error) {
	path, err := s.blobPath(name)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("writing blob: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("placing blob: %w", err)
	}
	return written, nil
}

// Open returns a reader over the blob. The caller closes it.
func (s *Store) Open(name string) (io.ReadCloser, error) {
	path, err := s.blobPath(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("opening blob: %w", err)
	}
	return f, nil
}

// Exists reports whether the blob is present.
func (s *Store) Exists(name string) (bool, error) {
	path, err := s.blobPath(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the blob. Deleting a missing blob is not an error.
func (s *Store) Delete(name string) error {
	path, err := s.blobPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting blob: %w", err)
	}
	return nil
}

func (s *Store) blobPath(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("blob name is required")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	return filepath.Join(s.root, name), nil
}
