// Package store persists cache artifacts as individual files under a
// single directory on a billy filesystem.
package store

import (
	"errors"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// Store is a flat, file-per-artifact byte store rooted at a directory.
//
// Artifact names are opaque identifiers chosen by the caller; the
// store maps each to one regular file directly under its directory.
type Store struct {
	fs  billy.Filesystem
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(fs billy.Filesystem, dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("store dir is empty")
	}
	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		return nil, err
	}
	return &Store{fs: fs, dir: dir}, nil
}

func (s *Store) path(name string) string {
	return s.fs.Join(s.dir, name)
}

// Write persists an artifact by running fill against its destination.
//
// In overwrite mode the artifact is written to a temporary file and
// renamed into place, so a failed fill never replaces existing
// content. In append mode bytes are appended directly to the artifact,
// creating it if absent.
func (s *Store) Write(name string, appendMode bool, fill func(io.Writer) error) error {
	if appendMode {
		f, err := s.fs.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_APPEND, filePerm)
		if err != nil {
			return err
		}
		if err := fill(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	tmp, err := s.fs.TempFile(s.dir, "tmp-")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := fill(tmp); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpPath)
		return err
	}
	if err := s.fs.Rename(tmpPath, s.path(name)); err != nil {
		_ = s.fs.Remove(tmpPath)
		return err
	}
	return nil
}

// Move relocates the file at src into the store under name.
//
// Rename is attempted first; when it fails (for example across
// devices), the content is copied and the source removed.
func (s *Store) Move(src, name string) error {
	if err := s.fs.Rename(src, s.path(name)); err == nil {
		return nil
	}

	in, err := s.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	err = s.Write(name, false, func(w io.Writer) error {
		_, cerr := io.Copy(w, in)
		return cerr
	})
	if err != nil {
		return err
	}
	return s.fs.Remove(src)
}

// Size returns the artifact's size in bytes.
func (s *Store) Size(name string) (int64, error) {
	info, err := s.fs.Stat(s.path(name))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ReadAll returns the artifact's full content.
func (s *Store) ReadAll(name string) ([]byte, error) {
	f, err := s.fs.Open(s.path(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Open returns a reader over the artifact.
func (s *Store) Open(name string) (io.ReadCloser, error) {
	return s.fs.Open(s.path(name))
}

// Remove deletes the artifact.
func (s *Store) Remove(name string) error {
	return s.fs.Remove(s.path(name))
}

// Clear removes everything under the store directory, keeping the
// directory itself. Removal continues past individual failures; the
// first error is returned.
func (s *Store) Clear() error {
	infos, err := s.fs.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var firstErr error
	for _, info := range infos {
		if err := util.RemoveAll(s.fs, s.fs.Join(s.dir, info.Name())); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Destroy removes the store directory and all of its contents.
func (s *Store) Destroy() error {
	return util.RemoveAll(s.fs, s.dir)
}
