// Package docstore reads and writes whole JSON documents on an afero
// filesystem. Writes go through a temporary file and a rename so a
// reader never observes a partial document.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/spf13/afero"
)

// Store is a JSON document store rooted at a filesystem. Paths are
// slash-separated and interpreted relative to the filesystem root.
type Store struct {
	fs     afero.Fs
	logger *slog.Logger
}

// New returns a Store over fsys. A nil logger uses slog.Default().
func New(fsys afero.Fs, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{fs: fsys, logger: logger}
}

// Exists reports whether a file exists at p.
func (s *Store) Exists(p string) bool {
	ok, err := afero.Exists(s.fs, p)
	return err == nil && ok
}

// Read decodes the document at p into v. It returns false without an error
// when the file is missing or does not hold valid JSON for v; both are
// treated as "no document" by callers. Other read failures are returned.
func (s *Store) Read(p string, v any) (bool, error) {
	data, err := afero.ReadFile(s.fs, p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", p, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Debug("discarding malformed document", "path", p, "error", err)
		return false, nil
	}
	return true, nil
}

// Write encodes v as indented JSON and replaces the file at p. Parent
// directories are created when createDirs is set; otherwise a missing
// parent is an error.
func (s *Store) Write(p string, v any, createDirs bool) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", p, err)
	}
	data = append(data, '\n')

	dir := path.Dir(p)
	if createDirs {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", p, err)
		}
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+path.Base(p)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(name)
		return fmt.Errorf("writing %s: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(name)
		return fmt.Errorf("writing %s: %w", p, err)
	}
	if err := s.fs.Rename(name, p); err != nil {
		s.fs.Remove(name)
		return fmt.Errorf("replacing %s: %w", p, err)
	}
	return nil
}
