// Package project locates a Unity project on disk.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// ErrNotFound is returned by FindRoot when no parent directory is a project
// root.
var ErrNotFound = errors.New("no Unity project found")

// VersionFile records the editor version a project was last opened with.
const VersionFile = "ProjectSettings/ProjectVersion.txt"

type versionFile struct {
	EditorVersion string `yaml:"m_EditorVersion"`
}

// IsRoot reports whether dir holds both an Assets and a ProjectSettings
// directory.
func IsRoot(fsys afero.Fs, dir string) bool {
	for _, sub := range []string{"Assets", "ProjectSettings"} {
		ok, err := afero.DirExists(fsys, filepath.Join(dir, sub))
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// FindRoot walks up from dir to the nearest project root.
func FindRoot(fsys afero.Fs, dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if IsRoot(fsys, dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// EditorVersion returns the editor version recorded under root, or "" when
// the project has no version file.
func EditorVersion(fsys afero.Fs, root string) (string, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(root, VersionFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	var v versionFile
	if err := yaml.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("parsing %s: %w", VersionFile, err)
	}
	return v.EditorVersion, nil
}
