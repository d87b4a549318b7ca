// Package assets is a small asset database for a Unity-style project tree.
// Every asset under Assets/ or Packages/ has a sibling ".meta" YAML file
// carrying its GUID; the database maps GUIDs to project-relative paths and
// back, and creates meta files for newly written assets.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/fierclash/profilekit/internal/guid"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// Roots are the top-level folders scanned for assets.
var Roots = []string{"Assets", "Packages"}

const metaExt = ".meta"

// ErrOutsideRoots is returned when importing a path that is not under one
// of the scanned roots.
var ErrOutsideRoots = errors.New("path is outside the asset roots")

// meta is the part of a .meta file the database reads and writes.
type meta struct {
	FileFormatVersion int    `yaml:"fileFormatVersion"`
	GUID              string `yaml:"guid"`
	FolderAsset       string `yaml:"folderAsset,omitempty"`
}

// Database maps asset GUIDs to slash-separated, project-relative paths.
// It is not safe for concurrent use.
type Database struct {
	fs     afero.Fs
	logger *slog.Logger

	byGUID map[string]string
	byPath map[string]string
}

// Open scans the project filesystem and returns a populated database.
func Open(fsys afero.Fs, logger *slog.Logger) (*Database, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db := &Database{fs: fsys, logger: logger}
	if err := db.Refresh(); err != nil {
		return nil, err
	}
	return db, nil
}

// Refresh rebuilds the GUID tables from the meta files on disk.
func (db *Database) Refresh() error {
	db.byGUID = make(map[string]string)
	db.byPath = make(map[string]string)

	for _, root := range Roots {
		err := afero.Walk(db.fs, root, func(p string, info fs.FileInfo, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) && p == root {
					return fs.SkipDir
				}
				return err
			}
			if info.IsDir() || !strings.HasSuffix(p, metaExt) {
				return nil
			}
			db.index(toSlash(p))
			return nil
		})
		if err != nil && !errors.Is(err, fs.SkipDir) {
			return fmt.Errorf("scanning %s: %w", root, err)
		}
	}
	db.logger.Debug("asset database refreshed", "assets", len(db.byGUID))
	return nil
}

func (db *Database) index(metaPath string) {
	asset := strings.TrimSuffix(metaPath, metaExt)
	if ok, _ := afero.Exists(db.fs, asset); !ok {
		return
	}
	m, err := db.readMeta(metaPath)
	if err != nil {
		db.logger.Debug("skipping meta file", "path", metaPath, "error", err)
		return
	}
	if prev, dup := db.byGUID[m.GUID]; dup {
		db.logger.Warn("duplicate asset guid", "guid", m.GUID, "kept", prev, "ignored", asset)
		return
	}
	db.byGUID[m.GUID] = asset
	db.byPath[asset] = m.GUID
}

func (db *Database) readMeta(p string) (meta, error) {
	data, err := afero.ReadFile(db.fs, p)
	if err != nil {
		return meta{}, err
	}
	var m meta
	if err := yaml.Unmarshal(data, &m); err != nil {
		return meta{}, fmt.Errorf("parsing meta: %w", err)
	}
	if m.GUID == "" {
		return meta{}, errors.New("meta has no guid")
	}
	return m, nil
}

// GUIDToPath returns the path of the asset with the given GUID.
func (db *Database) GUIDToPath(g string) (string, bool) {
	p, ok := db.byGUID[g]
	if !ok {
		return "", false
	}
	if exists, _ := afero.Exists(db.fs, p); !exists {
		return "", false
	}
	return p, true
}

// PathToGUID returns the GUID of the asset at p.
func (db *Database) PathToGUID(p string) (string, bool) {
	g, ok := db.byPath[Clean(p)]
	return g, ok
}

// Exists reports whether an asset file or folder exists at p.
func (db *Database) Exists(p string) bool {
	ok, err := afero.Exists(db.fs, Clean(p))
	return err == nil && ok
}

// Import registers the asset at p, writing meta files for it and for any
// parent folder that lacks one, and returns its GUID. Importing a known
// asset returns its existing GUID.
func (db *Database) Import(p string) (string, error) {
	p = Clean(p)
	if !underRoots(p) {
		return "", fmt.Errorf("importing %s: %w", p, ErrOutsideRoots)
	}
	if !db.Exists(p) {
		return "", fmt.Errorf("importing %s: %w", p, fs.ErrNotExist)
	}
	for dir := path.Dir(p); underRoots(dir); dir = path.Dir(dir) {
		if _, err := db.ensureMeta(dir, true); err != nil {
			return "", err
		}
	}
	return db.ensureMeta(p, false)
}

func (db *Database) ensureMeta(p string, folder bool) (string, error) {
	if g, ok := db.byPath[p]; ok {
		return g, nil
	}
	metaPath := p + metaExt
	if m, err := db.readMeta(metaPath); err == nil {
		db.byGUID[m.GUID] = p
		db.byPath[p] = m.GUID
		return m.GUID, nil
	}

	m := meta{FileFormatVersion: 2, GUID: guid.NewAssetGUID()}
	if folder {
		m.FolderAsset = "yes"
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding meta for %s: %w", p, err)
	}
	if err := afero.WriteFile(db.fs, metaPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing meta for %s: %w", p, err)
	}
	db.byGUID[m.GUID] = p
	db.byPath[p] = m.GUID
	db.logger.Debug("imported asset", "path", p, "guid", m.GUID)
	return m.GUID, nil
}

// Asset is one entry of the database.
type Asset struct {
	GUID string
	Path string
}

// Find returns the existing assets whose path ends in ext, sorted by path.
func (db *Database) Find(ext string) []Asset {
	var out []Asset
	for p, g := range db.byPath {
		if !strings.EqualFold(path.Ext(p), ext) || !db.Exists(p) {
			continue
		}
		out = append(out, Asset{GUID: g, Path: p})
	}
	slices.SortFunc(out, func(a, b Asset) int { return strings.Compare(a.Path, b.Path) })
	return out
}

// Len returns the number of known assets.
func (db *Database) Len() int {
	return len(db.byGUID)
}

// Clean normalizes an asset path to slash-separated project-relative form.
func Clean(p string) string {
	return strings.TrimPrefix(path.Clean(toSlash(p)), "./")
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// underRoots reports whether p is strictly inside one of the roots.
func underRoots(p string) bool {
	for _, root := range Roots {
		if strings.HasPrefix(p, root+"/") {
			return true
		}
	}
	return false
}
