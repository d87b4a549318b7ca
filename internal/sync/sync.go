// Package sync moves profile documents between the project's settings
// files and a runtime index, validating on both boundaries.
package sync

import (
	"fmt"
	"log/slog"

	"github.com/fierclash/profilekit/internal/config"
	"github.com/fierclash/profilekit/internal/docstore"
	"github.com/fierclash/profilekit/internal/profiles"
)

// Locator resolves asset GUIDs to project paths and registers new assets.
// *assets.Database implements it.
type Locator interface {
	GUIDToPath(guid string) (string, bool)
	Import(path string) (string, error)
}

// Paths locates one tool's files.
type Paths struct {
	// Pointer is the config.json naming the settings document by GUID.
	Pointer string
	// DefaultSettings is where the settings document is created when the
	// pointer does not resolve.
	DefaultSettings string
}

// Synchronizer loads and saves the settings document of one profile kind.
type Synchronizer[T any, PT profiles.Entry[T]] struct {
	store  *docstore.Store
	assets Locator
	paths  Paths
	opts   profiles.Options
	logger *slog.Logger
}

// New returns a Synchronizer. opts configures the indexes it builds and the
// validation it runs; opts.Logger is used for its own logging as well.
func New[T any, PT profiles.Entry[T]](store *docstore.Store, assets Locator, paths Paths, opts profiles.Options) *Synchronizer[T, PT] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer[T, PT]{
		store:  store,
		assets: assets,
		paths:  paths,
		opts:   opts,
		logger: logger,
	}
}

// readPointer returns the pointer document, creating an empty one when it
// is missing or unreadable.
func (s *Synchronizer[T, PT]) readPointer() (config.Pointer, error) {
	var ptr config.Pointer
	ok, err := s.store.Read(s.paths.Pointer, &ptr)
	if err != nil {
		return config.Pointer{}, err
	}
	if ok {
		return ptr, nil
	}
	ptr = config.Pointer{}
	if err := s.store.Write(s.paths.Pointer, ptr, true); err != nil {
		return config.Pointer{}, fmt.Errorf("creating pointer: %w", err)
	}
	s.logger.Debug("created pointer", "path", s.paths.Pointer)
	return ptr, nil
}

// ReadStore reads the settings document through the pointer and returns it
// with the path it lives at. When the pointer does not name a readable
// document, a document at the default path is adopted, or an empty one is
// created there, and the pointer is updated to its GUID.
func (s *Synchronizer[T, PT]) ReadStore() (*profiles.Document[T, PT], string, error) {
	ptr, err := s.readPointer()
	if err != nil {
		return nil, "", err
	}

	if p, ok := s.assets.GUIDToPath(ptr.SettingsGUID); ok {
		doc := profiles.NewDocument[T, PT]()
		found, err := s.store.Read(p, doc)
		if err != nil {
			return nil, "", err
		}
		if found {
			return doc, p, nil
		}
		s.logger.Debug("settings document unreadable", "path", p)
	}
	return s.bootstrap(ptr)
}

func (s *Synchronizer[T, PT]) bootstrap(ptr config.Pointer) (*profiles.Document[T, PT], string, error) {
	p := s.paths.DefaultSettings
	doc := profiles.NewDocument[T, PT]()
	found, err := s.store.Read(p, doc)
	if err != nil {
		return nil, "", err
	}
	if !found {
		doc = profiles.NewDocument[T, PT]()
		if err := s.store.Write(p, doc, true); err != nil {
			return nil, "", fmt.Errorf("creating settings: %w", err)
		}
		s.logger.Debug("created settings document", "path", p)
	}

	g, err := s.assets.Import(p)
	if err != nil {
		return nil, "", fmt.Errorf("registering settings: %w", err)
	}
	if g != ptr.SettingsGUID {
		ptr.SettingsGUID = g
		if err := s.store.Write(s.paths.Pointer, ptr, true); err != nil {
			return nil, "", fmt.Errorf("updating pointer: %w", err)
		}
	}
	return doc, p, nil
}

// Load reads and validates the settings document and builds an index from
// it.
func (s *Synchronizer[T, PT]) Load() (*profiles.Index[T, PT], error) {
	doc, _, err := s.ReadStore()
	if err != nil {
		s.logger.Error("loading settings", "error", err)
		return nil, err
	}
	profiles.ValidateDocument(doc, s.opts)
	ix := profiles.NewIndex[T, PT](s.opts)
	ix.Load(doc)
	return ix, nil
}

// Save validates ix, re-reads the settings document, replaces its profiles
// with the index's projection and writes it back. Fields of the document
// other than the profile list are kept as found on disk. On failure the
// error is logged and returned; ix is left intact.
func (s *Synchronizer[T, PT]) Save(ix *profiles.Index[T, PT]) error {
	ix.Validate()

	doc, p, err := s.ReadStore()
	if err != nil {
		s.logger.Error("saving settings", "error", err)
		return err
	}
	doc.Profiles = ix.Project()
	profiles.ValidateDocument(doc, s.opts)

	if err := s.store.Write(p, doc, true); err != nil {
		s.logger.Error("saving settings", "path", p, "error", err)
		return err
	}
	s.logger.Debug("saved settings", "path", p, "profiles", len(doc.Profiles))
	return nil
}
