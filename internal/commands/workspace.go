package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fierclash/profilekit/internal/assets"
	"github.com/fierclash/profilekit/internal/config"
	"github.com/fierclash/profilekit/internal/docstore"
	"github.com/fierclash/profilekit/internal/importer"
	"github.com/fierclash/profilekit/internal/paths"
	"github.com/fierclash/profilekit/internal/project"
	"github.com/fierclash/profilekit/internal/scenemenu"
	csync "github.com/fierclash/profilekit/internal/sync"
	"github.com/spf13/afero"
)

// Workspace is one opened Unity project. Every command loads the settings
// it needs, applies one change and saves it back.
type Workspace struct {
	Settings config.Settings
	FS       afero.Fs
	Store    *docstore.Store
	Assets   *assets.Database
	Logger   *slog.Logger
}

// Open opens the project named by settings.Project on the host filesystem.
// A directory inside a project opens the enclosing project; a directory that
// is not in any project is used as the root as it is.
func Open(settings config.Settings, logger *slog.Logger) (*Workspace, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := filepath.Abs(settings.Project)
	if err != nil {
		return nil, fmt.Errorf("opening project: %w", err)
	}
	settings.Project = dir
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening project: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening project: %s is not a directory", settings.Project)
	}

	osfs := afero.NewOsFs()
	root, err := project.FindRoot(osfs, dir)
	switch {
	case errors.Is(err, project.ErrNotFound):
		logger.Warn("no Unity project found, using directory as project root", "dir", dir)
	case err != nil:
		return nil, fmt.Errorf("opening project: %w", err)
	default:
		settings.Project = root
	}
	return NewWorkspace(afero.NewBasePathFs(osfs, settings.Project), settings, logger)
}

// NewWorkspace opens a project rooted at fsys.
func NewWorkspace(fsys afero.Fs, settings config.Settings, logger *slog.Logger) (*Workspace, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := assets.Open(fsys, logger)
	if err != nil {
		return nil, fmt.Errorf("opening asset database: %w", err)
	}
	return &Workspace{
		Settings: settings,
		FS:       fsys,
		Store:    docstore.New(fsys, logger),
		Assets:   db,
		Logger:   logger,
	}, nil
}

func (w *Workspace) toolPaths(tool paths.Tool) csync.Paths {
	return csync.Paths{
		Pointer:         paths.PointerFile(tool, w.Settings.Developer),
		DefaultSettings: paths.DefaultSettingsFile(tool),
	}
}

func (w *Workspace) sheetSync() *csync.Synchronizer[importer.Profile, *importer.Profile] {
	return csync.New[importer.Profile, *importer.Profile](w.Store, w.Assets, w.toolPaths(paths.CSVImporter), importer.Options(w.Logger))
}

// BuildSettings returns the project's build scene list source.
func (w *Workspace) BuildSettings() scenemenu.BuildSettings {
	return scenemenu.BuildSettings{FS: w.FS, Path: paths.BuildSettingsFile(), Assets: w.Assets}
}

func (w *Workspace) sceneSync() *csync.Synchronizer[scenemenu.Profile, *scenemenu.Profile] {
	opts := scenemenu.Options(w.Assets, w.BuildSettings(), w.Logger)
	return csync.New[scenemenu.Profile, *scenemenu.Profile](w.Store, w.Assets, w.toolPaths(paths.SceneMenu), opts)
}

// Info summarizes an opened project.
type Info struct {
	Root          string
	EditorVersion string
	Assets        int
	Pointers      map[paths.Tool]string
}

// ProjectInfo describes w.
func ProjectInfo(w *Workspace) (*Info, error) {
	version, err := project.EditorVersion(w.FS, ".")
	if err != nil {
		return nil, err
	}
	info := &Info{
		Root:          w.Settings.Project,
		EditorVersion: version,
		Assets:        w.Assets.Len(),
		Pointers:      make(map[paths.Tool]string),
	}
	for _, tool := range []paths.Tool{paths.CSVImporter, paths.SceneMenu} {
		info.Pointers[tool] = paths.ProjectFile(info.Root, paths.PointerFile(tool, w.Settings.Developer))
	}
	return info, nil
}
