// Package importer holds the spreadsheet import profile kind: which
// Google Sheets document to download, which sheets, and where the CSV
// artifacts go.
package importer

import (
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fierclash/profilekit/internal/gsheets"
	"github.com/fierclash/profilekit/internal/profiles"
)

// Profile is one import target. Its references are sheet names.
type Profile struct {
	GUID        string       `json:"profileGUID"`
	Name        string       `json:"profileName"`
	SheetsID    string       `json:"googleSheetsID"`
	AssetPath   string       `json:"assetPath"`
	AssetPrefix string       `json:"assetPrefix"`
	Sheets      []string     `json:"sheets"`
	Mode        gsheets.Mode `json:"importMode"`
}

func (p *Profile) ID() string                 { return p.GUID }
func (p *Profile) SetID(id string)            { p.GUID = id }
func (p *Profile) DisplayName() string        { return p.Name }
func (p *Profile) SetDisplayName(name string) { p.Name = name }
func (p *Profile) Refs() []string             { return p.Sheets }
func (p *Profile) SetRefs(refs []string)      { p.Sheets = refs }

// Reset makes p an empty profile named profiles.PlaceholderName.
func (p *Profile) Reset(id string) {
	*p = Profile{GUID: id, Name: profiles.PlaceholderName, Sheets: []string{}, Mode: gsheets.ModeNone}
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	c := *p
	if p.Sheets != nil {
		c.Sheets = slices.Clone(p.Sheets)
	}
	return &c
}

// Job snapshots p for the executor.
func (p *Profile) Job() gsheets.Job {
	return gsheets.Job{
		DocID:     p.SheetsID,
		AssetPath: p.AssetPath,
		Prefix:    p.AssetPrefix,
		Sheets:    profiles.CopyRefs(p.Sheets),
		Mode:      p.Mode,
	}
}

type (
	Index    = profiles.Index[Profile, *Profile]
	Document = profiles.Document[Profile, *Profile]
)

// SheetResolver accepts every sheet name that is not blank. Whether a sheet
// exists is only known when it is downloaded.
var SheetResolver = profiles.ResolverFunc(func(ref string) (profiles.Descriptor, bool) {
	if strings.TrimSpace(ref) == "" {
		return profiles.Descriptor{}, false
	}
	return profiles.Descriptor{Name: ref}, true
})

// Options returns the engine options for import profiles. Sheet lists may
// repeat a name.
func Options(logger *slog.Logger) profiles.Options {
	return profiles.Options{Resolver: SheetResolver, Logger: logger}
}

// NewIndex returns an empty import profile index.
func NewIndex(logger *slog.Logger) *Index {
	return profiles.NewIndex[Profile, *Profile](Options(logger))
}

// SetDocID sets the selected profile's spreadsheet identifier.
func SetDocID(ix *Index, docID string) bool {
	return ix.EditSelected(func(p *Profile) { p.SheetsID = strings.TrimSpace(docID) })
}

// SetAssetPath sets the selected profile's output folder. Absolute folders
// inside the project's Assets folder are stored project-relative.
func SetAssetPath(ix *Index, projectRoot, assetPath string) bool {
	rel := RelativeAssetPath(projectRoot, assetPath)
	return ix.EditSelected(func(p *Profile) { p.AssetPath = rel })
}

// SetAssetPrefix sets the prefix prepended to artifact file names.
func SetAssetPrefix(ix *Index, prefix string) bool {
	return ix.EditSelected(func(p *Profile) { p.AssetPrefix = prefix })
}

// SetSheets replaces the selected profile's sheet list.
func SetSheets(ix *Index, sheets []string) bool {
	return ix.EditSelected(func(p *Profile) { p.Sheets = profiles.CopyRefs(sheets) })
}

// SetMode sets the selected profile's import mode.
func SetMode(ix *Index, m gsheets.Mode) bool {
	return ix.EditSelected(func(p *Profile) { p.Mode = m })
}

// RelativeAssetPath rewrites an absolute folder under <projectRoot>/Assets
// as "Assets/<rel>/". Other paths are returned slash-separated but
// otherwise unchanged.
func RelativeAssetPath(projectRoot, assetPath string) string {
	if assetPath == "" || !filepath.IsAbs(assetPath) {
		return filepath.ToSlash(assetPath)
	}
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return filepath.ToSlash(assetPath)
	}
	dataPath := filepath.Join(root, "Assets")
	clean := filepath.Clean(assetPath)
	if clean != dataPath && !strings.HasPrefix(clean, dataPath+string(filepath.Separator)) {
		return filepath.ToSlash(assetPath)
	}
	rel := filepath.ToSlash(strings.TrimPrefix(clean, dataPath))
	return "Assets" + rel + "/"
}
