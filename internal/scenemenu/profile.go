// Package scenemenu holds the scene profile kind: named scene lists that
// reference scene assets by GUID, plus a read-only "Build Settings"
// profile mirroring the project's build scene list.
package scenemenu

import (
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/fierclash/profilekit/internal/profiles"
)

// BuildSettingsName names the profile mirroring the build scene list.
const BuildSettingsName = "Build Settings"

// SceneExt is the extension of scene assets.
const SceneExt = ".unity"

// Profile is a named list of scene asset GUIDs.
type Profile struct {
	GUID   string   `json:"profileGUID"`
	Name   string   `json:"profileName"`
	Scenes []string `json:"sceneGUIDs"`
}

func (p *Profile) ID() string                 { return p.GUID }
func (p *Profile) SetID(id string)            { p.GUID = id }
func (p *Profile) DisplayName() string        { return p.Name }
func (p *Profile) SetDisplayName(name string) { p.Name = name }
func (p *Profile) Refs() []string             { return p.Scenes }
func (p *Profile) SetRefs(refs []string)      { p.Scenes = refs }

func (p *Profile) Reset(id string) {
	*p = Profile{GUID: id, Name: profiles.PlaceholderName, Scenes: []string{}}
}

func (p *Profile) Clone() *Profile {
	c := *p
	if p.Scenes != nil {
		c.Scenes = slices.Clone(p.Scenes)
	}
	return &c
}

type (
	Index    = profiles.Index[Profile, *Profile]
	Document = profiles.Document[Profile, *Profile]
)

// Locator maps scene GUIDs to project paths. *assets.Database implements it.
type Locator interface {
	GUIDToPath(guid string) (string, bool)
	PathToGUID(path string) (string, bool)
}

// SceneResolver resolves scene GUIDs to their path and scene name. GUIDs
// of assets that are not scenes do not resolve.
type SceneResolver struct {
	Assets Locator
}

// Resolve implements profiles.Resolver.
func (r SceneResolver) Resolve(ref string) (profiles.Descriptor, bool) {
	p, ok := r.Assets.GUIDToPath(ref)
	if !ok || !strings.EqualFold(path.Ext(p), SceneExt) {
		return profiles.Descriptor{}, false
	}
	return profiles.Descriptor{
		Name: strings.TrimSuffix(path.Base(p), path.Ext(p)),
		Path: p,
	}, true
}

// Options returns the engine options for scene profiles. Scene lists never
// repeat a scene, and build is the source of the Build Settings profile.
func Options(assets Locator, build profiles.DefaultSource, logger *slog.Logger) profiles.Options {
	return profiles.Options{
		Resolver:      SceneResolver{Assets: assets},
		DefaultSource: build,
		DefaultName:   BuildSettingsName,
		DistinctRefs:  true,
		Logger:        logger,
	}
}

// SceneGUID resolves a scene given either its GUID or its project path.
func SceneGUID(assets Locator, ref string) (string, bool) {
	if _, ok := (SceneResolver{Assets: assets}).Resolve(ref); ok {
		return ref, true
	}
	g, ok := assets.PathToGUID(ref)
	if !ok {
		return "", false
	}
	if _, ok := (SceneResolver{Assets: assets}).Resolve(g); !ok {
		return "", false
	}
	return g, true
}
