package commands

import (
	"fmt"

	"github.com/fierclash/profilekit/internal/profiles"
	"github.com/fierclash/profilekit/internal/scenemenu"
)

// Scene is a resolved scene reference.
type Scene struct {
	GUID string
	Name string
	Path string
}

// SceneProfile is a read-only view of one scene profile. The Build Settings
// profile has Index -1 and an empty GUID.
type SceneProfile struct {
	Index    int
	Label    string
	GUID     string
	Name     string
	ReadOnly bool
	Scenes   []Scene
}

func sceneList(ix *scenemenu.Index, refs []string) []Scene {
	out := make([]Scene, 0, len(refs))
	for _, ref := range refs {
		s := Scene{GUID: ref}
		if d, ok := ix.Descriptor(ref); ok {
			s.Name, s.Path = d.Name, d.Path
		}
		out = append(out, s)
	}
	return out
}

func sceneView(ix *scenemenu.Index) SceneProfile {
	if ix.DefaultSelected() {
		def, _ := ix.DefaultProfile()
		return SceneProfile{
			Index:    profiles.DefaultSelection,
			Label:    scenemenu.BuildSettingsName,
			Name:     def.Name,
			ReadOnly: true,
			Scenes:   sceneList(ix, def.Scenes),
		}
	}
	i := ix.Selection()
	v := SceneProfile{Index: i, Label: ix.IndexedNames()[i], GUID: ix.SelectedID()}
	if p, ok := ix.Selected(); ok {
		v.Name = p.Name
		v.Scenes = sceneList(ix, p.Scenes)
	}
	return v
}

// ListSceneProfiles returns the Build Settings profile followed by every
// scene profile in display order.
func ListSceneProfiles(w *Workspace) ([]SceneProfile, error) {
	ix, err := w.sceneSync().Load()
	if err != nil {
		return nil, err
	}
	out := make([]SceneProfile, 0, ix.Len()+1)
	for i := profiles.DefaultSelection; i < ix.Len(); i++ {
		ix.SetSelection(i)
		out = append(out, sceneView(ix))
	}
	return out, nil
}

// ShowSceneProfile returns the scene profile named by sel.
func ShowSceneProfile(w *Workspace, sel string) (*SceneProfile, error) {
	ix, err := w.sceneSync().Load()
	if err != nil {
		return nil, err
	}
	if err := selectProfile(ix, sel, scenemenu.BuildSettingsName); err != nil {
		return nil, err
	}
	v := sceneView(ix)
	return &v, nil
}

// AddSceneProfile creates a scene profile, naming it when name is set.
func AddSceneProfile(w *Workspace, name string) (*SceneProfile, error) {
	s := w.sceneSync()
	ix, err := s.Load()
	if err != nil {
		return nil, err
	}
	ix.AddProfile()
	ix.SelectLast()
	if name != "" {
		ix.RenameSelected(name)
	}
	if err := s.Save(ix); err != nil {
		return nil, fmt.Errorf("saving scene profiles: %w", err)
	}
	v := sceneView(ix)
	return &v, nil
}

// RemoveSceneProfile deletes the scene profile named by sel.
func RemoveSceneProfile(w *Workspace, sel string) (*SceneProfile, error) {
	s := w.sceneSync()
	ix, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := selectEditable(ix, sel, scenemenu.BuildSettingsName); err != nil {
		return nil, err
	}
	removed := sceneView(ix)
	ix.RemoveSelected()
	if err := s.Save(ix); err != nil {
		return nil, fmt.Errorf("saving scene profiles: %w", err)
	}
	return &removed, nil
}

// RenameSceneProfile renames the scene profile named by sel.
func RenameSceneProfile(w *Workspace, sel, name string) (*SceneProfile, error) {
	return editSceneProfile(w, sel, func(ix *scenemenu.Index) error {
		ix.RenameSelected(name)
		return nil
	})
}

// AddScenes appends scenes, each given by GUID or project path, to the scene
// profile named by sel. Scenes already listed are skipped; unknown scenes
// are an error and nothing is saved.
func AddScenes(w *Workspace, sel string, refs ...string) (*SceneProfile, error) {
	return editSceneProfile(w, sel, func(ix *scenemenu.Index) error {
		guids := make([]string, 0, len(refs))
		for _, ref := range refs {
			g, ok := scenemenu.SceneGUID(w.Assets, ref)
			if !ok {
				return fmt.Errorf("%s is not a scene in this project", ref)
			}
			guids = append(guids, g)
		}
		for _, g := range guids {
			ix.AddReference(g)
		}
		return nil
	})
}

// RemoveScene removes a scene, given by position or GUID, from the scene
// profile named by sel.
func RemoveScene(w *Workspace, sel, scene string) (*SceneProfile, error) {
	return editSceneProfile(w, sel, func(ix *scenemenu.Index) error {
		p, _ := ix.Selected()
		ref := scene
		if g, ok := scenemenu.SceneGUID(w.Assets, scene); ok {
			ref = g
		}
		i, err := refIndex(p.Scenes, ref)
		if err != nil {
			return err
		}
		return ix.RemoveReference(ix.Selection(), i)
	})
}

// ProjectScenes returns every scene asset in the project, sorted by path.
func ProjectScenes(w *Workspace) []Scene {
	r := scenemenu.SceneResolver{Assets: w.Assets}
	var out []Scene
	for _, a := range w.Assets.Find(scenemenu.SceneExt) {
		d, ok := r.Resolve(a.GUID)
		if !ok {
			continue
		}
		out = append(out, Scene{GUID: a.GUID, Name: d.Name, Path: d.Path})
	}
	return out
}

func editSceneProfile(w *Workspace, sel string, fn func(ix *scenemenu.Index) error) (*SceneProfile, error) {
	s := w.sceneSync()
	ix, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := selectEditable(ix, sel, scenemenu.BuildSettingsName); err != nil {
		return nil, err
	}
	if err := fn(ix); err != nil {
		return nil, err
	}
	if err := s.Save(ix); err != nil {
		return nil, fmt.Errorf("saving scene profiles: %w", err)
	}
	v := sceneView(ix)
	return &v, nil
}
