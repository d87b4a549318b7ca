package commands_test

import (
	"testing"

	"github.com/fierclash/profilekit/internal/commands"
	"github.com/fierclash/profilekit/internal/profiles"
	"github.com/fierclash/profilekit/internal/scenemenu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneGUIDs(scenes []commands.Scene) []string {
	out := make([]string, len(scenes))
	for i, s := range scenes {
		out[i] = s.GUID
	}
	return out
}

func TestListSceneProfilesEmptyProject(t *testing.T) {
	w, _ := setupProject(t)

	list, err := commands.ListSceneProfiles(w)
	require.NoError(t, err)
	require.Len(t, list, 1)

	build := list[0]
	assert.Equal(t, profiles.DefaultSelection, build.Index)
	assert.Equal(t, scenemenu.BuildSettingsName, build.Name)
	assert.True(t, build.ReadOnly)
	assert.Empty(t, build.GUID)
	assert.Equal(t, []commands.Scene{
		{GUID: mainScene, Name: "Main", Path: "Assets/Scenes/Main.unity"},
		{GUID: levelScene, Name: "Level", Path: "Assets/Scenes/Level.unity"},
	}, build.Scenes)
}

func TestSceneProfileLifecycle(t *testing.T) {
	w, fsys := setupProject(t)

	added, err := commands.AddSceneProfile(w, "Combat")
	require.NoError(t, err)
	assert.Equal(t, 0, added.Index)
	assert.False(t, added.ReadOnly)

	got, err := commands.AddScenes(w, "Combat", "Assets/Scenes/Boss.unity", levelScene, bossScene)
	require.NoError(t, err)
	assert.Equal(t, []string{bossScene, levelScene}, sceneGUIDs(got.Scenes))
	assert.Equal(t, "Boss", got.Scenes[0].Name)

	_, err = commands.AddScenes(w, "Combat", "Assets/Scenes/Missing.unity")
	assert.Error(t, err)

	got, err = commands.RemoveScene(w, "Combat", "Assets/Scenes/Boss.unity")
	require.NoError(t, err)
	assert.Equal(t, []string{levelScene}, sceneGUIDs(got.Scenes))

	_, err = commands.RemoveScene(w, "Combat", "3")
	assert.ErrorIs(t, err, profiles.ErrIndexOutOfRange)

	renamed, err := commands.RenameSceneProfile(w, added.GUID, "Arena")
	require.NoError(t, err)
	assert.Equal(t, "[0] Arena", renamed.Label)

	t.Run("deleted scenes are pruned on load", func(t *testing.T) {
		require.NoError(t, fsys.Remove("Assets/Scenes/Level.unity"))
		p, err := commands.ShowSceneProfile(openWorkspace(t, fsys), "Arena")
		require.NoError(t, err)
		assert.Empty(t, p.Scenes)
	})

	removed, err := commands.RemoveSceneProfile(w, "Arena")
	require.NoError(t, err)
	assert.Equal(t, added.GUID, removed.GUID)

	list, err := commands.ListSceneProfiles(w)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBuildSettingsIsReadOnly(t *testing.T) {
	w, _ := setupProject(t)

	p, err := commands.ShowSceneProfile(w, "build settings")
	require.NoError(t, err)
	assert.True(t, p.ReadOnly)

	_, err = commands.AddScenes(w, "-1", bossScene)
	assert.ErrorIs(t, err, commands.ErrReadOnly)
	_, err = commands.RemoveSceneProfile(w, "Build Settings")
	assert.ErrorIs(t, err, commands.ErrReadOnly)
	_, err = commands.RenameSceneProfile(w, "-1", "x")
	assert.ErrorIs(t, err, commands.ErrReadOnly)
}

func TestProjectScenes(t *testing.T) {
	w, _ := setupProject(t)
	assert.Equal(t, []commands.Scene{
		{GUID: bossScene, Name: "Boss", Path: "Assets/Scenes/Boss.unity"},
		{GUID: levelScene, Name: "Level", Path: "Assets/Scenes/Level.unity"},
		{GUID: mainScene, Name: "Main", Path: "Assets/Scenes/Main.unity"},
	}, commands.ProjectScenes(w))
}
