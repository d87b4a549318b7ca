package assets_test

import (
	"testing"

	"github.com/fierclash/profilekit/internal/assets"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	levelGUID = "5e97eb03825dee720800000000000000"
	menuGUID  = "0b7c2f4a1d3e4f5a8b9c0d1e2f3a4b5c"
)

func writeFile(t *testing.T, fsys afero.Fs, p, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, p, []byte(content), 0o644))
}

func project(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "Assets/Scenes/Level1.unity", "scene")
	writeFile(t, fsys, "Assets/Scenes/Level1.unity.meta", "fileFormatVersion: 2\nguid: "+levelGUID+"\nDefaultImporter:\n  userData: \n")
	writeFile(t, fsys, "Packages/Menu/Menu.unity", "scene")
	writeFile(t, fsys, "Packages/Menu/Menu.unity.meta", "fileFormatVersion: 2\nguid: "+menuGUID+"\n")
	// Orphaned meta: the asset was deleted outside the editor.
	writeFile(t, fsys, "Assets/Scenes/Gone.unity.meta", "fileFormatVersion: 2\nguid: ffffffffffffffffffffffffffffffff\n")
	writeFile(t, fsys, "Assets/Broken.txt", "x")
	writeFile(t, fsys, "Assets/Broken.txt.meta", "guid: [")
	return fsys
}

func TestOpen(t *testing.T) {
	db, err := assets.Open(project(t), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, db.Len())

	p, ok := db.GUIDToPath(levelGUID)
	require.True(t, ok)
	assert.Equal(t, "Assets/Scenes/Level1.unity", p)

	p, ok = db.GUIDToPath(menuGUID)
	require.True(t, ok)
	assert.Equal(t, "Packages/Menu/Menu.unity", p)

	g, ok := db.PathToGUID("./Assets/Scenes/Level1.unity")
	require.True(t, ok)
	assert.Equal(t, levelGUID, g)

	_, ok = db.GUIDToPath("ffffffffffffffffffffffffffffffff")
	assert.False(t, ok)
}

func TestOpenEmptyProject(t *testing.T) {
	db, err := assets.Open(afero.NewMemMapFs(), nil)
	require.NoError(t, err)
	assert.Zero(t, db.Len())
}

func TestGUIDToPathAfterDelete(t *testing.T) {
	fsys := project(t)
	db, err := assets.Open(fsys, nil)
	require.NoError(t, err)

	require.NoError(t, fsys.Remove("Assets/Scenes/Level1.unity"))
	_, ok := db.GUIDToPath(levelGUID)
	assert.False(t, ok)
}

func TestImport(t *testing.T) {
	fsys := project(t)
	db, err := assets.Open(fsys, nil)
	require.NoError(t, err)

	writeFile(t, fsys, "Assets/Data/Sheets/Main.txt", "a,b")
	g, err := db.Import("Assets/Data/Sheets/Main.txt")
	require.NoError(t, err)
	assert.Len(t, g, 32)

	p, ok := db.GUIDToPath(g)
	require.True(t, ok)
	assert.Equal(t, "Assets/Data/Sheets/Main.txt", p)

	for _, dir := range []string{"Assets/Data", "Assets/Data/Sheets"} {
		_, ok := db.PathToGUID(dir)
		assert.True(t, ok, dir)
	}

	t.Run("survives a refresh", func(t *testing.T) {
		require.NoError(t, db.Refresh())
		got, ok := db.PathToGUID("Assets/Data/Sheets/Main.txt")
		require.True(t, ok)
		assert.Equal(t, g, got)
	})

	t.Run("reimport keeps the guid", func(t *testing.T) {
		again, err := db.Import("Assets/Data/Sheets/Main.txt")
		require.NoError(t, err)
		assert.Equal(t, g, again)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := db.Import("Assets/Nope.txt")
		assert.Error(t, err)
	})

	t.Run("outside roots", func(t *testing.T) {
		writeFile(t, fsys, "ProjectSettings/Other.txt", "x")
		_, err := db.Import("ProjectSettings/Other.txt")
		assert.ErrorIs(t, err, assets.ErrOutsideRoots)
	})
}

func TestClean(t *testing.T) {
	assert.Equal(t, "Assets/A/b.txt", assets.Clean(`Assets\A\b.txt`))
	assert.Equal(t, "Assets/A", assets.Clean("./Assets/A/"))
}

func TestFind(t *testing.T) {
	fsys := project(t)
	db, err := assets.Open(fsys, nil)
	require.NoError(t, err)

	assert.Equal(t, []assets.Asset{
		{GUID: levelGUID, Path: "Assets/Scenes/Level1.unity"},
		{GUID: menuGUID, Path: "Packages/Menu/Menu.unity"},
	}, db.Find(".unity"))
	assert.Empty(t, db.Find(".prefab"))
}
