package docstore_test

import (
	"testing"

	"github.com/fierclash/profilekit/internal/docstore"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pointer struct {
	SettingsGUID string `json:"settingsGUID"`
}

func TestReadMissing(t *testing.T) {
	s := docstore.New(afero.NewMemMapFs(), nil)
	var p pointer
	ok, err := s.Read("Assets/config.json", &p)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadMalformed(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "config.json", []byte("{not json"), 0o644))

	s := docstore.New(fsys, nil)
	var p pointer
	ok, err := s.Read("config.json", &p)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteThenRead(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := docstore.New(fsys, nil)

	require.NoError(t, s.Write("Packages/Tools/config.json", pointer{SettingsGUID: "abc"}, true))
	assert.True(t, s.Exists("Packages/Tools/config.json"))

	data, err := afero.ReadFile(fsys, "Packages/Tools/config.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"settingsGUID\": \"abc\"\n}\n", string(data))

	var p pointer
	ok, err := s.Read("Packages/Tools/config.json", &p)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", p.SettingsGUID)

	t.Run("overwrites and leaves no temp files", func(t *testing.T) {
		require.NoError(t, s.Write("Packages/Tools/config.json", pointer{SettingsGUID: "def"}, false))
		entries, err := afero.ReadDir(fsys, "Packages/Tools")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "config.json", entries[0].Name())
	})
}

func TestWriteWithoutParent(t *testing.T) {
	fsys := afero.NewBasePathFs(afero.NewOsFs(), t.TempDir())
	s := docstore.New(fsys, nil)

	err := s.Write("missing/config.json", pointer{}, false)
	assert.Error(t, err)
	assert.False(t, s.Exists("missing/config.json"))

	require.NoError(t, s.Write("missing/config.json", pointer{}, true))
	assert.True(t, s.Exists("missing/config.json"))
}
