package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fierclash/profilekit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerJSON(t *testing.T) {
	data, err := json.Marshal(config.Pointer{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"settingsGUID": ""}`, string(data))
}

func TestLoadDefaults(t *testing.T) {
	s, err := config.Load(config.NewViper())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), s)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".profilekit.yaml"), []byte(`
project: /work/game
developer: true
http_timeout: 5s
`), 0o644))

	v := config.NewViper()
	used, err := config.ReadFile(v, "", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".profilekit.yaml"), used)

	s, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, config.Settings{
		Project:     "/work/game",
		Developer:   true,
		HTTPTimeout: 5 * time.Second,
	}, s)
}

func TestReadFileExplicitMissing(t *testing.T) {
	_, err := config.ReadFile(config.NewViper(), filepath.Join(t.TempDir(), "nope.yaml"), ".")
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PROFILEKIT_DEVELOPER", "true")
	t.Setenv("PROFILEKIT_HTTP_TIMEOUT", "2m")

	s, err := config.Load(config.NewViper())
	require.NoError(t, err)
	assert.True(t, s.Developer)
	assert.Equal(t, 2*time.Minute, s.HTTPTimeout)
}
