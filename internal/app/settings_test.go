package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"model: gpt-4o\nbase_url: http://localhost:8080/v1\napi_key_env: OPENAI_API_KEY\nmax_frames: 10\nreverse_backtrace: false\n",
	), 0600))

	s, err := loadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", s.Model)
	assert.Equal(t, "http://localhost:8080/v1", s.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", s.APIKeyEnv)
	assert.Equal(t, 10, s.MaxFrames)
	require.NotNil(t, s.ReverseBacktrace)
	assert.False(t, *s.ReverseBacktrace)
	assert.Nil(t, s.HideFrames, "unset bools stay nil so defaults apply")
}

func TestLoadSettingsFile_Missing(t *testing.T) {
	_, err := loadSettingsFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSettingsFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unclosed"), 0600))

	_, err := loadSettingsFile(path)
	assert.Error(t, err)
}

func TestEffectiveSettings_Defaults(t *testing.T) {
	cfg := EffectiveSettings()
	assert.NotEmpty(t, cfg.Model)
	assert.NotEmpty(t, cfg.APIKeyEnv)
	assert.Greater(t, cfg.MaxFrames, 0)
	assert.LessOrEqual(t, cfg.MaxFrames, 1000)
}

func TestEnsureDBDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "prefs.db")
	got, err := EnsureDBDir(dbPath)
	require.NoError(t, err)
	assert.Equal(t, dbPath, got)

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDBPathOverride(t *testing.T) {
	SetDBPathOverride("/tmp/override.db")
	t.Cleanup(func() { SetDBPathOverride("") })

	path, err := GetDBPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", path)
}
