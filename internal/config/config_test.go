package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.Verbose)
	assert.True(t, cfg.Lazy)
	assert.Empty(t, cfg.ScratchDir)
	assert.Equal(t, "portfolio.json", cfg.File)
	assert.False(t, cfg.Plain)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvEnv, "production")
	t.Setenv(EnvVerbose, "true")
	t.Setenv(EnvLazy, "false")
	t.Setenv(EnvScratchDir, "/var/tmp/folio")
	t.Setenv(EnvFile, "household.sqlite")
	t.Setenv(EnvPlain, "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Env:        "production",
		Verbose:    true,
		ScratchDir: "/var/tmp/folio",
		Lazy:       false,
		File:       "household.sqlite",
		Plain:      true,
	}, cfg)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FOLIO_FILE=from-dotenv.sqlite\nFOLIO_LAZY=false\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.sqlite", cfg.File)
	assert.False(t, cfg.Lazy)
}

func TestLoad_EnvOverridesDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FOLIO_FILE=from-dotenv.sqlite\n"), 0644))
	t.Setenv(EnvFile, "from-env.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.File)
}

func TestLoad_UnreadableDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0755))

	cfg, err := Load()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read .env")
}
