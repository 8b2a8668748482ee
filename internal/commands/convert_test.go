package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auszug-dev/auszug/internal/config"
)

func TestLoadConfig_DefaultFileAbsent(t *testing.T) {
	// Run from a directory without auszug.yaml.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := loadConfig(config.DefaultFileName)
	require.NoError(t, err)
	assert.Equal(t, "kontoauszuege.csv", cfg.Output.DefaultName)
}

func TestLoadConfig_ExplicitFileMustExist(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "custom.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  dir: out\n"), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Output.Dir)
}
