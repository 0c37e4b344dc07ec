package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_WritesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Initialize(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, GitletDir), cfg.GitletPath())
	assert.Equal(t, dir, cfg.WorkTreePath())
	assert.DirExists(t, cfg.ObjectsPath())

	loaded, err := Open(cfg.GitletPath())
	require.NoError(t, err)
	assert.Equal(t, DefaultBranchName, loaded.DefaultBranch)
	assert.Equal(t, DefaultTransferWorkers, loaded.TransferWorkers)
	assert.Equal(t, DefaultLogLevel, loaded.LogLevel)

	_, err = Initialize(dir)
	assert.ErrorIs(t, err, models.ErrAlreadyInitialized)
}

func TestLoadFrom_WalksUp(t *testing.T) {
	dir := t.TempDir()
	_, err := Initialize(dir)
	require.NoError(t, err)

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, err := LoadFrom(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, GitletDir), cfg.GitletPath())
}

func TestLoadFrom_NotInitialized(t *testing.T) {
	_, err := LoadFrom(t.TempDir())
	assert.ErrorIs(t, err, models.ErrNotInitialized)
}

func TestSave_RoundTrip(t *testing.T) {
	cfg, err := Initialize(t.TempDir())
	require.NoError(t, err)

	cfg.DefaultBranch = "main"
	cfg.TransferWorkers = 8
	cfg.LogLevel = "debug"
	require.NoError(t, cfg.Save())

	loaded, err := Open(cfg.GitletPath())
	require.NoError(t, err)
	assert.Equal(t, "main", loaded.DefaultBranch)
	assert.Equal(t, 8, loaded.TransferWorkers)
	assert.Equal(t, slog.LevelDebug, loaded.SlogLevel())
}

func TestOpen_AppliesDefaultsToPartialConfig(t *testing.T) {
	gitletPath := filepath.Join(t.TempDir(), GitletDir)
	require.NoError(t, os.MkdirAll(gitletPath, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(gitletPath, ConfigFile), []byte("log_level = \"error\"\n"), 0644))

	cfg, err := Open(gitletPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultBranchName, cfg.DefaultBranch)
	assert.Equal(t, DefaultTransferWorkers, cfg.TransferWorkers)
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}
