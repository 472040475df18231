package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskflow/internal/constants"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/taskflow-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StorageBackendDB, cfg.StorageBackend)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, constants.DefaultStorageKey, cfg.StorageKey)
	assert.Equal(t, filepath.Join("/tmp/taskflow-test", constants.DefaultDBFile), cfg.DBPath)
	assert.Equal(t, constants.DefaultTickInterval, cfg.TickInterval)
	assert.Equal(t, SessionStoreCookie, cfg.SessionStore)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", StorageBackendFile)
	t.Setenv("TICK_INTERVAL", "15s")
	t.Setenv("DB_PATH", "/var/lib/taskflow/tasks.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageBackendFile, cfg.StorageBackend)
	assert.Equal(t, 15*time.Second, cfg.TickInterval)
	assert.Equal(t, "/var/lib/taskflow/tasks.db", cfg.DBPath)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("STORAGE_KEY: other_tasks\nHTTP_ADDR: \":9090\"\n"), 0o600))
	t.Setenv("TASKFLOW_CONFIG", path)
	t.Setenv("HTTP_ADDR", ":7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "other_tasks", cfg.StorageKey)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("TASKFLOW_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
