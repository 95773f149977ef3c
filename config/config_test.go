package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutEnvFile(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 10, cfg.App.PageSize)
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "data/obstetrics.db", cfg.SQLite.Path)
	assert.Equal(t, "obstetrics-db", cfg.Redis.KeyPrefix)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "*", cfg.App.CORSOrigin)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, 10, cfg.DB.MaxOpenConns)
}

func TestLoadReadsEnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nSTORE_DRIVER=redis\nREDIS_DB=3\nPAGE_SIZE=25\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	cfg, err := load(file)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 25, cfg.App.PageSize)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "None")
	t.Setenv("PAGE_SIZE", "0")

	cfg, err := load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, StoreDriverNone, cfg.Store.Driver)
	assert.Equal(t, 10, cfg.App.PageSize)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "indexeddb")

	_, err := load(filepath.Join(t.TempDir(), ".env"))
	assert.Error(t, err)
}
