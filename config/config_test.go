package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "csv", cfg.Dataset.Source)
	assert.Equal(t, "Sample - Superstore.csv", cfg.Dataset.Path)
	assert.Equal(t, "latin1", cfg.Dataset.Encoding)
	assert.Equal(t, 5, cfg.Dashboard.PreviewRows)
	assert.Equal(t, 10, cfg.Dashboard.TopStates)
	assert.True(t, cfg.Dashboard.EnableMap)
	assert.True(t, cfg.Dashboard.EnableYearFilter)
	assert.Equal(t, time.Hour, cfg.Database.RefreshInterval)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  addr: ":9090"
dataset:
  path: "/data/orders.csv"
  encoding: "utf-8"
dashboard:
  top_states: 5
  enable_map: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("SUPERSTORE_DATASET__SNAPSHOT_PATH", "/tmp/snapshot.sz")
	t.Setenv("SUPERSTORE_LOG__LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/data/orders.csv", cfg.Dataset.Path)
	assert.Equal(t, "utf-8", cfg.Dataset.Encoding)
	assert.Equal(t, 5, cfg.Dashboard.TopStates)
	assert.False(t, cfg.Dashboard.EnableMap)
	assert.Equal(t, "/tmp/snapshot.sz", cfg.Dataset.SnapshotPath)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	bad := *cfg
	bad.Dataset.Source = "parquet"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Dataset.Encoding = "cp1251"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Dashboard.TopStates = 0
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Dataset.Source = "sql"
	bad.Database.Table = ""
	assert.Error(t, bad.Validate())
}

func TestDataSourceName(t *testing.T) {
	c := DatabaseConfig{Driver: "mysql", Host: "db", Port: 3306, User: "u", Password: "p", DBName: "shop"}
	dsn, err := c.DataSourceName()
	require.NoError(t, err)
	assert.Equal(t, "u:p@tcp(db:3306)/shop?charset=utf8mb4&parseTime=true", dsn)

	c.Driver = "pgx"
	c.Port = 5432
	dsn, err = c.DataSourceName()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/shop?sslmode=disable", dsn)

	c.Driver = "sqlite"
	c.DBName = "/tmp/shop.db"
	dsn, err = c.DataSourceName()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/shop.db", dsn)

	c.DSN = "explicit"
	dsn, err = c.DataSourceName()
	require.NoError(t, err)
	assert.Equal(t, "explicit", dsn)

	_, err = DatabaseConfig{Driver: "oracle"}.DataSourceName()
	assert.Error(t, err)
}
