package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "warehouse", cfg.Database.Driver)
	assert.Equal(t, "default", cfg.Database.Schema)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout())
	assert.Equal(t, 30*time.Second, cfg.Database.QueryTimeout())
	assert.False(t, cfg.Snapshot.Enabled)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	doc := `
log:
  level: debug
  format: console
database:
  driver: postgres
  dsn: postgres://localhost:5432/app
  schema: public
  query_timeout_seconds: 5
snapshot:
  enabled: true
  endpoint: localhost:9000
  bucket: schemas
server:
  addr: ":9090"
`
	path := filepath.Join(t.TempDir(), "lakereflect.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "public", cfg.Database.Schema)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout())
	// Untouched fields keep defaults.
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout())
	assert.True(t, cfg.Snapshot.Enabled)
	assert.Equal(t, "schemas", cfg.Snapshot.Bucket)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
