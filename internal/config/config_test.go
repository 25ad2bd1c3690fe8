package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, "pixabay", cfg.Source.Identifier)
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 40000, cfg.Pixabay.CountAll)
	assert.Equal(t, ":8081", cfg.Server.Addr)
	assert.Equal(t, "data/cache.db", cfg.Database)
	assert.False(t, cfg.Debug.PrettyJSON)
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{
		"pixabay": {"key": "abc", "default_search_term": "nature", "count_all": 10},
		"cache": {"driver": "sqlite", "ttl": "2h"},
		"debug": {"pretty_json": true}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.Pixabay.Key)
	assert.Equal(t, "nature", cfg.Pixabay.DefaultSearchTerm)
	assert.Equal(t, 10, cfg.Pixabay.CountAll)
	assert.Equal(t, CacheDriverSQLite, cfg.Cache.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.True(t, cfg.Debug.PrettyJSON)

	opts := cfg.SourceOptions()
	assert.Equal(t, "abc", opts["apiKey"])
	assert.Equal(t, "nature", opts["defaultSearchTerm"])
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PIXABAY_API_KEY", "from-env")
	cfg, err := Load(writeConfig(t, `{"pixabay": {"key": "from-file"}}`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Pixabay.Key)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	_, err := Load(writeConfig(t, `{"cache": {"driver": "redis"}}`))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, `{"pixabay": `))
	assert.Error(t, err)
}
