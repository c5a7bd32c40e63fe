package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	root := t.TempDir()
	t.Setenv("PROJECT_ROOT", root)
	chdir(t, root)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bikeshare-dashboard", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 5*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, DATASET_SOURCE_FILE, cfg.Dataset.Source)
	assert.Equal(t, filepath.Join(root, "resources", "main_data.csv"), cfg.Dataset.Path)
	assert.Zero(t, cfg.Dataset.RefreshInterval)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATASET_SOURCE", "http")
	t.Setenv("DATASET_URL", "https://example.com/day.csv")
	t.Setenv("DATASET_REFRESH_INTERVAL", "10m")
	t.Setenv("CACHE_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, DATASET_SOURCE_HTTP, cfg.Dataset.Source)
	assert.Equal(t, "https://example.com/day.csv", cfg.Dataset.URL)
	assert.Equal(t, 10*time.Minute, cfg.Dataset.RefreshInterval)
	assert.True(t, cfg.Cache.Enabled)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:     AppConfig{Port: 8080},
			Dataset: DatasetConfig{Source: DATASET_SOURCE_FILE, Path: "data.csv"},
			Redis:   RedisConfig{Address: "redis:6379"},
			Cache:   CacheConfig{TTL: time.Minute},
			API:     APIConfig{RateLimit: 10, RateLimitWindow: time.Second},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"bad port", func(c *Config) { c.App.Port = 0 }, false},
		{"unknown source", func(c *Config) { c.Dataset.Source = "s3" }, false},
		{"http without url", func(c *Config) { c.Dataset.Source = DATASET_SOURCE_HTTP }, false},
		{"negative refresh", func(c *Config) { c.Dataset.RefreshInterval = -time.Second }, false},
		{"cache without ttl", func(c *Config) { c.Cache.Enabled = true; c.Cache.TTL = 0 }, false},
		{"cache enabled", func(c *Config) { c.Cache.Enabled = true }, true},
		{"no rate limit", func(c *Config) { c.API.RateLimit = 0 }, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := valid()
			test.mutate(cfg)
			err := validateConfig(cfg)
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
