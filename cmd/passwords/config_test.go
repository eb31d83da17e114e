package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server: https://cloud.example.com
username: alice
timeout: 5s
log_level: info
redis:
  addr: localhost:6379
  prefix: "pw:"
`), 0o600))

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "https://cloud.example.com", cfg.Server)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, slog.LevelInfo, cfg.level())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "pw:", cfg.Redis.Prefix)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := LoadConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = LoadConfig(path, true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigValidate(t *testing.T) {
	valid := defaultConfig()
	valid.Server = "https://cloud.example.com"
	valid.Username = "alice"
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing server", func(c *Config) { c.Server = "" }, "Server"},
		{"bad server", func(c *Config) { c.Server = "not a url" }, "Server"},
		{"missing user", func(c *Config) { c.Username = "" }, "Username"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
		{"bad redis", func(c *Config) { c.Redis.Addr = "localhost" }, "Addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: https://a.example.com\nusername: alice\n"), 0o600))

	cli := &CLI{Config: path, Server: "https://b.example.com", User: "bob", Verbose: true}
	cfg, err := cli.config()
	require.NoError(t, err)
	assert.Equal(t, "https://b.example.com", cfg.Server)
	assert.Equal(t, "bob", cfg.Username)
	assert.Equal(t, slog.LevelDebug, cfg.level())
}
