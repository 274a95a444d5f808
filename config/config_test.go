// ABOUTME: Tests for configuration loading, environment overrides, and validation.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, `
addr: "0.0.0.0:8080"
base_url: "https://play.example.com/"
project_name: "Portfolio"
session_ttl: 2h
theme: light
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.Equal(t, "https://play.example.com/", cfg.BaseURL)
	assert.Equal(t, "Portfolio", cfg.ProjectName)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "light", cfg.Theme)
	// Unset keys keep their defaults.
	assert.Equal(t, 200, cfg.MaxSessions)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "addr: [unterminated")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("STACKRUSH_ADDR", "")
	xdg.Reload()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:2389", cfg.Addr)
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "addr: \"file:1\"\n")

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv("STACKRUSH_ADDR", "env:2")
		t.Setenv("STACKRUSH_BASE_URL", "https://env.example.com/")
		t.Setenv("STACKRUSH_PROJECT_NAME", "EnvSite")
		t.Setenv("STACKRUSH_MAX_SESSIONS", "7")
		t.Setenv("STACKRUSH_SESSION_TTL", "90m")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env:2", cfg.Addr)
		assert.Equal(t, "https://env.example.com/", cfg.BaseURL)
		assert.Equal(t, "EnvSite", cfg.ProjectName)
		assert.Equal(t, 7, cfg.MaxSessions)
		assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	})

	t.Run("empty env is ignored", func(t *testing.T) {
		t.Setenv("STACKRUSH_ADDR", "")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "file:1", cfg.Addr)
	})

	t.Run("bad numbers fail", func(t *testing.T) {
		t.Setenv("STACKRUSH_MAX_SESSIONS", "many")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("bad duration fails", func(t *testing.T) {
		t.Setenv("STACKRUSH_SESSION_TTL", "forever")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }, ErrEmptyAddr},
		{"relative base url", func(c *Config) { c.BaseURL = "/play" }, ErrInvalidBaseURL},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://x/" }, ErrInvalidBaseURL},
		{"zero sessions", func(c *Config) { c.MaxSessions = 0 }, ErrInvalidMaxSessions},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, ErrInvalidSessionTTL},
		{"zero cleanup", func(c *Config) { c.CleanupInterval = 0 }, ErrInvalidCleanup},
		{"zero upload", func(c *Config) { c.MaxUploadBytes = 0 }, ErrInvalidUploadLimit},
		{"unknown theme", func(c *Config) { c.Theme = "solarized" }, ErrInvalidTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}
