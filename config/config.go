// ABOUTME: Runtime configuration for stackrush: defaults, optional YAML file, and environment overrides.
// ABOUTME: Config files live under the XDG config directory unless an explicit path is given.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName is used for the XDG config directory.
const AppName = "stackrush"

// Config holds all settings for the server and CLI.
type Config struct {
	Addr            string        `yaml:"addr"`
	BaseURL         string        `yaml:"base_url"`
	ProjectName     string        `yaml:"project_name"`
	MaxSessions     int           `yaml:"max_sessions"`
	SessionTTL      time.Duration `yaml:"session_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	Theme           string        `yaml:"theme"`
}

var (
	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	ErrEmptyAddr          = errors.New("invalid addr: must not be empty")
	ErrInvalidBaseURL     = errors.New("invalid base_url: must be an absolute http(s) URL")
	ErrInvalidMaxSessions = errors.New("invalid max_sessions: must be positive")
	ErrInvalidSessionTTL  = errors.New("invalid session_ttl: must be positive")
	ErrInvalidCleanup     = errors.New("invalid cleanup_interval: must be positive")
	ErrInvalidUploadLimit = errors.New("invalid max_upload_bytes: must be positive")
	ErrInvalidTheme       = errors.New("invalid theme: must be vs-dark or light")
)

// Themes lists the editor themes a session can use.
var Themes = []string{"vs-dark", "light"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:            "127.0.0.1:2389",
		BaseURL:         "http://127.0.0.1:2389/",
		ProjectName:     "MyWebsite",
		MaxSessions:     200,
		SessionTTL:      24 * time.Hour,
		CleanupInterval: 10 * time.Minute,
		MaxUploadBytes:  10 << 20,
		Theme:           "vs-dark",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/stackrush/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load builds the effective configuration. An explicit path must exist; with
// no path the default location is used when present. Environment variables
// are applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err) && explicit:
		return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnvOverrides reads STACKRUSH_* variables on top of file values.
func (c *Config) applyEnvOverrides() error {
	if v, ok := os.LookupEnv("STACKRUSH_ADDR"); ok && v != "" {
		c.Addr = v
	}
	if v, ok := os.LookupEnv("STACKRUSH_BASE_URL"); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := os.LookupEnv("STACKRUSH_PROJECT_NAME"); ok && v != "" {
		c.ProjectName = v
	}
	if v, ok := os.LookupEnv("STACKRUSH_MAX_SESSIONS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STACKRUSH_MAX_SESSIONS: %w", err)
		}
		c.MaxSessions = n
	}
	if v, ok := os.LookupEnv("STACKRUSH_SESSION_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("STACKRUSH_SESSION_TTL: %w", err)
		}
		c.SessionTTL = d
	}
	return nil
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return ErrEmptyAddr
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	if c.MaxSessions <= 0 {
		return ErrInvalidMaxSessions
	}
	if c.SessionTTL <= 0 {
		return ErrInvalidSessionTTL
	}
	if c.CleanupInterval <= 0 {
		return ErrInvalidCleanup
	}
	if c.MaxUploadBytes <= 0 {
		return ErrInvalidUploadLimit
	}
	if !ValidTheme(c.Theme) {
		return ErrInvalidTheme
	}
	return nil
}

// ValidTheme reports whether theme is one of Themes.
func ValidTheme(theme string) bool {
	for _, t := range Themes {
		if t == theme {
			return true
		}
	}
	return false
}
