// Package config loads pokeforge settings from defaults, an optional YAML
// file and the environment. Command-line flags are applied last by the
// caller.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/meur/pokeforge/internal/pokeapi"
)

// Config holds all runtime settings
type Config struct {
	APIBaseURL  string        `yaml:"api_base_url"`
	Listen      string        `yaml:"listen"`
	JournalPath string        `yaml:"journal_path"` // empty disables the fetch journal
	HTTPTimeout time.Duration `yaml:"http_timeout"` // zero keeps the transport default
	StaticDir   string        `yaml:"static_dir"`   // optional frontend bundle
	LogLevel    string        `yaml:"log_level"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		APIBaseURL: pokeapi.DefaultBaseURL,
		Listen:     ":8080",
		LogLevel:   "info",
	}
}

// Load builds a Config from defaults, the YAML file at path (if any)
// and POKEFORGE_* environment variables
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.APIBaseURL = getEnv("POKEFORGE_API_BASE_URL", c.APIBaseURL)
	c.JournalPath = getEnv("POKEFORGE_JOURNAL", c.JournalPath)
	c.StaticDir = getEnv("POKEFORGE_STATIC_DIR", c.StaticDir)
	c.LogLevel = getEnv("POKEFORGE_LOG_LEVEL", c.LogLevel)
	if port := getEnv("PORT", ""); port != "" {
		c.Listen = ":" + port
	}
	c.Listen = getEnv("POKEFORGE_LISTEN", c.Listen)
	if v := getEnv("POKEFORGE_HTTP_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse POKEFORGE_HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = d
	}
	return nil
}

// Validate checks the settings for obvious mistakes
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	if c.HTTPTimeout < 0 {
		return errors.New("http_timeout must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
