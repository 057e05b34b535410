// Package config loads the directory client configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gartstein/directory/internal/directory/models"
	"gopkg.in/yaml.v3"
)

// DefaultSourceURL is used when neither the config file nor flags name an endpoint.
const DefaultSourceURL = "http://localhost:3001/companies"

// Config holds the directory configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Logging LoggingConfig `yaml:"logging"`
	View    ViewConfig    `yaml:"view"`
}

// SourceConfig describes the remote endpoint.
type SourceConfig struct {
	URL string `yaml:"url"`
	// Timeout bounds the whole request; 0 disables it.
	Timeout time.Duration `yaml:"timeout"`
	// Retries is the number of extra attempts after a temporary failure.
	Retries uint64 `yaml:"retries"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // production, development
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty writes to stderr
}

// ViewConfig holds presentation defaults.
type ViewConfig struct {
	Mode string `yaml:"mode"` // table, card
}

// Default returns the configuration used when no file exists.
func Default() Config {
	c := Config{}
	c.ApplyDefaults()
	return c
}

// Load reads configuration from path. A missing file yields defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Source.URL == "" {
		c.Source.URL = DefaultSourceURL
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "production"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.View.Mode == "" {
		c.View.Mode = string(models.ViewTable)
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Source.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("source.url must be an absolute http(s) URL, got %q", c.Source.URL)
	}
	if c.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout must not be negative, got %s", c.Source.Timeout)
	}
	switch c.Logging.Env {
	case "production", "development":
	default:
		return fmt.Errorf("logging.env must be \"production\" or \"development\", got %q", c.Logging.Env)
	}
	if _, err := models.ParseViewMode(c.View.Mode); err != nil {
		return fmt.Errorf("view.mode: %w", err)
	}
	return nil
}

// ViewMode returns the configured default presentation.
func (c *Config) ViewMode() models.ViewMode {
	m, err := models.ParseViewMode(c.View.Mode)
	if err != nil {
		return models.ViewTable
	}
	return m
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
