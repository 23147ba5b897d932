// Package config resolves the client settings. Sources apply in order:
// built-in defaults, the YAML file, the environment (ARTVERSE_*), then
// command-line flags. Loading a .env file is the caller's job.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ARTVERSE_"

// Config holds the client settings.
type Config struct {
	BaseURL        string        `yaml:"base_url"`
	PageSize       int           `yaml:"page_size"`
	Locale         string        `yaml:"locale"`
	CachePath      string        `yaml:"cache_path"`
	StatusTTL      time.Duration `yaml:"status_ttl"`
	ConfirmTTL     time.Duration `yaml:"confirm_ttl"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	UserAgent      string        `yaml:"user_agent"`
	LogPath        string        `yaml:"log_path"`
	LogLevel       string        `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:        "http://localhost:5000",
		PageSize:       12,
		Locale:         "en",
		CachePath:      defaultCachePath(),
		StatusTTL:      5 * time.Second,
		ConfirmTTL:     3 * time.Second,
		RequestTimeout: 30 * time.Second,
		UserAgent:      "artverse-cli",
		LogLevel:       "warn",
	}
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".artverse", "cache.db")
	}
	return filepath.Join(dir, "artverse", "cache.db")
}

// DefaultPath is the config file used when none is named.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "artverse", "config.yaml")
}

// Load resolves defaults, the file at path and the environment. An
// explicitly named file must exist; the default file is optional.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays ARTVERSE_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"BASE_URL":   &c.BaseURL,
		"LOCALE":     &c.Locale,
		"CACHE_PATH": &c.CachePath,
		"USER_AGENT": &c.UserAgent,
		"LOG_PATH":   &c.LogPath,
		"LOG_LEVEL":  &c.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "PAGE_SIZE"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %sPAGE_SIZE: %w", EnvPrefix, err)
		}
		c.PageSize = n
	}

	durations := map[string]*time.Duration{
		"STATUS_TTL":      &c.StatusTTL,
		"CONFIRM_TTL":     &c.ConfirmTTL,
		"REQUEST_TIMEOUT": &c.RequestTimeout,
	}
	for key, dst := range durations {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %s%s: %w", EnvPrefix, key, err)
		}
		*dst = d
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an http(s) URL", c.BaseURL)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("invalid page_size %d: must be positive", c.PageSize)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	if c.StatusTTL <= 0 || c.ConfirmTTL <= 0 {
		return fmt.Errorf("notification durations must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request_timeout %s: must be positive", c.RequestTimeout)
	}
	if c.CachePath == "" {
		return fmt.Errorf("cache_path must not be empty")
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Language returns the catalog collation locale.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// Level returns the console log level.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}
