// Package config handles configuration loading and validation for hackerterm.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Anchor rewrite modes for comment text.
const (
	AnchorModePositional = "positional"
	AnchorModeHref       = "href"
)

// Config holds the application configuration.
type Config struct {
	APIBaseURL     string              `yaml:"api_base_url"`
	StoryLimit     int                 `yaml:"story_limit"`
	MaxConcurrent  int                 `yaml:"max_concurrent"`
	RequestTimeout time.Duration       `yaml:"request_timeout"`
	AnchorMode     string              `yaml:"anchor_mode"`
	History        HistoryConfig       `yaml:"history"`
	Keys           map[string][]string `yaml:"keys"`
	DataDir        string              `yaml:"-"` // set by caller, not from config file
}

// HistoryConfig controls read marks for opened stories.
type HistoryConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Path      string        `yaml:"path"`
	Retention time.Duration `yaml:"retention"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	dataDir := DefaultDataDir()
	return Config{
		APIBaseURL:     "https://hacker-news.firebaseio.com/v0",
		StoryLimit:     30,
		MaxConcurrent:  10,
		RequestTimeout: 10 * time.Second,
		AnchorMode:     AnchorModePositional,
		History: HistoryConfig{
			Enabled:   true,
			Path:      filepath.Join(dataDir, "history.db"),
			Retention: 30 * 24 * time.Hour,
		},
		Keys:    DefaultKeys(),
		DataDir: dataDir,
	}
}

// Load reads configuration from the given path. A missing file yields the
// defaults; keys from the file override the default binding per action.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	defaultKeys := cfg.Keys
	cfg.Keys = nil

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.Keys = mergeKeys(defaultKeys, cfg.Keys)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := Default()
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaults.APIBaseURL
	}
	if c.StoryLimit == 0 {
		c.StoryLimit = defaults.StoryLimit
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = defaults.MaxConcurrent
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaults.RequestTimeout
	}
	if c.AnchorMode == "" {
		c.AnchorMode = defaults.AnchorMode
	}
	if c.History.Path == "" {
		c.History.Path = defaults.History.Path
	}
	if c.History.Retention == 0 {
		c.History.Retention = defaults.History.Retention
	}
}

func mergeKeys(defaults, user map[string][]string) map[string][]string {
	result := make(map[string][]string, len(defaults))
	for action, keys := range defaults {
		result[action] = keys
	}
	for action, keys := range user {
		result[action] = keys
	}
	return result
}

// DefaultConfigPath returns the config file location used when no --config
// flag is given.
func DefaultConfigPath() string {
	return filepath.Join(userConfigDir(), "hackerterm", "config.yaml")
}

// DefaultDataDir returns the directory for logs and the history database.
func DefaultDataDir() string {
	return filepath.Join(userConfigDir(), "hackerterm")
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
