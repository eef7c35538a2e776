package config

import (
	"time"
)

// Config represents the complete viewlens configuration.
// It can be loaded from .viewlens/config.yml with environment variable
// overrides.
type Config struct {
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`
	Watch WatchConfig `yaml:"watch" mapstructure:"watch"`
}

// CacheConfig controls the in-memory result cache.
type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds" mapstructure:"ttl_seconds"` // entry validity window
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries"` // bounded number of cached files
}

// TTL returns the cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// PathsConfig defines which files viewlens considers previewable.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before re-extracting
}

// Debounce returns the watch debounce as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			TTLSeconds: 30,
			MaxEntries: 128,
		},
		Paths: PathsConfig{
			Include: []string{
				"**/*.py",
				"*.py",
			},
			Ignore: []string{
				"**/__pycache__/**",
				"**/.venv/**",
				"**/venv/**",
				"**/site-packages/**",
			},
		},
		Watch: WatchConfig{
			DebounceMs: 300,
		},
	}
}
