package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Validate checks that a configuration is usable: positive cache bounds
// and compilable path patterns.
func Validate(cfg *Config) error {
	if cfg.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache.ttl_seconds must be positive, got %d", cfg.Cache.TTLSeconds)
	}
	if cfg.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be positive, got %d", cfg.Cache.MaxEntries)
	}
	if cfg.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", cfg.Watch.DebounceMs)
	}
	for _, pattern := range cfg.Paths.Include {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
	}
	for _, pattern := range cfg.Paths.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// PathMatcher decides whether a path looks like a previewable source file
// according to the configured include/ignore globs.
type PathMatcher struct {
	include []glob.Glob
	ignore  []glob.Glob
}

// NewPathMatcher compiles the configured patterns. Call Validate first;
// patterns that fail to compile here are skipped.
func NewPathMatcher(paths PathsConfig) *PathMatcher {
	m := &PathMatcher{}
	for _, pattern := range paths.Include {
		if g, err := glob.Compile(pattern, '/'); err == nil {
			m.include = append(m.include, g)
		}
	}
	for _, pattern := range paths.Ignore {
		if g, err := glob.Compile(pattern, '/'); err == nil {
			m.ignore = append(m.ignore, g)
		}
	}
	return m
}

// Matches reports whether path matches an include pattern and no ignore
// pattern. With no include patterns configured, everything is included.
func (m *PathMatcher) Matches(path string) bool {
	for _, g := range m.ignore {
		if g.Match(path) {
			return false
		}
	}
	if len(m.include) == 0 {
		return true
	}
	for _, g := range m.include {
		if g.Match(path) {
			return true
		}
	}
	return false
}
