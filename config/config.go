package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Config is the root configuration structure.
type Config struct {
	MaxAge         int          `json:"maxAge"`         // Age cutoff for included releases, in days
	TagRegexp      string       `json:"tagRegexp"`      // Release tag pattern with one capture group
	FileName       string       `json:"fileName"`       // Output document name
	WrapColumn     int          `json:"wrapColumn"`     // Reflow width for rendered text
	Debug          bool         `json:"debug"`          // Verbose diagnostic tracing
	ExcludeMessage string       `json:"excludeMessage"` // Drop commits whose message matches
	IncludeMessage string       `json:"includeMessage"` // Keep only commits whose message matches
	CurrentVersion string       `json:"currentVersion"` // Label for the unreleased head
	Filters        FilterConfig `json:"filters"`
}

// FilterConfig holds commit path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// Settings is a validated, compiled view of Config, ready for collection and
// rendering. All regex problems surface here, before any history is read.
type Settings struct {
	MaxAge         int
	TagPattern     *regexp.Regexp
	FileName       string
	WrapColumn     int
	Debug          bool
	ExcludeMessage *regexp.Regexp // nil when unset
	IncludeMessage *regexp.Regexp // nil when unset
	CurrentVersion string
	IncludePaths   []string
	ExcludePaths   []string
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		MaxAge:         365,
		TagRegexp:      `^v(\d+\.\d+)$`,
		FileName:       "CHANGES",
		WrapColumn:     74,
		Debug:          false,
		CurrentVersion: "unreleased",
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// Compile validates the configuration and compiles its patterns.
func (c *Config) Compile() (*Settings, error) {
	if c.MaxAge < 0 {
		return nil, fmt.Errorf("maxAge must not be negative, got %d", c.MaxAge)
	}
	if c.WrapColumn <= 0 {
		return nil, fmt.Errorf("wrapColumn must be positive, got %d", c.WrapColumn)
	}

	tagPattern, err := regexp.Compile(c.TagRegexp)
	if err != nil {
		return nil, fmt.Errorf("invalid tagRegexp %q: %w", c.TagRegexp, err)
	}
	if tagPattern.NumSubexp() < 1 {
		return nil, fmt.Errorf("tagRegexp %q must contain a capture group for the version label", c.TagRegexp)
	}

	exclude, err := compileOptional("excludeMessage", c.ExcludeMessage)
	if err != nil {
		return nil, err
	}
	include, err := compileOptional("includeMessage", c.IncludeMessage)
	if err != nil {
		return nil, err
	}

	return &Settings{
		MaxAge:         c.MaxAge,
		TagPattern:     tagPattern,
		FileName:       c.FileName,
		WrapColumn:     c.WrapColumn,
		Debug:          c.Debug,
		ExcludeMessage: exclude,
		IncludeMessage: include,
		CurrentVersion: c.CurrentVersion,
		IncludePaths:   c.Filters.Include,
		ExcludePaths:   c.Filters.Exclude,
	}, nil
}

func compileOptional(name, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, pattern, err)
	}
	return re, nil
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".changelog.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".changelog.json"))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, ".changelog.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
