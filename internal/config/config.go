// Package config loads run settings for the target search from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"targetsearch/internal/search"
)

// Config represents target search configuration options
type Config struct {
	// Targets are the file names to locate
	Targets []string `yaml:"targets"`

	// HomeOnly restricts the run to the home directory stage
	HomeOnly bool `yaml:"home_only"`

	// ShortCircuit stops the run once every target is found
	ShortCircuit bool `yaml:"short_circuit"`

	// MaxResults caps the matches consumed per stage
	MaxResults int `yaml:"max_results"`

	// Profile names the platform exclusion profile (empty = detected)
	Profile string `yaml:"profile"`

	// Root overrides the filesystem root of the broad stages
	Root string `yaml:"root"`

	// Extension filters candidate files by extension
	Extension string `yaml:"extension"`

	// RawPatterns treats targets as regex fragments
	RawPatterns bool `yaml:"raw_patterns"`

	// LogLevel sets the logging verbosity (debug, info, warning, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where logs will be written
	LogDir string `yaml:"log_dir"`

	// Fingerprint hashes found targets in the report
	Fingerprint bool `yaml:"fingerprint"`

	// CollectDir receives copies of found targets when set
	CollectDir string `yaml:"collect_dir"`

	// ConflictPolicy applies when a collected file already exists (skip, overwrite, rename)
	ConflictPolicy string `yaml:"conflict_policy"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	targets := make([]string, len(search.DefaultTargets))
	copy(targets, search.DefaultTargets)
	return &Config{
		Targets:        targets,
		MaxResults:     search.DefaultMaxResults,
		LogLevel:       "info",
		LogDir:         search.DefaultLogDir(),
		ConflictPolicy: "skip",
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults; keys absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that the search would otherwise reject late
func (c *Config) Validate() error {
	if c.MaxResults < 0 {
		return fmt.Errorf("max_results must not be negative, got %d", c.MaxResults)
	}
	if _, err := search.NewTargetSet(c.Targets); err != nil {
		return fmt.Errorf("invalid targets: %w", err)
	}
	if _, err := search.LookupProfile(c.Profile); err != nil {
		return err
	}
	if _, err := search.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := search.ParseConflictPolicy(c.ConflictPolicy); err != nil {
		return err
	}
	return nil
}

// SearchOptions converts the configuration into search options
func (c *Config) SearchOptions() (search.Options, error) {
	profile, err := search.LookupProfile(c.Profile)
	if err != nil {
		return search.Options{}, err
	}
	return search.Options{
		Targets:      c.Targets,
		Profile:      profile,
		Root:         c.Root,
		HomeOnly:     c.HomeOnly,
		ShortCircuit: c.ShortCircuit,
		MaxResults:   c.MaxResults,
		Extension:    c.Extension,
		RawPatterns:  c.RawPatterns,
	}, nil
}
