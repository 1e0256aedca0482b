// Package config provides reading and writing of seek configuration.
// Supports both global (~/.seek/config.yaml) and local (.seek/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.seek/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .seek/config.yaml
	ScopeLocal
)

// Search holds search backend options.
type Search struct {
	// Ripgrep is the rg executable. A bare name is resolved on PATH once at
	// startup; empty means "rg".
	Ripgrep     string `yaml:"ripgrep,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"` // time.ParseDuration syntax
	MaxDepth    *int   `yaml:"max_depth,omitempty"`
	ExitMatch   *int   `yaml:"exit_match,omitempty"`
	ExitNoMatch *int   `yaml:"exit_no_match,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	SampleSize    *int   `yaml:"sample_size,omitempty"`
	MaxLineLength *int   `yaml:"max_line_length,omitempty"`
	MaxContent    *int64 `yaml:"max_content,omitempty"`
	MaxMatches    *int   `yaml:"max_matches,omitempty"`
}

// Log holds audit log options.
type Log struct {
	Audit *bool `yaml:"audit,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultRipgrep       = "rg"
	DefaultTimeout       = 30 * time.Second
	DefaultMaxDepth      = 32
	DefaultExitMatch     = 0
	DefaultExitNoMatch   = 1
	DefaultSampleSize    = 8192
	DefaultMaxLineLength = 10 * 1024 * 1024  // 10 MB
	DefaultMaxContent    = 100 * 1024 * 1024 // 100 MB
	DefaultMaxMatches    = 1000
)

// Validation bounds for configuration values.
const (
	MinTimeout       = 100 * time.Millisecond
	MaxTimeout       = time.Hour
	MinMaxDepth      = 1
	MaxMaxDepth      = 4096
	MinExitCode      = 0
	MaxExitCode      = 255
	MinSampleSize    = 1
	MaxSampleSize    = 16 * 1024 * 1024 // 16 MB
	MinMaxLineLength = 1
	MaxMaxLineLength = 1024 * 1024 * 1024 // 1 GB
	MinMaxContent    = 1
	MaxMaxContent    = 10 * 1024 * 1024 * 1024 // 10 GB
	MinMaxMatches    = 1
	MaxMaxMatches    = 10_000_000
)

// Config contains configuration for seek.
type Config struct {
	Search Search `yaml:"search,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`
	Log    Log    `yaml:"log,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Search.Timeout != "" {
		d, err := time.ParseDuration(c.Search.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout %q: %w", ErrInvalidValue, c.Search.Timeout, err)
		}
		if d < MinTimeout || d > MaxTimeout {
			return fmt.Errorf("%w: timeout must be between %s and %s, got %s",
				ErrInvalidValue, MinTimeout, MaxTimeout, d)
		}
	}
	checks := []struct {
		name     string
		v        *int
		min, max int
	}{
		{"max_depth", c.Search.MaxDepth, MinMaxDepth, MaxMaxDepth},
		{"exit_match", c.Search.ExitMatch, MinExitCode, MaxExitCode},
		{"exit_no_match", c.Search.ExitNoMatch, MinExitCode, MaxExitCode},
		{"sample_size", c.Limits.SampleSize, MinSampleSize, MaxSampleSize},
		{"max_line_length", c.Limits.MaxLineLength, MinMaxLineLength, MaxMaxLineLength},
		{"max_matches", c.Limits.MaxMatches, MinMaxMatches, MaxMaxMatches},
	}
	for _, ch := range checks {
		if ch.v != nil && (*ch.v < ch.min || *ch.v > ch.max) {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d",
				ErrInvalidValue, ch.name, ch.min, ch.max, *ch.v)
		}
	}
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	if c.ExitMatch() == c.ExitNoMatch() {
		return fmt.Errorf("%w: exit_match and exit_no_match must differ", ErrInvalidValue)
	}
	return nil
}

// Ripgrep returns the configured ripgrep executable (defaults to "rg").
func (c *Config) Ripgrep() string {
	if c.Search.Ripgrep == "" {
		return DefaultRipgrep
	}
	return c.Search.Ripgrep
}

// Timeout returns the per-search ripgrep timeout (defaults to 30s).
// Validate has already rejected unparsable values.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.Search.Timeout)
	if c.Search.Timeout == "" || err != nil {
		return DefaultTimeout
	}
	return d
}

// MaxDepth returns the deepest directory level searched (defaults to 32).
func (c *Config) MaxDepth() int {
	if c.Search.MaxDepth == nil {
		return DefaultMaxDepth
	}
	return *c.Search.MaxDepth
}

// ExitMatch returns ripgrep's "matched" exit status (defaults to 0).
func (c *Config) ExitMatch() int {
	if c.Search.ExitMatch == nil {
		return DefaultExitMatch
	}
	return *c.Search.ExitMatch
}

// ExitNoMatch returns ripgrep's "nothing matched" exit status (defaults to 1).
func (c *Config) ExitNoMatch() int {
	if c.Search.ExitNoMatch == nil {
		return DefaultExitNoMatch
	}
	return *c.Search.ExitNoMatch
}

// SampleSize returns how many leading bytes the classifier reads (defaults to 8192).
func (c *Config) SampleSize() int {
	if c.Limits.SampleSize == nil {
		return DefaultSampleSize
	}
	return *c.Limits.SampleSize
}

// MaxLineLength returns the maximum line length for scanning (defaults to 10 MB).
// Files with a longer line are skipped by search and cannot be ranged by read.
func (c *Config) MaxLineLength() int {
	if c.Limits.MaxLineLength == nil {
		return DefaultMaxLineLength
	}
	return *c.Limits.MaxLineLength
}

// MaxContent returns the largest file read_file returns (defaults to 100 MB).
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// MaxMatches returns the match cap for one search (defaults to 1000).
func (c *Config) MaxMatches() int {
	if c.Limits.MaxMatches == nil {
		return DefaultMaxMatches
	}
	return *c.Limits.MaxMatches
}

// Audit returns whether operations are recorded in the audit log (defaults to true).
func (c *Config) Audit() bool {
	if c.Log.Audit == nil {
		return true
	}
	return *c.Log.Audit
}

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return filepath.Join(".seek", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.seek/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".seek", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
