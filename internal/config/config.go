// Package config provides configuration loading and management for srebuddy.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the complete srebuddy configuration
type Config struct {
	Corpus  CorpusConfig  `yaml:"corpus"`
	Docs    DocsConfig    `yaml:"docs"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`

	// Root is the directory relative corpus paths resolve against. It is
	// set by the Loader and never read from or written to a file.
	Root string `yaml:"-"`
}

// CorpusConfig configures where prompt templates come from
type CorpusConfig struct {
	// Paths are files or doublestar globs, concatenated in order
	Paths []string `yaml:"paths"`
	// DisableEmbedded stops falling back to the built-in corpus when no
	// configured path matches
	DisableEmbedded bool `yaml:"disable_embedded,omitempty"`
}

// DocsConfig configures reference documentation retrieval
type DocsConfig struct {
	// Timeout bounds each URL fetch
	Timeout time.Duration `yaml:"timeout"`
	// MaxBytes caps the size of a single document
	MaxBytes int64 `yaml:"max_bytes"`
	// Concurrency is the number of documents fetched at once
	Concurrency int `yaml:"concurrency"`
	// UserAgent is sent with URL fetches
	UserAgent string `yaml:"user_agent"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File receives log output instead of stderr. The TUI always logs to a
	// file so output does not corrupt the screen.
	File string `yaml:"file,omitempty"`
}

// OutputConfig configures rendering of results documents
type OutputConfig struct {
	// Style is a glamour style name, or "auto" to detect the terminal
	Style string `yaml:"style"`
	// Width is the word-wrap width for rendered Markdown
	Width int `yaml:"width"`
}

// Supported values for validated enum fields.
var (
	LogLevels  = []string{"debug", "info", "warn", "error"}
	LogFormats = []string{"json", "console"}
	Styles     = []string{"auto", "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night"}
)

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Paths: []string{
				filepath.Join(ProjectDir, "prompts.md"),
				filepath.Join(ProjectDir, "prompts", "**", "*.md"),
			},
		},
		Docs: DocsConfig{
			Timeout:     15 * time.Second,
			MaxBytes:    2 * 1024 * 1024,
			Concurrency: 4,
			UserAgent:   "srebuddy/1.0 (+https://github.com/sardesh/srebuddy)",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "json",
		},
		Output: OutputConfig{
			Style: "auto",
			Width: 80,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if len(c.Corpus.Paths) == 0 && c.Corpus.DisableEmbedded {
		return fmt.Errorf("%w: corpus.paths is required when the embedded corpus is disabled", ErrInvalidConfig)
	}
	if c.Docs.Timeout <= 0 {
		return fmt.Errorf("%w: docs.timeout must be positive", ErrInvalidConfig)
	}
	if c.Docs.MaxBytes <= 0 {
		return fmt.Errorf("%w: docs.max_bytes must be positive", ErrInvalidConfig)
	}
	if c.Docs.Concurrency < 1 {
		return fmt.Errorf("%w: docs.concurrency must be at least 1", ErrInvalidConfig)
	}
	if !slices.Contains(LogLevels, c.Logging.Level) {
		return fmt.Errorf("%w: logging.level must be one of %v", ErrInvalidConfig, LogLevels)
	}
	if !slices.Contains(LogFormats, c.Logging.Format) {
		return fmt.Errorf("%w: logging.format must be one of %v", ErrInvalidConfig, LogFormats)
	}
	if !slices.Contains(Styles, c.Output.Style) {
		return fmt.Errorf("%w: output.style must be one of %v", ErrInvalidConfig, Styles)
	}
	if c.Output.Width < 20 {
		return fmt.Errorf("%w: output.width must be at least 20", ErrInvalidConfig)
	}
	return nil
}

// ResolvePath makes a relative path absolute against Root.
func (c *Config) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || c.Root == "" {
		return path
	}
	return filepath.Join(c.Root, path)
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Corpus
	if len(other.Corpus.Paths) > 0 {
		c.Corpus.Paths = slices.Clone(other.Corpus.Paths)
	}
	if other.Corpus.DisableEmbedded {
		c.Corpus.DisableEmbedded = true
	}

	// Docs
	if other.Docs.Timeout != 0 {
		c.Docs.Timeout = other.Docs.Timeout
	}
	if other.Docs.MaxBytes != 0 {
		c.Docs.MaxBytes = other.Docs.MaxBytes
	}
	if other.Docs.Concurrency != 0 {
		c.Docs.Concurrency = other.Docs.Concurrency
	}
	if other.Docs.UserAgent != "" {
		c.Docs.UserAgent = other.Docs.UserAgent
	}

	// Logging
	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.Format != "" {
		c.Logging.Format = other.Logging.Format
	}
	if other.Logging.File != "" {
		c.Logging.File = other.Logging.File
	}

	// Output
	if other.Output.Style != "" {
		c.Output.Style = other.Output.Style
	}
	if other.Output.Width != 0 {
		c.Output.Width = other.Output.Width
	}
}
