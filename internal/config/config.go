// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mattparishdev/TextAdventure/internal/log"
	"github.com/mattparishdev/TextAdventure/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete console configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version" yaml:"version"`

	// Console engine configuration
	Console ConsoleConfig `toml:"console" json:"console" yaml:"console"`

	// Transcript archive configuration
	Storage StorageConfig `toml:"storage" json:"storage" yaml:"storage"`

	// Logging configuration
	Log LogConfig `toml:"log" json:"log" yaml:"log"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui" yaml:"ui"`
}

// ConsoleConfig controls request parsing and execution.
type ConsoleConfig struct {
	// Prompt is shown before the input line
	Prompt string `toml:"prompt" json:"prompt" yaml:"prompt"`
	// Tokenizer selects the argument grammar: "flag" (default) or "shell"
	Tokenizer string `toml:"tokenizer" json:"tokenizer" yaml:"tokenizer"`
	// StrictFlags reports flags a command does not declare instead of ignoring them
	StrictFlags bool `toml:"strict_flags" json:"strict_flags" yaml:"strict_flags"`
	// Greeting is printed when an interactive session starts (empty = none)
	Greeting string `toml:"greeting" json:"greeting" yaml:"greeting"`
}

// StorageConfig controls the transcript archive.
type StorageConfig struct {
	// ArchiveEnabled stores every transcript entry in SQLite
	ArchiveEnabled bool `toml:"archive_enabled" json:"archive_enabled" yaml:"archive_enabled"`
	// ArchivePath is the SQLite database file (~ is expanded)
	ArchivePath string `toml:"archive_path" json:"archive_path" yaml:"archive_path"`
}

// LogConfig controls the application log.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level" json:"level" yaml:"level"`
	// File is the log file (~ is expanded); rotated automatically
	File string `toml:"file" json:"file" yaml:"file"`
	// JSON writes one JSON object per line
	JSON bool `toml:"json" json:"json" yaml:"json"`
}

// UIConfig controls the frontends.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" json:"theme" yaml:"theme"`
	// RenderMarkdown renders emphasis markup in responses
	RenderMarkdown bool `toml:"render_markdown" json:"render_markdown" yaml:"render_markdown"`
	// AltScreen runs the TUI in the terminal's alternate screen
	AltScreen bool `toml:"alt_screen" json:"alt_screen" yaml:"alt_screen"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Console: ConsoleConfig{
			Prompt:      "> ",
			Tokenizer:   "flag",
			StrictFlags: false,
			Greeting:    "Type **help** to see the available commands.",
		},

		Storage: StorageConfig{
			ArchiveEnabled: true,
			ArchivePath:    "~/.textadventure/transcript.db",
		},

		Log: LogConfig{
			Level: "info",
			File:  "~/.textadventure/console.log",
		},

		UI: UIConfig{
			Theme:          "auto",
			RenderMarkdown: true,
			AltScreen:      true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".textadventure"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// candidatePaths lists the config files Load tries, in order.
func candidatePaths() []string {
	dir, err := ConfigDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.json"),
		filepath.Join(dir, "config.yaml"),
	}
}

// LocatePath returns the config file Load would read, if any exists.
func LocatePath() (string, bool) {
	for _, path := range candidatePaths() {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the first config file found in ConfigDir,
// falling back to defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	if path, ok := LocatePath(); ok {
		return LoadFromPath(path)
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The format is chosen by extension; anything unrecognized is
// read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := decode(cfg, path, data); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func decode(cfg *Config, path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to decode TOML: %w", err)
		}
	}
	return nil
}

// SetDefaults fills in any empty values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Console.Prompt == "" {
		c.Console.Prompt = defaults.Console.Prompt
	}
	if c.Console.Tokenizer == "" {
		c.Console.Tokenizer = defaults.Console.Tokenizer
	}
	if c.Storage.ArchivePath == "" {
		c.Storage.ArchivePath = defaults.Storage.ArchivePath
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "# textadventure console configuration")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch strings.ToLower(c.Console.Tokenizer) {
	case "flag", "shell":
	default:
		errs = append(errs, ValidationError{
			Field:   "console.tokenizer",
			Message: fmt.Sprintf("invalid tokenizer '%s', must be one of: flag, shell", c.Console.Tokenizer),
		})
	}

	if strings.TrimSpace(c.Console.Prompt) == "" {
		errs = append(errs, ValidationError{
			Field:   "console.prompt",
			Message: "prompt must not be blank",
		})
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light", "auto":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if c.Storage.ArchiveEnabled && c.Storage.ArchivePath == "" {
		errs = append(errs, ValidationError{
			Field:   "storage.archive_path",
			Message: "archive path is required when the archive is enabled",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TEXTADVENTURE_PROMPT: overrides console.prompt
//   - TEXTADVENTURE_TOKENIZER: overrides console.tokenizer
//   - TEXTADVENTURE_STRICT_FLAGS: "1" or "true" enables strict flags
//   - TEXTADVENTURE_ARCHIVE: "0" or "false" disables the transcript archive
//   - TEXTADVENTURE_ARCHIVE_PATH: overrides storage.archive_path
//   - TEXTADVENTURE_LOG_LEVEL: overrides log.level
//   - TEXTADVENTURE_LOG_FILE: overrides log.file
//   - TEXTADVENTURE_THEME: overrides ui.theme
//   - NO_COLOR: disables markdown rendering
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TEXTADVENTURE_PROMPT"); v != "" {
		c.Console.Prompt = v
	}
	if v := os.Getenv("TEXTADVENTURE_TOKENIZER"); v != "" {
		c.Console.Tokenizer = v
	}
	if v := os.Getenv("TEXTADVENTURE_STRICT_FLAGS"); v != "" {
		c.Console.StrictFlags = isTrue(v)
	}
	if v := os.Getenv("TEXTADVENTURE_ARCHIVE"); v != "" {
		c.Storage.ArchiveEnabled = isTrue(v)
	}
	if v := os.Getenv("TEXTADVENTURE_ARCHIVE_PATH"); v != "" {
		c.Storage.ArchivePath = v
	}
	if v := os.Getenv("TEXTADVENTURE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TEXTADVENTURE_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("TEXTADVENTURE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.UI.RenderMarkdown = false
	}
}

func isTrue(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
