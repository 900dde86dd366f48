// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/ellipsis-tui/internal/ellipsis"
	"github.com/jeranaias/ellipsis-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete ellipsis configuration.
type Config struct {
	// Fitting behavior
	Ellipsis EllipsisConfig `toml:"ellipsis" json:"ellipsis" yaml:"ellipsis"`

	// Default box geometry
	Box BoxConfig `toml:"box" json:"box" yaml:"box"`

	// Logging
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// EllipsisConfig contains the fitting options.
type EllipsisConfig struct {
	// Separator splits text into tokens. Empty means a single space.
	Separator string `toml:"separator" json:"separator" yaml:"separator"`
	// Marker is appended to shortened text. Empty means "...".
	Marker string `toml:"marker" json:"marker" yaml:"marker"`
	// Append is shown after the marker and never measured. Absent means none.
	Append *string `toml:"append,omitempty" json:"append,omitempty" yaml:"append,omitempty"`
	// DebounceMs is the quiet period before a refit, in milliseconds.
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"`
}

// BoxConfig contains default box geometry.
type BoxConfig struct {
	// Width in cells; 0 means the terminal width.
	Width int `toml:"width" json:"width" yaml:"width"`
	// Height in rows.
	Height int `toml:"height" json:"height" yaml:"height"`
	// Wrap is "word" or "none".
	Wrap string `toml:"wrap" json:"wrap" yaml:"wrap"`
	// Border draws a rounded border around boxes in the viewer.
	Border bool `toml:"border" json:"border" yaml:"border"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error, disabled.
	Level string `toml:"level" json:"level" yaml:"level"`
	// File receives log output. Empty logs to stderr for one-shot commands
	// and nowhere for the viewer, which owns the terminal.
	File string `toml:"file" json:"file" yaml:"file"`
}

// Options converts the fitting settings into ellipsis options.
func (e EllipsisConfig) Options() ellipsis.Options {
	var appendix *string
	if e.Append != nil {
		a := *e.Append
		appendix = &a
	}
	return ellipsis.Options{
		Separator: e.Separator,
		Marker:    e.Marker,
		Append:    appendix,
		Debounce:  time.Duration(e.DebounceMs) * time.Millisecond,
	}.Normalized()
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Ellipsis: EllipsisConfig{
			Separator:  ellipsis.DefaultSeparator,
			Marker:     ellipsis.DefaultMarker,
			DebounceMs: int(ellipsis.DefaultDebounce / time.Millisecond),
		},
		Box: BoxConfig{
			Width:  0,
			Height: 1,
			Wrap:   "word",
			Border: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the ellipsis configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ellipsis"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// candidatePaths returns the config files Load looks for, in order.
func candidatePaths() []string {
	if p := os.Getenv("ELLIPSIS_CONFIG"); p != "" {
		return []string{p}
	}
	dir, err := ConfigDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.json"),
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
	}
}

// FindConfigFile returns the first existing config file, or "" if none.
func FindConfigFile() string {
	for _, p := range candidatePaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the first config file found, falling back to
// defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	if path := FindConfigFile(); path != "" {
		return LoadFromPath(path)
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file. The format is
// chosen by extension; anything other than .json, .yaml and .yml is TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = decodeJSON(cfg, data)
	case ".yaml", ".yml":
		err = decodeYAML(cfg, data)
	default:
		err = decodeTOML(cfg, data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decodeTOML(cfg *Config, data []byte) error {
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return fmt.Errorf("failed to decode TOML: %w", err)
	}
	return nil
}

func decodeJSON(cfg *Config, data []byte) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}

func decodeYAML(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML: %w", err)
	}
	return nil
}

// fillDefaults fills in empty strings with defaults. Numeric zeros are
// meaningful (debounce 0, width 0) and are kept.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Ellipsis.Separator == "" {
		c.Ellipsis.Separator = defaults.Ellipsis.Separator
	}
	if c.Ellipsis.Marker == "" {
		c.Ellipsis.Marker = defaults.Ellipsis.Marker
	}
	if c.Box.Wrap == "" {
		c.Box.Wrap = defaults.Box.Wrap
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# ellipsis configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
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
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

// Validate checks the configuration and returns a ValidateErrors listing
// every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Ellipsis.DebounceMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "ellipsis.debounce_ms",
			Message: fmt.Sprintf("must be zero or positive, got %d", c.Ellipsis.DebounceMs),
		})
	}
	if c.Box.Width < 0 {
		errs = append(errs, ValidationError{
			Field:   "box.width",
			Message: fmt.Sprintf("must be zero or positive, got %d", c.Box.Width),
		})
	}
	if c.Box.Height < 1 {
		errs = append(errs, ValidationError{
			Field:   "box.height",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Box.Height),
		})
	}
	switch strings.ToLower(c.Box.Wrap) {
	case "word", "none":
	default:
		errs = append(errs, ValidationError{
			Field:   "box.wrap",
			Message: fmt.Sprintf("invalid wrap '%s', must be one of: word, none", c.Box.Wrap),
		})
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Logging.Level),
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

// ApplyEnvOverrides applies environment variable overrides:
//   - ELLIPSIS_SEPARATOR: overrides ellipsis.separator
//   - ELLIPSIS_MARKER: overrides ellipsis.marker
//   - ELLIPSIS_APPEND: overrides ellipsis.append
//   - ELLIPSIS_DEBOUNCE_MS: overrides ellipsis.debounce_ms
//   - ELLIPSIS_WRAP: overrides box.wrap
//   - ELLIPSIS_LOG_LEVEL: overrides logging.level
//   - ELLIPSIS_LOG_FILE: overrides logging.file
func (c *Config) ApplyEnvOverrides() {
	if sep := os.Getenv("ELLIPSIS_SEPARATOR"); sep != "" {
		c.Ellipsis.Separator = sep
	}
	if marker := os.Getenv("ELLIPSIS_MARKER"); marker != "" {
		c.Ellipsis.Marker = marker
	}
	if appendix, ok := os.LookupEnv("ELLIPSIS_APPEND"); ok {
		c.Ellipsis.Append = &appendix
	}
	if ms := os.Getenv("ELLIPSIS_DEBOUNCE_MS"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil {
			c.Ellipsis.DebounceMs = v
		}
	}
	if wrap := os.Getenv("ELLIPSIS_WRAP"); wrap != "" {
		c.Box.Wrap = wrap
	}
	if level := os.Getenv("ELLIPSIS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("ELLIPSIS_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
}

// =============================================================================
// GET HELPERS (DOT NOTATION)
// =============================================================================

// ErrUnknownKey is returned by Get for keys that do not exist.
var ErrUnknownKey = errors.New("unknown config key")

// Get returns a configuration value using dot notation (e.g. "box.wrap").
func (c *Config) Get(key string) (interface{}, error) {
	values := c.flatten()
	v, ok := values[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return v, nil
}

// GetAllKeys returns every key accepted by Get, sorted.
func GetAllKeys() []string {
	values := Default().flatten()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Config) flatten() map[string]interface{} {
	var appendix interface{}
	if c.Ellipsis.Append != nil {
		appendix = *c.Ellipsis.Append
	}
	return map[string]interface{}{
		"ellipsis.separator":   c.Ellipsis.Separator,
		"ellipsis.marker":      c.Ellipsis.Marker,
		"ellipsis.append":      appendix,
		"ellipsis.debounce_ms": c.Ellipsis.DebounceMs,
		"box.width":            c.Box.Width,
		"box.height":           c.Box.Height,
		"box.wrap":             c.Box.Wrap,
		"box.border":           c.Box.Border,
		"logging.level":        c.Logging.Level,
		"logging.file":         c.Logging.File,
	}
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
