package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360/ringbuf/errors"
)

const (
	// DefaultLines is the number of retained lines when none is configured
	DefaultLines = 10

	// DefaultEnvPrefix prefixes the environment variables read by Loader
	DefaultEnvPrefix = "RINGBUF"

	maxConfigSize = 1 << 20 // 1MB max config file size
)

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "text"}
)

// Config is the configuration of the ringtail tool
type Config struct {
	History HistoryConfig `json:"history" yaml:"history"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

// HistoryConfig controls how many lines are retained and how they are printed
type HistoryConfig struct {
	Lines   int  `json:"lines" yaml:"lines"`
	Reverse bool `json:"reverse" yaml:"reverse"` // Newest line first
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint. Port 0 disables it.
type MetricsConfig struct {
	Port int    `json:"port" yaml:"port"`
	Path string `json:"path" yaml:"path"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		History: HistoryConfig{
			Lines: DefaultLines,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Port: 0,
			Path: "/metrics",
		},
	}
}

// Validate checks the configuration and normalizes case-insensitive fields
func (c *Config) Validate() error {
	if c.History.Lines <= 0 {
		return invalid(fmt.Sprintf("history.lines must be positive, got %d", c.History.Lines))
	}

	c.Log.Level = strings.ToLower(c.Log.Level)
	if !slices.Contains(validLevels, c.Log.Level) {
		return invalid(fmt.Sprintf("invalid log level: %s", c.Log.Level))
	}

	c.Log.Format = strings.ToLower(c.Log.Format)
	if !slices.Contains(validFormats, c.Log.Format) {
		return invalid(fmt.Sprintf("invalid log format: %s", c.Log.Format))
	}

	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return invalid(fmt.Sprintf("invalid metrics port: %d", c.Metrics.Port))
	}
	if c.Metrics.Port != 0 && c.Metrics.Path == "" {
		return errors.WrapInvalid(fmt.Errorf("%w: metrics.path", errors.ErrMissingConfig),
			"Config", "Validate", "validate configuration")
	}
	if c.Metrics.Port != 0 && !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid(fmt.Sprintf("metrics.path must start with '/', got %q", c.Metrics.Path))
	}

	return nil
}

func invalid(reason string) error {
	return errors.WrapInvalid(fmt.Errorf("%w: %s", errors.ErrInvalidConfig, reason),
		"Config", "Validate", "validate configuration")
}

// Clone returns a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// SaveToFile writes the configuration, as YAML for .yaml/.yml paths and JSON otherwise
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return errors.WrapInvalid(err, "Config", "SaveToFile", "encode configuration")
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.WrapTransient(err, "Config", "SaveToFile", "write configuration")
	}
	return nil
}

// Load reads a single configuration file on top of the defaults, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	loader := NewLoader()
	loader.EnableValidation(true)
	return loader.LoadFile(path)
}

// Loader handles configuration loading with layers and overrides
type Loader struct {
	layers     []string
	validation bool
	envPrefix  string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		layers:    []string{},
		envPrefix: DefaultEnvPrefix,
	}
}

// AddLayer adds a configuration file layer. Later layers override earlier
// ones field by field.
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// EnableValidation enables or disables configuration validation
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// SetEnvPrefix changes the prefix of the environment overrides
func (l *Loader) SetEnvPrefix(prefix string) {
	l.envPrefix = prefix
}

// LoadFile loads configuration from a single file
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load loads and merges all configuration layers
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	for _, path := range l.layers {
		if err := l.decodeLayer(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// decodeLayer decodes path into cfg. Fields missing from the file keep
// their current value.
func (l *Loader) decodeLayer(path string, cfg *Config) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}

	if isYAML(path) {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil {
			return errors.WrapInvalid(fmt.Errorf("%w: %s: %v", errors.ErrInvalidConfig, path, err),
				"Loader", "Load", "decode YAML")
		}
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return errors.WrapInvalid(fmt.Errorf("%w: %s: %v", errors.ErrInvalidConfig, path, err),
			"Loader", "Load", "decode JSON")
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapInvalid(fmt.Errorf("%w: %s", errors.ErrConfigNotFound, path),
				"Loader", "Load", "stat configuration")
		}
		return nil, errors.WrapTransient(err, "Loader", "Load", "stat configuration")
	}
	if info.Size() > maxConfigSize {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %s is %d bytes, limit %d", errors.ErrInvalidConfig, path, info.Size(), maxConfigSize),
			"Loader", "Load", "check configuration size")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapTransient(err, "Loader", "Load", "read configuration")
	}
	return data, nil
}

// applyEnvOverrides applies environment variable overrides
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv(l.envPrefix + "_LINES"); val != "" {
		lines, err := strconv.Atoi(val)
		if err != nil {
			return l.envError("_LINES", val, err)
		}
		cfg.History.Lines = lines
	}
	if val := os.Getenv(l.envPrefix + "_REVERSE"); val != "" {
		reverse, err := strconv.ParseBool(val)
		if err != nil {
			return l.envError("_REVERSE", val, err)
		}
		cfg.History.Reverse = reverse
	}
	if val := os.Getenv(l.envPrefix + "_LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	if val := os.Getenv(l.envPrefix + "_LOG_FORMAT"); val != "" {
		cfg.Log.Format = val
	}
	if val := os.Getenv(l.envPrefix + "_METRICS_PORT"); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return l.envError("_METRICS_PORT", val, err)
		}
		cfg.Metrics.Port = port
	}
	if val := os.Getenv(l.envPrefix + "_METRICS_PATH"); val != "" {
		cfg.Metrics.Path = val
	}
	return nil
}

func (l *Loader) envError(suffix, value string, err error) error {
	return errors.WrapInvalid(
		fmt.Errorf("%w: %s%s=%q: %v", errors.ErrInvalidConfig, l.envPrefix, suffix, value, err),
		"Loader", "Load", "apply environment overrides")
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
