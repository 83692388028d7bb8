package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/c360/ringbuf/config"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	InputPath   string
	Lines       int
	Reverse     bool
	LogLevel    string
	LogFormat   string
	MetricsPort int
	ShowVersion bool

	// set records which flags were given explicitly; only those override
	// the loaded configuration.
	set map[string]bool
}

func parseFlags(args []string, output io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{set: make(map[string]bool)}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("RINGBUF_CONFIG", ""),
		"Path to a JSON or YAML configuration file (env: RINGBUF_CONFIG)")
	fs.StringVar(&cfg.ConfigPath, "c",
		getEnv("RINGBUF_CONFIG", ""),
		"Path to a JSON or YAML configuration file (env: RINGBUF_CONFIG)")
	fs.StringVar(&cfg.InputPath, "input", "-",
		"File to read, - for stdin")
	fs.IntVar(&cfg.Lines, "lines", config.DefaultLines,
		"Number of lines to keep (env: RINGBUF_LINES)")
	fs.IntVar(&cfg.Lines, "n", config.DefaultLines,
		"Number of lines to keep (env: RINGBUF_LINES)")
	fs.BoolVar(&cfg.Reverse, "reverse", false,
		"Print the newest line first (env: RINGBUF_REVERSE)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info",
		"Log level: debug, info, warn, error (env: RINGBUF_LOG_LEVEL)")
	fs.StringVar(&cfg.LogFormat, "log-format", "text",
		"Log format: json, text (env: RINGBUF_LOG_FORMAT)")
	fs.IntVar(&cfg.MetricsPort, "metrics-port", 0,
		"Prometheus metrics port, 0 to disable (env: RINGBUF_METRICS_PORT)")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")

	fs.Usage = func() {
		printDetailedHelp(fs, output)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "c":
			cfg.set["config"] = true
		case "n":
			cfg.set["lines"] = true
		default:
			cfg.set[f.Name] = true
		}
	})

	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion {
		return nil
	}

	if cfg.set["lines"] && cfg.Lines <= 0 {
		return fmt.Errorf("invalid line count: %d", cfg.Lines)
	}

	if cfg.set["log-level"] && !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	if cfg.set["log-format"] && !slices.Contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	return nil
}

// apply overrides cfg with the flags given on the command line
func (c *CLIConfig) apply(cfg *config.Config) {
	if c.set["lines"] {
		cfg.History.Lines = c.Lines
	}
	if c.set["reverse"] {
		cfg.History.Reverse = c.Reverse
	}
	if c.set["log-level"] {
		cfg.Log.Level = c.LogLevel
	}
	if c.set["log-format"] {
		cfg.Log.Format = c.LogFormat
	}
	if c.set["metrics-port"] {
		cfg.Metrics.Port = c.MetricsPort
	}
}

func printDetailedHelp(fs *flag.FlagSet, output io.Writer) {
	_, _ = fmt.Fprintf(output, `%s - keep the last lines of a stream in a ring buffer

Usage: %s [options]

Options:
`, appName, appName)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(output, `
Precedence: flags, then environment, then the configuration file, then defaults.

Exit status: 0 on success, 1 on a runtime failure, 2 for invalid flags or
configuration, 3 on a fatal error.

Examples:
  # Last 20 lines of a log, newest first
  %s -n 20 -reverse -input /var/log/app.log

  # Expose metrics while reading a pipe
  some-command | %s -metrics-port 9400

Version: %s
Build: %s
`, appName, appName, Version, BuildTime)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
