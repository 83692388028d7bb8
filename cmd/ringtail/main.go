// Package main implements ringtail, which keeps the last lines of its input
// in a fixed-size ring buffer and prints them once the input ends.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/c360/ringbuf/config"
	cerrors "github.com/c360/ringbuf/errors"
	"github.com/c360/ringbuf/metric"
	"github.com/c360/ringbuf/pkg/history"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "ringtail"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(exitFatal)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		code := exitCode(err)
		slog.Error("ringtail failed",
			"error", err,
			"error_class", cerrors.Classify(err).String(),
			"exit_code", code)
		cancel()
		os.Exit(code)
	}
}

// Exit codes
const (
	exitFailure = 1 // runtime failure, such as an unreadable input
	exitInvalid = 2 // invalid flags or configuration
	exitFatal   = 3 // violated precondition or panic
)

// exitCode maps an error from run to the process exit code by its class
func exitCode(err error) int {
	switch cerrors.Classify(err) {
	case cerrors.ErrorInvalid:
		return exitInvalid
	case cerrors.ErrorFatal:
		return exitFatal
	default:
		return exitFailure
	}
}

// run executes one ringtail invocation. Retained lines are written to
// stdout, logs and usage to stderr.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cliCfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return cerrors.WrapInvalid(err, "ringtail", "run", "parse flags")
	}
	if err := validateFlags(cliCfg); err != nil {
		return cerrors.WrapInvalid(fmt.Errorf("invalid flags: %w", err), "ringtail", "run", "validate flags")
	}

	if cliCfg.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
		return nil
	}

	cfg, err := loadConfig(cliCfg)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runID := uuid.NewString()
	logger := setupLogger(cfg.Log.Level, cfg.Log.Format, runID, stderr)
	slog.SetDefault(logger)

	logger.Debug("Starting ringtail",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath,
		"lines", cfg.History.Lines)

	registry := metric.NewMetricsRegistry()
	registry.CoreMetrics().RecordBuildInfo(Version, runID)

	if cfg.Metrics.Port > 0 {
		server := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)
		if err := server.Start(func(err error) {
			logger.Error("Metrics server failed", "error", err)
		}); err != nil {
			return err
		}
		logger.Info("Metrics server started", "address", server.Address())
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				logger.Warn("Metrics server shutdown failed", "error", err)
			}
		}()
	}

	tracker, err := history.New(cfg.History.Lines,
		history.WithMetrics[string](registry, appName),
		history.WithLogger[string](logger),
	)
	if err != nil {
		return err
	}

	input, source, err := openInput(cliCfg.InputPath, stdin)
	if err != nil {
		registry.CoreMetrics().RecordError("open")
		return err
	}
	defer input.Close()

	start := time.Now()
	err = tail(ctx, input, source, tracker, registry.CoreMetrics())
	registry.CoreMetrics().RecordReadDuration(source, time.Since(start))
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Interrupted, printing retained lines")
	case err != nil:
		registry.CoreMetrics().RecordError("read")
		return err
	}

	logger.Debug("Input drained",
		"source", source,
		"retained", tracker.Len(),
		"evicted", tracker.Stats().Evictions())

	return printLines(stdout, tracker, cfg.History.Reverse)
}

// loadConfig layers the optional file, the environment and the flags
func loadConfig(cliCfg *CLIConfig) (*config.Config, error) {
	loader := config.NewLoader()
	if cliCfg.ConfigPath != "" {
		loader.AddLayer(cliCfg.ConfigPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	cliCfg.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openInput(path string, stdin io.Reader) (io.ReadCloser, string, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), "stdin", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open input: %w", err)
	}
	return f, path, nil
}

func printLines(w io.Writer, tracker *history.Tracker[string], reverse bool) error {
	lines := tracker.Snapshot()
	if reverse {
		lines = tracker.Recent(tracker.Len())
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
