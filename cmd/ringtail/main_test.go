package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/c360/ringbuf/errors"
	"github.com/c360/ringbuf/metric"
	"github.com/c360/ringbuf/pkg/history"
)

func numberedLines(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	return sb.String()
}

func runRingtail(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(input), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_DefaultLines(t *testing.T) {
	stdout, _, err := runRingtail(t, numberedLines(15))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "line 6", lines[0])
	assert.Equal(t, "line 15", lines[9])
}

func TestRun_LinesAndReverse(t *testing.T) {
	stdout, _, err := runRingtail(t, numberedLines(5), "-n", "3", "-reverse")
	require.NoError(t, err)
	assert.Equal(t, "line 5\nline 4\nline 3\n", stdout)
}

func TestRun_FewerLinesThanCapacity(t *testing.T) {
	stdout, _, err := runRingtail(t, "only\n", "-lines", "4")
	require.NoError(t, err)
	assert.Equal(t, "only\n", stdout)

	stdout, _, err = runRingtail(t, "", "-lines", "4")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestRun_KeepsEmptyLines(t *testing.T) {
	stdout, _, err := runRingtail(t, "a\n\nb\n", "-n", "3")
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb\n", stdout)
}

func TestRun_InputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.log")
	require.NoError(t, os.WriteFile(path, []byte(numberedLines(4)), 0600))

	stdout, _, err := runRingtail(t, "ignored\n", "-input", path, "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "line 3\nline 4\n", stdout)

	_, _, err = runRingtail(t, "", "-input", filepath.Join(t.TempDir(), "missing.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open input")
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ringtail.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  lines: 2\n  reverse: true\n"), 0600))

	stdout, _, err := runRingtail(t, numberedLines(5), "-config", path)
	require.NoError(t, err)
	assert.Equal(t, "line 5\nline 4\n", stdout)

	// Flags override the file
	stdout, _, err = runRingtail(t, numberedLines(5), "-c", path, "-reverse=false", "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, "line 5\n", stdout)
}

func TestRun_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ringtail.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"history": {"lines": 4}}`), 0600))
	t.Setenv("RINGBUF_CONFIG", path)
	t.Setenv("RINGBUF_LINES", "1")

	stdout, _, err := runRingtail(t, numberedLines(5))
	require.NoError(t, err)
	assert.Equal(t, "line 5\n", stdout)
}

func TestRun_Logging(t *testing.T) {
	_, stderr, err := runRingtail(t, numberedLines(3), "-log-level", "debug", "-log-format", "json")
	require.NoError(t, err)

	assert.Contains(t, stderr, `"msg":"Starting ringtail"`)
	assert.Contains(t, stderr, `"msg":"Input drained"`)
	assert.Contains(t, stderr, `"run_id":`)
	assert.Contains(t, stderr, `"service":"ringtail"`)
}

func TestRun_Version(t *testing.T) {
	stdout, _, err := runRingtail(t, "", "-version")
	require.NoError(t, err)
	assert.Equal(t, "ringtail version "+Version+"\n", stdout)
}

func TestRun_Help(t *testing.T) {
	_, stderr, err := runRingtail(t, "", "-h")
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, stderr, "keep the last lines")
	assert.Contains(t, stderr, "-metrics-port")
}

func TestRun_InvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"zero lines", []string{"-n", "0"}, "invalid line count"},
		{"bad level", []string{"-log-level", "loud"}, "invalid log level"},
		{"bad format", []string{"-log-format", "xml"}, "invalid log format"},
		{"bad port", []string{"-metrics-port", "70000"}, "invalid metrics port"},
		{"positional", []string{"extra"}, "unexpected arguments"},
		{"unknown", []string{"-follow"}, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runRingtail(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRun_ErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"invalid flag value", []string{"-n", "0"}, exitInvalid},
		{"unknown flag", []string{"-follow"}, exitInvalid},
		{"missing config file", []string{"-config", filepath.Join(t.TempDir(), "absent.yaml")}, exitInvalid},
		{"missing input file", []string{"-input", filepath.Join(t.TempDir(), "absent.log")}, exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runRingtail(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCode(err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitFailure, exitCode(fmt.Errorf("read stdin: broken pipe")))
	assert.Equal(t, exitInvalid, exitCode(cerrors.WrapInvalid(cerrors.ErrInvalidConfig, "c", "m", "a")))
	assert.Equal(t, exitFatal, exitCode(cerrors.WrapFatal(cerrors.ErrZeroLength, "c", "m", "a")))
}

func TestTail_Cancelled(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()

	tracker, err := history.New[string](3)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = tail(ctx, reader, "pipe", tracker, metric.NewMetrics())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, tracker.Len())
}

func TestTail_LineTooLong(t *testing.T) {
	tracker, err := history.New[string](3)
	require.NoError(t, err)

	input := strings.Repeat("x", maxLineSize+1)
	err = tail(context.Background(), strings.NewReader(input), "big", tracker, metric.NewMetrics())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read big")
}

func TestTail_RecordsMetrics(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	tracker, err := history.New[string](2)
	require.NoError(t, err)

	require.NoError(t, tail(context.Background(), strings.NewReader("ab\ncde\n"), "stdin", tracker, registry.CoreMetrics()))

	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "ringbuf_input_") && mf.GetMetric()[0].GetCounter() != nil {
			values[mf.GetName()] = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, values["ringbuf_input_lines_total"])
	assert.Equal(t, 5.0, values["ringbuf_input_bytes_total"])
	assert.Equal(t, []string{"ab", "cde"}, tracker.Snapshot())
}
