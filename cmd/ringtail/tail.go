package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/c360/ringbuf/metric"
	"github.com/c360/ringbuf/pkg/history"
)

// maxLineSize bounds a single input line
const maxLineSize = 1 << 20

type scanResult struct {
	line string
	err  error
}

// tail records every line of r into tracker until r is drained or ctx is
// done. Scanning runs on its own goroutine so that a blocked read does not
// delay cancellation; the tracker is only touched by the caller.
func tail(ctx context.Context, r io.Reader, source string, tracker *history.Tracker[string], m *metric.Metrics) error {
	lines := make(chan scanResult)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanResult{line: scanner.Text()}:
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- scanResult{err: err}:
			case <-done:
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-lines:
			if !ok {
				return nil
			}
			if res.err != nil {
				return fmt.Errorf("read %s: %w", source, res.err)
			}
			tracker.Record(res.line)
			m.RecordLine(source, len(res.line))
		}
	}
}
