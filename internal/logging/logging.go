// Package logging builds the diagnostics logger.
//
// The interactive screen belongs to the menu, so diagnostics never go to the
// terminal: they are written to a log file when one is configured and
// discarded otherwise.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// Options holds configuration for the diagnostics logger.
type Options struct {
	File  string // empty discards all output
	Level string // debug, info, warn, error, fatal
}

// New creates a logger writing to w at the given level.
func New(w io.Writer, level string) (*log.Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          "todo",
	}), nil
}

// Open creates the logger described by opts. The returned closer releases
// the log file and is never nil.
func Open(opts Options) (*log.Logger, io.Closer, error) {
	if opts.File == "" {
		logger, err := New(io.Discard, opts.Level)
		return logger, nopCloser{}, err
	}

	if dir := filepath.Dir(opts.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nopCloser{}, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nopCloser{}, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(f, opts.Level)
	if err != nil {
		f.Close()
		return nil, nopCloser{}, err
	}
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
