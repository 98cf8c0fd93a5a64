// Package logging builds the zerolog logger flicks writes diagnostics to.
//
// The TUI owns the terminal, so by default everything goes to a log file.
// When the file cannot be opened the logger falls back to discarding output
// and reports why, so the caller can print one warning before the UI starts.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configure New.
type Options struct {
	File    string    // empty disables file output
	Level   string    // zerolog level name; invalid values mean info
	Console io.Writer // optional human-readable sink, e.g. os.Stderr for headless runs
}

// Result is the logger plus what New actually managed to set up.
type Result struct {
	Logger         zerolog.Logger
	FilePath       string
	UsingFile      bool
	FallbackReason string

	file *os.File
}

// New builds a logger from opts. It never fails; problems opening the file
// are recorded in FallbackReason.
func New(opts Options) *Result {
	lvl, err := zerolog.ParseLevel(strings.TrimSpace(strings.ToLower(opts.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	res := &Result{}
	var writers []io.Writer

	if path := strings.TrimSpace(opts.File); path != "" {
		file, err := openLogFile(path)
		if err != nil {
			res.FallbackReason = err.Error()
		} else {
			res.file = file
			res.FilePath = path
			res.UsingFile = true
			writers = append(writers, file)
		}
	}
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.RFC3339})
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	res.Logger = zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return res
}

// Close releases the log file, if one was opened.
func (r *Result) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Component returns a child logger tagged with the component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
