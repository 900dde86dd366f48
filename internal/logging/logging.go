// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zerolog logger used across ellipsis.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeranaias/ellipsis-tui/internal/config"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Sink says where log lines go when no file is configured.
type Sink int

const (
	// SinkStderr writes to stderr; for one-shot commands.
	SinkStderr Sink = iota
	// SinkDiscard drops output; for the viewer, which owns the terminal.
	SinkDiscard
)

// Logger wraps a zerolog logger and the file it may hold open.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// New builds a logger from cfg. A configured file takes precedence over sink.
// An unopenable file is reported on stderr and logging falls back to sink.
func New(cfg config.LoggingConfig, sink Sink) *Logger {
	lvl := ParseLevel(cfg.Level, zerolog.InfoLevel)

	var (
		w    io.Writer
		file *os.File
	)
	if path := strings.TrimSpace(cfg.File); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging: failed opening log file %q: %v\n", path, err)
		} else {
			file = f
			w = zerolog.SyncWriter(f)
		}
	}
	if w == nil {
		if sink == SinkDiscard {
			return &Logger{Logger: zerolog.Nop()}
		}
		w = newConsoleWriter(os.Stderr)
	}

	zl := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return &Logger{Logger: zl, file: file}
}

// NewWriter builds a console logger writing to w at level, for tests and
// callers that already own an output stream.
func NewWriter(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(newConsoleWriter(w)).Level(ParseLevel(level, zerolog.InfoLevel)).With().Timestamp().Logger()
}

// ParseLevel parses a level name, returning def for empty or unknown names.
func ParseLevel(s string, def zerolog.Level) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return def
	}
	return lvl
}

func newConsoleWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat, NoColor: true}
}
