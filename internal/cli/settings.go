// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// settings.go - Merges config file, environment and flags.

package cli

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/ellipsis-tui/internal/config"
	"github.com/jeranaias/ellipsis-tui/internal/ellipsis"
	"github.com/jeranaias/ellipsis-tui/internal/logging"
	"github.com/jeranaias/ellipsis-tui/internal/ui/components"
)

// Settings is everything a command needs after config, environment and
// flags have been merged. Flags win over environment, which wins over the
// config file.
type Settings struct {
	Options ellipsis.Options

	// Width 0 means "terminal width".
	Width  int
	Height int
	Wrap   components.WrapMode
	Border bool

	Logging config.LoggingConfig
}

// loadConfig loads the config named by --config, or the usual one.
func loadConfig(args Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, &ConfigError{Path: args.ConfigPath, Err: err}
	}
	config.SetGlobal(cfg)
	return cfg, nil
}

// Resolve applies args on top of cfg.
func Resolve(cfg *config.Config, args Args) (Settings, error) {
	opts := cfg.Ellipsis.Options()
	if args.Separator != nil {
		opts.Separator = *args.Separator
	}
	if args.Marker != nil {
		opts.Marker = *args.Marker
	}
	if args.Append != nil {
		a := *args.Append
		opts.Append = &a
	}
	if args.Debounce != nil {
		opts.Debounce = time.Duration(*args.Debounce) * time.Millisecond
	}

	wrap, err := components.ParseWrapMode(cfg.Box.Wrap)
	if err != nil {
		return Settings{}, &ConfigError{Err: err}
	}
	if args.NoWrap {
		wrap = components.WrapNone
	}

	s := Settings{
		Options: opts.Normalized(),
		Width:   cfg.Box.Width,
		Height:  cfg.Box.Height,
		Wrap:    wrap,
		Border:  cfg.Box.Border && !args.NoBorder,
		Logging: cfg.Logging,
	}
	if args.Width != nil {
		s.Width = *args.Width
	}
	if args.Height != nil {
		if *args.Height < 1 {
			return Settings{}, NewValidationError("--height", "0", "must be at least 1")
		}
		s.Height = *args.Height
	}
	if args.Verbose {
		s.Logging.Level = "debug"
	}
	return s, nil
}

// loadSettings loads config and resolves args against it.
func loadSettings(args Args) (Settings, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return Settings{}, err
	}
	return Resolve(cfg, args)
}

// newLogger builds the logger for a one-shot command: the configured file if
// there is one, otherwise stderr.
func newLogger(s Settings, stderr io.Writer) (zerolog.Logger, func()) {
	if strings.TrimSpace(s.Logging.File) != "" {
		l := logging.New(s.Logging, logging.SinkStderr)
		return l.Logger, func() { l.Close() }
	}
	return logging.NewWriter(stderr, s.Logging.Level), func() {}
}
