// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// view.go - The view command: the interactive viewer.

package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ellipsis-tui/internal/logging"
	"github.com/jeranaias/ellipsis-tui/internal/resize"
	"github.com/jeranaias/ellipsis-tui/internal/source"
	"github.com/jeranaias/ellipsis-tui/internal/ui/viewer"
)

// HandleView handles the "view" command.
func HandleView(args Args) error {
	if err := requireTerminal(); err != nil {
		return err
	}
	s, err := loadSettings(args)
	if err != nil {
		return err
	}

	// The viewer owns the terminal, so logs only go to a configured file.
	log := logging.New(s.Logging, logging.SinkDiscard)
	defer log.Close()

	cfg, err := viewerConfig(args, s)
	if err != nil {
		return err
	}
	cfg.Logger = log.Logger
	if cfg.Follower != nil {
		defer cfg.Follower.Close()
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if args.File == source.Stdin {
		// Stdin carried the text; keys come from the terminal.
		opts = append(opts, tea.WithInputTTY())
	}

	log.Info().Str("file", args.File).Bool("follow", args.Follow).Msg("starting viewer")
	if _, err := tea.NewProgram(viewer.New(cfg), opts...).Run(); err != nil {
		return NewCommandError("view", "run", err)
	}
	return nil
}

// viewerConfig builds the viewer's config from args and settings, reading
// the file and starting the follower when asked.
func viewerConfig(args Args, s Settings) (viewer.Config, error) {
	cfg := viewer.Config{
		Title:   "ellipsis",
		Options: s.Options,
		Wrap:    s.Wrap,
		Border:  s.Border,
		Width:   s.Width,
		Height:  s.Height,
		Bus:     resize.Default(),
	}

	switch {
	case args.File != "":
		text, err := source.Read(args.File)
		if err != nil {
			return cfg, NewCommandError("view", "read", err)
		}
		cfg.Text = &text
		if args.File != source.Stdin {
			cfg.Title = filepath.Base(args.File)
		}
	case args.Text != nil:
		text := source.Normalize(*args.Text)
		cfg.Text = &text
	default:
		return cfg, NewValidationError("file", "", "view needs a file to show")
	}

	if args.Follow {
		if args.File == source.Stdin {
			return cfg, NewValidationError("--follow", source.Stdin, "stdin cannot be followed")
		}
		f, err := source.Follow(args.File)
		if err != nil {
			return cfg, NewCommandError("view", "follow", err)
		}
		cfg.Follower = f
	}

	return cfg, nil
}

// ErrNoTTY is returned when the viewer is asked for without a terminal.
var ErrNoTTY = errors.New("view needs a terminal")

func requireTerminal() error {
	if !IsStdoutTTY() {
		return fmt.Errorf("%w: stdout is not a terminal", ErrNoTTY)
	}
	return nil
}
