// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package viewer is the interactive Bubble Tea program that shows a title and
// a body of text, each truncated to its box as the window changes.
package viewer

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/ellipsis-tui/internal/debounce"
	"github.com/jeranaias/ellipsis-tui/internal/ellipsis"
	"github.com/jeranaias/ellipsis-tui/internal/resize"
	"github.com/jeranaias/ellipsis-tui/internal/source"
	"github.com/jeranaias/ellipsis-tui/internal/ui/components"
	"github.com/jeranaias/ellipsis-tui/internal/ui/styles"
)

// Markers are the truncation markers the m key cycles through, after the
// configured one.
var Markers = []string{"...", "…", " [more]", ">"}

// Config holds everything the viewer needs at start.
type Config struct {
	// Title is shown in a one-line box above the body.
	Title string
	// Text is the initial body text. nil leaves the body empty until the
	// follower delivers one.
	Text *string

	Options ellipsis.Options
	Wrap    components.WrapMode
	Border  bool

	// Width and Height fix the body box size. Zero fills the window.
	Width  int
	Height int

	// Follower, when set, replaces the body text on every file change.
	Follower *source.Follower

	Logger zerolog.Logger
	// Bus defaults to the process-wide resize bus.
	Bus *resize.Bus
	// Scheduler defaults to tea.Tick.
	Scheduler debounce.Scheduler
}

// Model is the viewer's Bubble Tea model.
type Model struct {
	bus   *resize.Bus
	theme *styles.Theme
	keys  KeyMap
	help  help.Model
	log   zerolog.Logger

	title *components.Ellipsis
	body  *components.Ellipsis

	follower *source.Follower
	opts     ellipsis.Options
	markers  []string
	marker   int

	// Window size and the requested body size (0 = fill).
	width, height int
	bodyW, bodyH  int

	err      error
	quitting bool
}

// New creates a viewer. Bindings attach in Init.
func New(cfg Config) *Model {
	bus := cfg.Bus
	if bus == nil {
		bus = resize.Default()
	}
	scheduler := cfg.Scheduler
	if scheduler == nil {
		scheduler = debounce.TickScheduler
	}

	theme := styles.NewTheme()
	if !cfg.Border {
		theme = theme.Plain()
	}

	opts := cfg.Options.Normalized()
	m := &Model{
		bus:      bus,
		theme:    theme,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		log:      cfg.Logger,
		follower: cfg.Follower,
		opts:     opts,
		markers:  markerCycle(opts.Marker),
		bodyW:    max(cfg.Width, 0),
		bodyH:    max(cfg.Height, 0),
	}

	titleBox := components.NewTextBox(0, 0)
	titleBox.SetWrap(components.WrapNone)
	titleBox.SetStyle(theme.TitleBox)
	m.title = components.NewEllipsis(bus, titleBox,
		components.WithEllipsisOptions(opts),
		components.WithLogger(cfg.Logger.With().Str("box", "title").Logger()),
		components.WithDebounceScheduler(scheduler),
	)
	title := cfg.Title
	m.title.SetText(&title)

	bodyBox := components.NewTextBox(0, 0)
	bodyBox.SetWrap(cfg.Wrap)
	bodyBox.SetStyle(theme.BodyBox)
	m.body = components.NewEllipsis(bus, bodyBox,
		components.WithEllipsisOptions(opts),
		components.WithLogger(cfg.Logger.With().Str("box", "body").Logger()),
		components.WithDebounceScheduler(scheduler),
	)
	m.body.SetText(cfg.Text)

	return m
}

// markerCycle puts the configured marker first, followed by the built-in
// markers it does not duplicate.
func markerCycle(first string) []string {
	out := []string{first}
	for _, mk := range Markers {
		if mk != first {
			out = append(out, mk)
		}
	}
	return out
}

// Init attaches both bindings and starts following the source.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.title.Init(), m.body.Init()}
	if m.follower != nil {
		cmds = append(cmds, m.follower.Next())
	}
	return tea.Batch(cmds...)
}

// Title returns the title binding.
func (m *Model) Title() *components.Ellipsis { return m.title }

// Body returns the body binding.
func (m *Model) Body() *components.Ellipsis { return m.body }

// Marker returns the marker in use.
func (m *Model) Marker() string { return m.opts.Marker }

// Err returns the last source error.
func (m *Model) Err() error { return m.err }

// Quitting reports whether the viewer is shutting down.
func (m *Model) Quitting() bool { return m.quitting }
