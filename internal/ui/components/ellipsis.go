// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeranaias/ellipsis-tui/internal/debounce"
	"github.com/jeranaias/ellipsis-tui/internal/ellipsis"
	"github.com/jeranaias/ellipsis-tui/internal/resize"
)

// =============================================================================
// ELLIPSIS BINDING
// =============================================================================

// Ellipsis binds a TextBox to a body of text and keeps the box showing as
// many whole tokens as fit, followed by a marker. Every Update call is a
// change-detection tick; resize notifications arrive through the bus.
//
// An Ellipsis must be attached (Init or Attach) before it does anything and
// detached when it is discarded, or the bus keeps its handler forever.
type Ellipsis struct {
	id  string
	box *TextBox
	bus *resize.Bus
	log zerolog.Logger

	opts  ellipsis.Options
	text  *string
	shown bool

	watcher   *ellipsis.Watcher
	debouncer *debounce.Debouncer[ellipsis.Request]
	sub       resize.Subscription
	attached  bool

	result ellipsis.Result
	fits   int
}

// EllipsisOption configures an Ellipsis.
type EllipsisOption func(*ellipsisConfig)

type ellipsisConfig struct {
	opts     ellipsis.Options
	log      zerolog.Logger
	schedule debounce.Scheduler
}

// WithEllipsisOptions sets separator, marker, append suffix and debounce.
func WithEllipsisOptions(o ellipsis.Options) EllipsisOption {
	return func(c *ellipsisConfig) { c.opts = o }
}

// WithLogger sets the logger fits are reported to.
func WithLogger(l zerolog.Logger) EllipsisOption {
	return func(c *ellipsisConfig) { c.log = l }
}

// WithDebounceScheduler replaces the debounce delay primitive.
func WithDebounceScheduler(s debounce.Scheduler) EllipsisOption {
	return func(c *ellipsisConfig) { c.schedule = s }
}

// NewEllipsis creates a detached binding for box. A nil bus means the
// process-wide resize bus.
func NewEllipsis(bus *resize.Bus, box *TextBox, opts ...EllipsisOption) *Ellipsis {
	c := ellipsisConfig{
		opts:     ellipsis.DefaultOptions(),
		log:      zerolog.Nop(),
		schedule: debounce.TickScheduler,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if bus == nil {
		bus = resize.Default()
	}

	e := &Ellipsis{
		id:    uuid.NewString(),
		box:   box,
		bus:   bus,
		opts:  c.opts,
		shown: true,
	}
	e.log = c.log.With().Str("binding", e.id).Logger()
	e.debouncer = debounce.New[ellipsis.Request](c.opts.Normalized().Debounce, debounce.WithScheduler(c.schedule))
	return e
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Init attaches the binding.
func (e *Ellipsis) Init() tea.Cmd {
	return e.Attach()
}

// Attach subscribes to resize notifications and schedules the first fit if
// the box already has an area. Attaching twice does nothing. A detached
// binding may be attached again.
func (e *Ellipsis) Attach() tea.Cmd {
	if e.attached {
		return nil
	}
	e.attached = true
	// Fresh snapshots, so a re-attached binding fits again.
	e.watcher = ellipsis.NewWatcher(e.schedule)
	e.sub = e.bus.Subscribe(e.onResize)

	in := e.inputs()
	if !in.Visible {
		// Nothing to measure yet; the visibility flip will trigger the fit.
		e.watcher.Prime(in)
		e.log.Debug().Msg("attached while hidden")
		return nil
	}
	e.log.Debug().Msg("attached")
	return e.watcher.Digest(in)
}

// Detach removes the resize handler and drops any pending fit.
func (e *Ellipsis) Detach() {
	if !e.attached {
		return
	}
	e.bus.Unsubscribe(e.sub)
	e.sub = resize.Subscription{}
	e.debouncer.Cancel()
	e.attached = false
	e.log.Debug().Msg("detached")
}

// Attached reports whether the binding is live.
func (e *Ellipsis) Attached() bool { return e.attached }

// =============================================================================
// UPDATE / VIEW
// =============================================================================

// Update runs a pending fit when its debounce fires and otherwise checks the
// watched inputs for changes.
func (e *Ellipsis) Update(msg tea.Msg) (*Ellipsis, tea.Cmd) {
	if !e.attached {
		return e, nil
	}
	if req, ok := e.debouncer.Handle(msg); ok {
		e.apply(req)
		return e, nil
	}
	return e, e.watcher.Digest(e.inputs())
}

// View draws the box, or nothing while hidden.
func (e *Ellipsis) View() string {
	if !e.shown {
		return ""
	}
	return e.box.View()
}

func (e *Ellipsis) apply(req ellipsis.Request) {
	res := ellipsis.Fit(e.box, req)
	e.result = res
	e.fits++

	e.log.Debug().
		Int("tokens", res.Tokens).
		Int("total_tokens", res.TotalTokens).
		Bool("truncated", res.Truncated).
		Bool("marker", res.MarkerShown).
		Int("checks", res.Checks).
		Bool("skipped", res.Skipped).
		Msg("fit")
}

// schedule is the watcher's change callback: snapshot the current request
// and hand it to the debouncer.
func (e *Ellipsis) schedule() tea.Cmd {
	e.debouncer.SetDelay(e.opts.Normalized().Debounce)
	return e.debouncer.Trigger(e.opts.Request(e.text))
}

func (e *Ellipsis) onResize() tea.Cmd {
	w, h := e.bus.Viewport()
	return e.watcher.Resize(ellipsis.Geometry{
		ViewportWidth:  w,
		ViewportHeight: h,
		BoxMetrics:     e.box.Metrics(),
	})
}

func (e *Ellipsis) inputs() ellipsis.Inputs {
	n := e.opts.Normalized()
	return ellipsis.Inputs{
		Text:      e.text,
		Separator: n.Separator,
		Marker:    n.Marker,
		Append:    n.Append,
		Debounce:  n.Debounce,
		Shown:     e.shown,
		Visible:   e.shown && e.box.Metrics().Visible(),
	}
}

// =============================================================================
// INPUTS
// =============================================================================

// SetText sets the text to fit. nil means there is nothing to show yet and
// leaves the box as it is.
func (e *Ellipsis) SetText(text *string) {
	if text == nil {
		e.text = nil
		return
	}
	t := *text
	e.text = &t
}

// SetOptions replaces separator, marker, append suffix and debounce.
func (e *Ellipsis) SetOptions(o ellipsis.Options) {
	e.opts = o
}

// SetShown sets the external visibility flag.
func (e *Ellipsis) SetShown(shown bool) {
	e.shown = shown
}

// SetSize resizes the box. Bindings re-measure on the next resize
// notification; see resize.Bus.Notify.
func (e *Ellipsis) SetSize(width, height int) {
	e.box.SetSize(width, height)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ID returns the binding's identifier, as used in log output.
func (e *Ellipsis) ID() string { return e.id }

// Box returns the bound box.
func (e *Ellipsis) Box() *TextBox { return e.box }

// Options returns the configured options.
func (e *Ellipsis) Options() ellipsis.Options { return e.opts }

// Shown returns the external visibility flag.
func (e *Ellipsis) Shown() bool { return e.shown }

// Result returns the outcome of the most recent fit.
func (e *Ellipsis) Result() ellipsis.Result { return e.result }

// Fits returns how many fits have run.
func (e *Ellipsis) Fits() int { return e.fits }

// Pending reports whether a fit is waiting for its debounce to elapse.
func (e *Ellipsis) Pending() bool {
	return e.debouncer.State() == debounce.Scheduled
}
