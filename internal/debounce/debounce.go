// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package debounce collapses bursts of calls into one trailing call inside a
// Bubble Tea update loop.
//
// A Debouncer never runs anything itself. Trigger returns a command that
// delivers a FireMsg after the delay; the owning model passes every message
// to Handle, which hands back the latest arguments only for the FireMsg of the
// most recent Trigger. Older fire messages arrive and are ignored, so the
// cancel-and-reschedule step never races with a fire.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// State is the debouncer's position in its Idle -> Scheduled -> Idle cycle.
type State int

const (
	Idle State = iota
	Scheduled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scheduled:
		return "scheduled"
	default:
		return "unknown"
	}
}

// FireMsg is delivered when a scheduled delay elapses.
type FireMsg struct {
	id  uint64
	gen uint64
}

// Scheduler returns a command that yields msg after d.
type Scheduler func(d time.Duration, msg tea.Msg) tea.Cmd

// TickScheduler schedules with tea.Tick.
func TickScheduler(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

var nextID atomic.Uint64

// Debouncer holds the pending call for one owner.
type Debouncer[T any] struct {
	id       uint64
	gen      uint64
	delay    time.Duration
	state    State
	pending  T
	schedule Scheduler
}

// Option configures a Debouncer.
type Option func(*config)

type config struct {
	schedule Scheduler
}

// WithScheduler replaces tea.Tick as the delay primitive.
func WithScheduler(s Scheduler) Option {
	return func(c *config) { c.schedule = s }
}

// New creates an idle debouncer with the given quiet period.
func New[T any](delay time.Duration, opts ...Option) *Debouncer[T] {
	c := config{schedule: TickScheduler}
	for _, opt := range opts {
		opt(&c)
	}
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{
		id:       nextID.Add(1),
		delay:    delay,
		schedule: c.schedule,
	}
}

// Trigger replaces any pending call with args and restarts the delay.
func (d *Debouncer[T]) Trigger(args T) tea.Cmd {
	d.gen++
	d.pending = args
	d.state = Scheduled
	return d.schedule(d.delay, FireMsg{id: d.id, gen: d.gen})
}

// Handle returns the pending arguments when msg is the fire message of the
// latest Trigger. Anything else, including superseded fire messages and
// fire messages of other debouncers, returns false.
func (d *Debouncer[T]) Handle(msg tea.Msg) (T, bool) {
	var zero T
	fire, ok := msg.(FireMsg)
	if !ok || fire.id != d.id {
		return zero, false
	}
	if d.state != Scheduled || fire.gen != d.gen {
		return zero, false
	}
	args := d.pending
	d.pending = zero
	d.state = Idle
	return args, true
}

// Owns reports whether msg is a fire message addressed to this debouncer,
// current or superseded.
func (d *Debouncer[T]) Owns(msg tea.Msg) bool {
	fire, ok := msg.(FireMsg)
	return ok && fire.id == d.id
}

// Cancel drops any pending call.
func (d *Debouncer[T]) Cancel() {
	var zero T
	d.gen++
	d.pending = zero
	d.state = Idle
}

// SetDelay changes the quiet period for subsequent triggers.
func (d *Debouncer[T]) SetDelay(delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	d.delay = delay
}

// Delay returns the current quiet period.
func (d *Debouncer[T]) Delay() time.Duration { return d.delay }

// State returns whether a call is pending.
func (d *Debouncer[T]) State() State { return d.state }
