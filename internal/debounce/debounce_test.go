// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package debounce

import (
	"sort"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// virtualClock records scheduled messages against a manual clock so tests can
// deliver them in due order without sleeping.
type virtualClock struct {
	now     time.Duration
	pending []scheduled
}

type scheduled struct {
	due time.Duration
	msg tea.Msg
}

func (c *virtualClock) schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	c.pending = append(c.pending, scheduled{due: c.now + d, msg: msg})
	return func() tea.Msg { return msg }
}

// drain delivers every scheduled message in due order.
func (c *virtualClock) drain(deliver func(at time.Duration, msg tea.Msg)) {
	sort.SliceStable(c.pending, func(i, j int) bool { return c.pending[i].due < c.pending[j].due })
	for _, s := range c.pending {
		c.now = s.due
		deliver(s.due, s.msg)
	}
	c.pending = nil
}

func TestDebouncer_BurstCollapsesToLastCall(t *testing.T) {
	clock := &virtualClock{}
	d := New[string](500*time.Millisecond, WithScheduler(clock.schedule))

	for _, step := range []struct {
		at   time.Duration
		args string
	}{
		{0, "t0"},
		{100 * time.Millisecond, "t100"},
		{200 * time.Millisecond, "t200"},
	} {
		clock.now = step.at
		require.NotNil(t, d.Trigger(step.args))
	}
	assert.Equal(t, Scheduled, d.State())

	var fired []string
	var firedAt []time.Duration
	clock.drain(func(at time.Duration, msg tea.Msg) {
		if args, ok := d.Handle(msg); ok {
			fired = append(fired, args)
			firedAt = append(firedAt, at)
		}
	})

	assert.Equal(t, []string{"t200"}, fired)
	assert.Equal(t, []time.Duration{700 * time.Millisecond}, firedAt)
	assert.Equal(t, Idle, d.State())
}

func TestDebouncer_FireMessageFromCommand(t *testing.T) {
	clock := &virtualClock{}
	d := New[int](time.Millisecond, WithScheduler(clock.schedule))

	cmd := d.Trigger(42)
	args, ok := d.Handle(cmd())

	assert.True(t, ok)
	assert.Equal(t, 42, args)

	_, again := d.Handle(cmd())
	assert.False(t, again, "a fire message is consumed once")
}

func TestDebouncer_CancelDropsPending(t *testing.T) {
	clock := &virtualClock{}
	d := New[int](time.Second, WithScheduler(clock.schedule))

	cmd := d.Trigger(1)
	d.Cancel()

	_, ok := d.Handle(cmd())
	assert.False(t, ok)
	assert.Equal(t, Idle, d.State())
}

func TestDebouncer_IgnoresForeignMessages(t *testing.T) {
	clock := &virtualClock{}
	a := New[int](time.Second, WithScheduler(clock.schedule))
	b := New[int](time.Second, WithScheduler(clock.schedule))

	cmdA := a.Trigger(1)
	b.Trigger(2)

	_, ok := b.Handle(cmdA())
	assert.False(t, ok, "b must not accept a's fire message")
	assert.False(t, b.Owns(cmdA()))
	assert.True(t, a.Owns(cmdA()))

	_, ok = a.Handle(tea.KeyMsg{})
	assert.False(t, ok)
	assert.Equal(t, Scheduled, a.State())
}

func TestDebouncer_RetriggerAfterFire(t *testing.T) {
	clock := &virtualClock{}
	d := New[string](10*time.Millisecond, WithScheduler(clock.schedule))

	first := d.Trigger("one")
	_, ok := d.Handle(first())
	require.True(t, ok)

	second := d.Trigger("two")
	args, ok := d.Handle(second())
	assert.True(t, ok)
	assert.Equal(t, "two", args)
}

func TestDebouncer_SetDelay(t *testing.T) {
	clock := &virtualClock{}
	d := New[int](500*time.Millisecond, WithScheduler(clock.schedule))

	d.SetDelay(50 * time.Millisecond)
	d.Trigger(1)
	require.Len(t, clock.pending, 1)
	assert.Equal(t, 50*time.Millisecond, clock.pending[0].due)

	d.SetDelay(-time.Second)
	assert.Equal(t, time.Duration(0), d.Delay())
}

func TestDebouncer_DefaultScheduler(t *testing.T) {
	d := New[int](-time.Second)
	assert.Equal(t, time.Duration(0), d.Delay())
	assert.NotNil(t, d.Trigger(1))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "scheduled", Scheduled.String())
	assert.Equal(t, "unknown", State(9).String())
}
