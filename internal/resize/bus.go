// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resize fans terminal resize notifications out to subscribers.
//
// Every subscriber gets its own Subscription handle and must hand it back to
// Unsubscribe when it goes away; the bus outlives the components that listen
// to it, so a forgotten handler would keep its owner alive.
package resize

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Handler reacts to a resize. It carries no payload: handlers re-read
// whatever geometry they care about, using Bus.Viewport for the window.
type Handler func() tea.Cmd

// Subscription identifies one registered handler.
type Subscription struct {
	id uint64
}

// Valid reports whether s came from Subscribe.
func (s Subscription) Valid() bool { return s.id != 0 }

// Bus is a resize notification source shared by many subscribers.
type Bus struct {
	mu       sync.Mutex
	nextID   uint64
	order    []uint64
	handlers map[uint64]Handler
	width    int
	height   int
}

// NewBus creates an empty bus with an unknown (zero) viewport.
func NewBus() *Bus {
	return &Bus{handlers: make(map[uint64]Handler)}
}

var (
	defaultMu  sync.Mutex
	defaultBus *Bus
)

// Default returns the process-wide bus, creating it on first use.
func Default() *Bus {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultBus == nil {
		defaultBus = NewBus()
	}
	return defaultBus
}

// SetDefault replaces the process-wide bus. Passing nil resets it.
func SetDefault(b *Bus) {
	defaultMu.Lock()
	defaultBus = b
	defaultMu.Unlock()
}

// Subscribe registers h and returns the handle needed to remove it.
func (b *Bus) Subscribe(h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers[id] = h
	b.order = append(b.order, id)
	return Subscription{id: id}
}

// Unsubscribe removes exactly the handler registered under s. It reports
// false if s was not (or no longer) subscribed.
func (b *Bus) Unsubscribe(s Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.handlers[s.id]; !ok {
		return false
	}
	delete(b.handlers, s.id)
	for i, id := range b.order {
		if id == s.id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Publish records the new viewport size and calls every handler in
// subscription order. Their commands are batched.
func (b *Bus) Publish(msg tea.WindowSizeMsg) tea.Cmd {
	b.mu.Lock()
	b.width, b.height = msg.Width, msg.Height
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.Unlock()

	// Handlers run unlocked so they may read Viewport or unsubscribe.
	cmds := make([]tea.Cmd, 0, len(handlers))
	for _, h := range handlers {
		if cmd := h(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Notify re-runs every handler against the current viewport. Used when a box
// changes size without the window changing.
func (b *Bus) Notify() tea.Cmd {
	w, h := b.Viewport()
	return b.Publish(tea.WindowSizeMsg{Width: w, Height: h})
}

// Viewport returns the last published window size.
func (b *Bus) Viewport() (width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}
