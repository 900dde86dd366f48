// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewer

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the viewer's keyboard bindings.
type KeyMap struct {
	Grow       key.Binding
	Shrink     key.Binding
	Taller     key.Binding
	Shorter    key.Binding
	Toggle     key.Binding
	NextMarker key.Binding
	Reset      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Grow: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "wider"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "narrower"),
		),
		Taller: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "taller"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "shorter"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide/show"),
		),
		NextMarker: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "next marker"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "fill window"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grow, k.Shrink, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Grow, k.Shrink, k.Taller, k.Shorter},
		{k.Toggle, k.NextMarker, k.Reset},
		{k.Help, k.Quit},
	}
}
