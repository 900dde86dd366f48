// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ellipsis

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// WATCHED VALUES
// =============================================================================

// Inputs are the values a binding re-checks on every update tick.
type Inputs struct {
	Text      *string
	Separator string
	Marker    string
	Append    *string
	Debounce  time.Duration
	// Shown is the external show/hide flag.
	Shown bool
	// Visible is derived from the box: it has a nonzero rendered area.
	Visible bool
}

// inputKey is the comparable form of Inputs. Optional strings compare by
// value so a fresh pointer to the same text is not a change.
type inputKey struct {
	text      string
	hasText   bool
	separator string
	marker    string
	appendix  string
	hasAppend bool
	debounce  time.Duration
	shown     bool
	visible   bool
}

func (in Inputs) key() inputKey {
	k := inputKey{
		separator: in.Separator,
		marker:    in.Marker,
		debounce:  in.Debounce,
		shown:     in.Shown,
		visible:   in.Visible,
	}
	if in.Text != nil {
		k.text, k.hasText = *in.Text, true
	}
	if in.Append != nil {
		k.appendix, k.hasAppend = *in.Append, true
	}
	return k
}

// Geometry is the last observed layout for one box: viewport size plus the
// box's natural and visible size.
type Geometry struct {
	ViewportWidth  int
	ViewportHeight int
	BoxMetrics
}

// =============================================================================
// WATCHER
// =============================================================================

// Watcher detects changes in a binding's inputs and geometry and calls
// onChange when either moved. It is owned by a single binding.
type Watcher struct {
	onChange func() tea.Cmd

	inputs       inputKey
	inputsPrimed bool

	geometry       Geometry
	geometryPrimed bool
}

// NewWatcher creates a watcher that calls onChange for every detected change.
func NewWatcher(onChange func() tea.Cmd) *Watcher {
	return &Watcher{onChange: onChange}
}

// Digest compares in against the previous digest. The first digest always
// counts as a change.
func (w *Watcher) Digest(in Inputs) tea.Cmd {
	k := in.key()
	if w.inputsPrimed && k == w.inputs {
		return nil
	}
	w.inputs, w.inputsPrimed = k, true
	return w.fire()
}

// Prime records in as the baseline without reporting a change.
func (w *Watcher) Prime(in Inputs) {
	w.inputs, w.inputsPrimed = in.key(), true
}

// Resize compares g field by field against the stored snapshot and reports a
// change only when something differs. The first call always counts.
func (w *Watcher) Resize(g Geometry) tea.Cmd {
	if w.geometryPrimed && g == w.geometry {
		return nil
	}
	w.geometry, w.geometryPrimed = g, true
	return w.fire()
}

// Geometry returns the stored snapshot and whether one was recorded.
func (w *Watcher) Geometry() (Geometry, bool) {
	return w.geometry, w.geometryPrimed
}

func (w *Watcher) fire() tea.Cmd {
	if w.onChange == nil {
		return nil
	}
	return w.onChange()
}
