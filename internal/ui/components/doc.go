// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI building blocks the ellipsis viewer is
made of.

# Core Components

TextBox (textbox.go) - A fixed-size block of terminal cells that lays out
plain text, word-wrapped or not, and reports overflow through Metrics.

Ellipsis (ellipsis.go) - Binds a TextBox to a body of text and keeps it
showing as many whole tokens as fit, followed by a marker. Refits are
debounced and triggered by input changes and by resize notifications.

# Bubble Tea Integration

Ellipsis follows the Bubble Tea component shape:

	bus := resize.NewBus()
	body := components.NewEllipsis(bus, components.NewTextBox(40, 1))
	body.SetText(&text)
	cmd := body.Init()            // attach and schedule the first fit
	body, cmd = body.Update(msg)  // every message is a change check
	view := body.View()

An Ellipsis must be detached when it is discarded:

	body.Detach()

# Measurement

A TextBox measures in terminal cells using go-runewidth, so wide runes
count twice. Word wrapping uses muesli/reflow. A word wider than the box is
never broken; it overflows horizontally, and that overflow is what the
fitting engine reacts to.
*/
package components
