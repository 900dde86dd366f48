// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ellipsis fits text into a fixed-size box by whole tokens.
//
// The package knows nothing about terminals. It works against a Surface: any
// box that can display a string and report how large that string rendered
// compared to the space it was given. Fitting renders every candidate into
// the surface and measures it, so wrapping and wide characters are accounted
// for by whatever does the layout.
//
// # Key Types
//
//   - BoxMetrics: natural (scroll) size against visible (client) size
//   - Request: one fitting job (text, separator, marker, append suffix)
//   - Options: defaulted configuration a binding turns into Requests
//   - Watcher: decides when inputs or geometry changed enough to refit
//
// # Usage
//
//	text := "The quick brown fox jumps over the lazy dog"
//	res := ellipsis.Fit(box, ellipsis.DefaultOptions().Request(&text))
//	// box now displays e.g. "The quick brown..."
package ellipsis
