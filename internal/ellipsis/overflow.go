// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ellipsis

// BoxMetrics holds the natural size of a box's content next to the size of
// the box itself, in cells.
type BoxMetrics struct {
	ScrollWidth  int `json:"scroll_width"`
	ClientWidth  int `json:"client_width"`
	ScrollHeight int `json:"scroll_height"`
	ClientHeight int `json:"client_height"`
}

// HasOverflow reports whether content is larger than the box along either
// axis. Content that exactly fills the box fits.
func HasOverflow(b BoxMetrics) bool {
	return b.ScrollWidth > b.ClientWidth || b.ScrollHeight > b.ClientHeight
}

// Visible reports whether the box has a rendered area worth measuring.
func (b BoxMetrics) Visible() bool {
	return b.ClientWidth > 0 && b.ClientHeight != 0
}
