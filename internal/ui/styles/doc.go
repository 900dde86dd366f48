// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the ellipsis viewer.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. NewTheme reads the terminal's color profile through termenv.

# Colors (colors.go)

  - Purple - Title box
  - Cyan - Body box and key hints
  - Emerald - Status when the text fits whole
  - Amber - Status when the text was truncated
  - Rose - Source errors

StatusIndicators pair each state with an ASCII shape.

# Theme (theme.go)

Theme groups the box and status line styles. Plain strips borders for
--no-border. BorderSize reports the frame a style adds around a box, which
the viewer subtracts before sizing its text boxes.
*/
package styles
