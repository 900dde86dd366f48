// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jeranaias/ellipsis-tui/internal/ellipsis"
)

// =============================================================================
// WRAP MODE
// =============================================================================

// WrapMode controls how a TextBox lays out text that is wider than the box.
type WrapMode int

const (
	// WrapWords breaks lines between words. A single word wider than the box
	// stays whole and overflows horizontally.
	WrapWords WrapMode = iota
	// WrapNone only breaks at newlines in the text.
	WrapNone
)

// String returns the config spelling of the mode.
func (m WrapMode) String() string {
	switch m {
	case WrapWords:
		return "word"
	case WrapNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseWrapMode parses "word" or "none". Empty means WrapWords.
func ParseWrapMode(s string) (WrapMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "word", "words":
		return WrapWords, nil
	case "none", "nowrap":
		return WrapNone, nil
	default:
		return WrapWords, fmt.Errorf("unknown wrap mode %q (want word or none)", s)
	}
}

// =============================================================================
// TEXT BOX
// =============================================================================

// TextBox is a fixed-size block of terminal cells showing plain text. Content
// that does not fit is clipped when drawn, and reported through Metrics so
// callers can decide what to show instead.
type TextBox struct {
	width  int
	height int
	text   string
	wrap   WrapMode
	style  lipgloss.Style

	// lines caches the layout of text at width.
	lines []string
	dirty bool
}

// NewTextBox creates an empty word-wrapping box of width x height cells.
func NewTextBox(width, height int) *TextBox {
	return &TextBox{
		width:  max(width, 0),
		height: max(height, 0),
		style:  lipgloss.NewStyle(),
		dirty:  true,
	}
}

// SetSize changes the visible area.
func (b *TextBox) SetSize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width != b.width {
		b.dirty = true
	}
	b.width, b.height = width, height
}

// Size returns the visible area.
func (b *TextBox) Size() (width, height int) {
	return b.width, b.height
}

// SetWrap changes the layout mode.
func (b *TextBox) SetWrap(m WrapMode) {
	if m != b.wrap {
		b.wrap = m
		b.dirty = true
	}
}

// Wrap returns the layout mode.
func (b *TextBox) Wrap() WrapMode { return b.wrap }

// SetStyle sets the lipgloss style the box is rendered with. Borders and
// padding are drawn outside the measured area.
func (b *TextBox) SetStyle(s lipgloss.Style) {
	b.style = s
}

// SetText replaces the displayed text.
func (b *TextBox) SetText(text string) {
	if text != b.text {
		b.text = text
		b.dirty = true
	}
}

// Text returns the displayed text.
func (b *TextBox) Text() string { return b.text }

// Metrics measures the displayed text against the box.
func (b *TextBox) Metrics() ellipsis.BoxMetrics {
	lines := b.layout()

	widest := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > widest {
			widest = w
		}
	}

	return ellipsis.BoxMetrics{
		ScrollWidth:  max(b.width, widest),
		ClientWidth:  b.width,
		ScrollHeight: max(b.height, len(lines)),
		ClientHeight: b.height,
	}
}

// Lines returns the laid out text, including lines that fall outside the box.
func (b *TextBox) Lines() []string {
	lines := b.layout()
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

func (b *TextBox) layout() []string {
	if !b.dirty {
		return b.lines
	}
	b.dirty = false

	if b.text == "" {
		b.lines = nil
		return b.lines
	}

	text := b.text
	if b.wrap == WrapWords && b.width > 0 {
		text = wrapWords(text, b.width)
	}
	b.lines = strings.Split(text, "\n")
	return b.lines
}

// wrapWords breaks text at spaces only. reflow's default breakpoints include
// '-', which keeps it from breaking at the space after a hyphenated word.
func wrapWords(text string, width int) string {
	ww := wordwrap.NewWriter(width)
	ww.Breakpoints = nil
	_, _ = ww.Write([]byte(text))
	_ = ww.Close()
	return ww.String()
}

// View draws the visible part of the box, padded to its full size.
func (b *TextBox) View() string {
	if b.width == 0 || b.height == 0 {
		return ""
	}

	lines := b.layout()
	rows := make([]string, b.height)
	for i := range rows {
		line := ""
		if i < len(lines) {
			line = runewidth.Truncate(lines[i], b.width, "")
		}
		rows[i] = runewidth.FillRight(line, b.width)
	}

	return b.style.Render(strings.Join(rows, "\n"))
}

// Ensure TextBox satisfies the surface contract.
var _ ellipsis.Surface = (*TextBox)(nil)
