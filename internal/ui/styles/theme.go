// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled pieces of the viewer.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Boxes
	TitleBox  lipgloss.Style
	BodyBox   lipgloss.Style
	HiddenBox lipgloss.Style

	// Status line
	StatusBar    lipgloss.Style
	StatusFits   lipgloss.Style
	StatusTrunc  lipgloss.Style
	StatusError  lipgloss.Style
	StatusMuted  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a theme for the current terminal.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.TitleBox = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Purple)

	t.BodyBox = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Cyan)

	t.HiddenBox = lipgloss.NewStyle().
		Foreground(TextMuted).
		Border(lipgloss.HiddenBorder())

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusFits = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.StatusTrunc = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.StatusError = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.StatusMuted = lipgloss.NewStyle().Foreground(TextMuted)

	t.ShortcutKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)
}

// Plain returns a copy of t with borders removed, for boxes drawn without
// decoration.
func (t *Theme) Plain() *Theme {
	c := *t
	c.TitleBox = t.TitleBox.Border(lipgloss.Border{}, false)
	c.BodyBox = t.BodyBox.Border(lipgloss.Border{}, false)
	c.HiddenBox = t.HiddenBox.Border(lipgloss.Border{}, false)
	return &c
}

// BorderSize returns the cells a style's border takes horizontally and
// vertically.
func BorderSize(s lipgloss.Style) (width, height int) {
	return s.GetHorizontalFrameSize(), s.GetVerticalFrameSize()
}
