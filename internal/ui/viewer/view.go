// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ellipsis-tui/internal/ui/styles"
)

// View renders the title, body, status line and key help.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.title.View())
	b.WriteString("\n")

	if m.body.Shown() {
		b.WriteString(m.body.View())
	} else {
		w, h := m.body.Box().Size()
		b.WriteString(m.theme.HiddenBox.
			Width(w).
			Height(h).
			Render("(hidden, press h)"))
	}
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// statusLine summarizes the body's last fit.
func (m *Model) statusLine() string {
	res := m.body.Result()
	w, h := m.body.Box().Size()

	var state string
	switch {
	case m.err != nil:
		state = m.theme.StatusError.Render(styles.StatusIndicators.Error + " " + m.err.Error())
	case m.body.Pending() || m.body.Fits() == 0:
		state = m.theme.StatusMuted.Render(styles.StatusIndicators.Pending + " waiting")
	case res.Truncated:
		state = m.theme.StatusTrunc.Render(styles.StatusIndicators.Truncated + " truncated")
	default:
		state = m.theme.StatusFits.Render(styles.StatusIndicators.Fits + " fits")
	}

	parts := []string{
		state,
		fmt.Sprintf("tokens %d/%d", res.Tokens, res.TotalTokens),
		fmt.Sprintf("checks %d", res.Checks),
		fmt.Sprintf("box %dx%d", w, h),
		fmt.Sprintf("marker %q", m.opts.Marker),
	}
	line := strings.Join(parts, m.theme.StatusMuted.Render(" | "))

	return m.theme.StatusBar.
		Width(m.width).
		MaxWidth(m.width).
		MaxHeight(1).
		Render(lipgloss.NewStyle().Inline(true).Render(line))
}
