// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewer

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ellipsis-tui/internal/source"
	"github.com/jeranaias/ellipsis-tui/internal/ui/styles"
)

// Update handles one message. Every message, whatever its type, is also
// passed to both bindings so they can run pending fits and notice changed
// inputs.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		cmds = append(cmds, m.bus.Publish(msg))

	case tea.KeyMsg:
		cmd, handled := m.handleKey(msg)
		if m.quitting {
			return m, cmd
		}
		if handled {
			cmds = append(cmds, cmd)
		}

	case source.TextMsg:
		cmds = append(cmds, m.handleText(msg))
	}

	var cmd tea.Cmd
	_, cmd = m.title.Update(msg)
	cmds = append(cmds, cmd)
	_, cmd = m.body.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.title.Detach()
		m.body.Detach()
		if m.follower != nil {
			if err := m.follower.Close(); err != nil {
				m.log.Warn().Err(err).Msg("closing follower")
			}
		}
		return tea.Quit, true

	case key.Matches(msg, m.keys.Toggle):
		m.body.SetShown(!m.body.Shown())
		m.log.Debug().Bool("shown", m.body.Shown()).Msg("toggled body")
		return nil, true

	case key.Matches(msg, m.keys.NextMarker):
		m.marker = (m.marker + 1) % len(m.markers)
		m.opts.Marker = m.markers[m.marker]
		m.title.SetOptions(m.opts)
		m.body.SetOptions(m.opts)
		return nil, true

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.relayout(), true

	case key.Matches(msg, m.keys.Grow):
		return m.resizeBody(1, 0), true
	case key.Matches(msg, m.keys.Shrink):
		return m.resizeBody(-1, 0), true
	case key.Matches(msg, m.keys.Taller):
		return m.resizeBody(0, 1), true
	case key.Matches(msg, m.keys.Shorter):
		return m.resizeBody(0, -1), true

	case key.Matches(msg, m.keys.Reset):
		m.bodyW, m.bodyH = 0, 0
		return m.relayout(), true
	}
	return nil, false
}

func (m *Model) handleText(msg source.TextMsg) tea.Cmd {
	if msg.Err != nil {
		if errors.Is(msg.Err, source.ErrClosed) {
			return nil
		}
		m.err = msg.Err
		m.log.Warn().Err(msg.Err).Str("path", msg.Path).Msg("source error")
	} else {
		m.err = nil
		text := msg.Text
		m.body.SetText(&text)
	}
	if m.follower == nil || m.quitting {
		return nil
	}
	return m.follower.Next()
}

// resizeBody changes the body box by the given cells and notifies bindings,
// as a window resize would.
func (m *Model) resizeBody(dw, dh int) tea.Cmd {
	w, h := m.body.Box().Size()
	maxW, maxH := m.bodyBounds()
	m.bodyW = clamp(w+dw, 1, max(maxW, 1))
	m.bodyH = clamp(h+dh, 1, max(maxH, 1))
	return m.relayout()
}

func (m *Model) relayout() tea.Cmd {
	m.layout()
	return m.bus.Notify()
}

// layout sizes both boxes for the current window. The title takes one row,
// the status line one, the help line one or more; the body gets the rest
// unless a fixed size was requested.
func (m *Model) layout() {
	titleFW, _ := styles.BorderSize(m.theme.TitleBox)
	m.title.SetSize(max(m.width-titleFW, 0), 1)

	maxW, maxH := m.bodyBounds()
	w, h := maxW, maxH
	if m.bodyW > 0 {
		w = min(m.bodyW, maxW)
	}
	if m.bodyH > 0 {
		h = min(m.bodyH, maxH)
	}
	m.body.SetSize(max(w, 0), max(h, 0))

	m.log.Debug().
		Int("width", m.width).Int("height", m.height).
		Int("body_width", w).Int("body_height", h).
		Msg("layout")
}

// bodyBounds is the largest body box the window holds.
func (m *Model) bodyBounds() (width, height int) {
	_, titleFH := styles.BorderSize(m.theme.TitleBox)
	bodyFW, bodyFH := styles.BorderSize(m.theme.BodyBox)

	used := 1 + titleFH + 1 + m.helpHeight() + bodyFH
	return max(m.width-bodyFW, 0), max(m.height-used, 0)
}

func (m *Model) helpHeight() int {
	if m.help.ShowAll {
		return len(m.keys.FullHelp()[0])
	}
	return 1
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
