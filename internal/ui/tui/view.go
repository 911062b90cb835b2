// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattparishdev/TextAdventure/internal/commands"
	"github.com/mattparishdev/TextAdventure/internal/console"
	"github.com/mattparishdev/TextAdventure/internal/util"
)

const (
	headerHeight = 1
	footerHeight = 4 // hint line, input, status bar (with its top border)
)

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return m.farewell()
	}

	var sb strings.Builder
	sb.WriteString(m.header())
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.hintLine())
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.theme.StatusBar.Width(m.width).Render(m.keys.ShortHelp(m.theme)))
	return sb.String()
}

// layout sizes the components to the window.
func (m *Model) layout() {
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-headerHeight-footerHeight)
	m.input.Width = max(1, m.width-lipgloss.Width(m.input.Prompt)-1)
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refresh() {
	var blocks []string
	if m.greeting != "" {
		blocks = append(blocks, m.theme.Notice.Render(m.renderer.Render(m.greeting)))
	}
	for _, e := range m.screen.Entries() {
		blocks = append(blocks, m.renderEntry(e))
	}
	m.viewport.SetContent(strings.Join(blocks, "\n"))
	m.viewport.GotoBottom()
}

// renderEntry renders the echoed request and, below it, the response.
func (m Model) renderEntry(e console.Entry) string {
	echo := m.theme.Prompt.Render(strings.TrimRight(m.input.Prompt, " ")) + " " + m.theme.Request.Render(e.Request)
	if !e.Response.HasText() {
		return echo
	}

	text := strings.TrimPrefix(m.renderer.Render(e.Response.Text), "\n")
	style := m.theme.Response
	switch {
	case e.Response.Kind == commands.ResponseQuit:
		style = m.theme.Farewell
	case e.Response.Text == console.UnavailableMessage:
		style = m.theme.Unavailable
	}
	return echo + "\n" + style.Render(text)
}

func (m Model) header() string {
	title := m.theme.HeaderTitle.Render("textadventure")
	hint := m.theme.HeaderHint.Render("type help for commands")
	gap := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(hint)-2)
	return m.theme.Header.Width(m.width).Render(title + strings.Repeat(" ", gap) + hint)
}

// hintLine shows completion candidates or the latest notice.
func (m Model) hintLine() string {
	if len(m.candidates) > 0 {
		words := make([]string, len(m.candidates))
		for i, c := range m.candidates {
			fields := strings.Fields(c)
			words[i] = fields[len(fields)-1]
		}
		return m.theme.Completion.Render(util.TruncateWidth(strings.Join(words, "  "), max(1, m.width)))
	}
	if m.notice != "" {
		return m.theme.Notice.Render(m.notice)
	}
	return ""
}

func (m Model) farewell() string {
	entries := m.screen.Entries()
	if n := len(entries); n > 0 && entries[n-1].Response.Kind == commands.ResponseQuit {
		return m.theme.Farewell.Render(m.renderer.Render(entries[n-1].Response.Text)) + "\n"
	}
	return ""
}
