// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattparishdev/TextAdventure/internal/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.applyTheme()
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.notice = fmt.Sprintf("config reload failed: %v", msg.Err)
			return m, nil
		}
		m.applyConfig(msg.Config)
		m.notice = "configuration reloaded"
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Complete):
		return m.complete(), nil

	case key.Matches(msg, m.keys.HistPrev):
		if line, ok := m.history.prev(m.input.Value()); ok {
			m.setInput(line)
		}
		return m, nil

	case key.Matches(msg, m.keys.HistNext):
		if line, ok := m.history.next(); ok {
			m.setInput(line)
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.ClearInput):
		m.input.Reset()
		m.candidates = nil
		return m, nil
	}

	// Any other key edits the line; stale candidates go away
	m.candidates = nil
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the input line through the controller.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	m.candidates = nil
	m.notice = ""
	m.history.add(strings.TrimSpace(line))

	entry, ok := m.ctrl.Submit(line)
	if !ok {
		return m, nil
	}

	switch entry.Response.Kind {
	case commands.ResponseClear:
		m.greeting = ""
	case commands.ResponseQuit:
		m.quitting = true
		m.refresh()
		return m, tea.Quit
	}

	m.refresh()
	return m, nil
}

// complete applies tab completion. A single candidate replaces the line;
// several extend it to their common prefix and are listed under the input.
func (m Model) complete() Model {
	cands := m.completer.Complete(m.input.Value())
	switch len(cands) {
	case 0:
		m.candidates = nil
	case 1:
		line := cands[0]
		if !strings.HasSuffix(line, " ") {
			line += " "
		}
		m.setInput(line)
		m.candidates = nil
	default:
		if p := commonPrefix(cands); len(p) > len(m.input.Value()) {
			m.setInput(p)
		}
		m.candidates = cands
	}
	return m
}

func (m *Model) setInput(line string) {
	m.input.SetValue(line)
	m.input.CursorEnd()
}

func commonPrefix(items []string) string {
	if len(items) == 0 {
		return ""
	}
	prefix := items[0]
	for _, s := range items[1:] {
		for !strings.HasPrefix(s, prefix) {
			_, size := utf8.DecodeLastRuneInString(prefix)
			prefix = prefix[:len(prefix)-size]
		}
	}
	return prefix
}
