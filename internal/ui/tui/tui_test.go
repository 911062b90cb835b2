// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattparishdev/TextAdventure/internal/commands"
	"github.com/mattparishdev/TextAdventure/internal/config"
	"github.com/mattparishdev/TextAdventure/internal/console"
	"github.com/mattparishdev/TextAdventure/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	registry := commands.NewRegistry()
	require.NoError(t, commands.RegisterDefaults(registry))

	screen := console.NewTranscript()
	ctrl := console.NewController(registry, console.Options{Sink: screen})
	return New(Options{
		Controller: ctrl,
		Screen:     screen,
		Theme:      styles.NewTheme("dark"),
		Greeting:   "Type **help** to see the available commands.",
	})
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func submitLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	return send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSubmit_RendersEntry(t *testing.T) {
	m := newTestModel(t)

	m, cmd := submitLine(t, m, "echo -text hello")
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, 1, m.Screen().Len())

	view := m.View()
	assert.Contains(t, view, "echo -text hello")
	assert.Contains(t, view, "hello")
}

func TestSubmit_BlankLine(t *testing.T) {
	m := newTestModel(t)

	m, _ = submitLine(t, m, "   ")
	assert.Equal(t, 0, m.Screen().Len())
}

func TestSubmit_Unavailable(t *testing.T) {
	m := newTestModel(t)

	m, _ = submitLine(t, m, "dance")
	assert.Contains(t, m.View(), "The requested command is unavailable")
}

func TestSubmit_ClearRemovesGreeting(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "see the available commands")

	m, _ = submitLine(t, m, "help")
	m, _ = submitLine(t, m, "cls")

	assert.Equal(t, 0, m.Screen().Len())
	assert.NotContains(t, m.View(), "see the available commands")
}

func TestSubmit_Quit(t *testing.T) {
	m := newTestModel(t)

	m, cmd := submitLine(t, m, "exit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Quitting())
	assert.Contains(t, m.View(), "Goodbye.")
}

func TestCtrlC_Quits(t *testing.T) {
	m := newTestModel(t)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Quitting())
}

func TestTabCompletion(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantInput  string
		candidates int
	}{
		{"unique name", "ro", "roll ", 0},
		{"ambiguous name", "e", "e", 2},
		{"flags", "roll -", "roll -", 2},
		{"unique flag", "roll -s", "roll -sides ", 0},
		{"no match", "zzz", "zzz", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t)
			m.input.SetValue(tc.input)

			m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
			assert.Equal(t, tc.wantInput, m.input.Value())
			assert.Len(t, m.candidates, tc.candidates)
		})
	}
}

func TestTabCompletion_ListsCandidates(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("roll -")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	hint := m.hintLine()
	assert.Contains(t, hint, "-sides")
	assert.Contains(t, hint, "-count")

	// Typing dismisses the list
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Empty(t, m.candidates)
}

func TestHistory(t *testing.T) {
	m := newTestModel(t)
	m, _ = submitLine(t, m, "help")
	m, _ = submitLine(t, m, "cls")
	m.input.SetValue("draft")

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	m, _ = send(t, m, up)
	assert.Equal(t, "cls", m.input.Value())
	m, _ = send(t, m, up)
	assert.Equal(t, "help", m.input.Value())
	m, _ = send(t, m, up)
	assert.Equal(t, "help", m.input.Value())
	m, _ = send(t, m, down)
	assert.Equal(t, "cls", m.input.Value())
	m, _ = send(t, m, down)
	assert.Equal(t, "draft", m.input.Value())
}

func TestEscClearsInput(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("roll -sides")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", m.input.Value())
}

func TestConfigReloaded(t *testing.T) {
	m := newTestModel(t)

	cfg := config.Default()
	cfg.Console.Prompt = "$ "
	cfg.Console.StrictFlags = true
	cfg.UI.RenderMarkdown = false

	m, _ = send(t, m, ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, "$ ", m.input.Prompt)
	assert.Contains(t, m.hintLine(), "configuration reloaded")

	m, _ = submitLine(t, m, "echo -text hi -loud 1")
	entries := m.Screen().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Unknown parameter loud", entries[0].Response.Text)
}

func TestConfigReloaded_Error(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, ConfigReloadedMsg{Err: errors.New("bad toml")})
	assert.Contains(t, m.hintLine(), "config reload failed: bad toml")
	assert.Equal(t, "> ", m.input.Prompt)
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, m.viewport.Width)
	assert.Equal(t, 30-headerHeight-footerHeight, m.viewport.Height)
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, "roll -", commonPrefix([]string{"roll -sides ", "roll -count "}))
	assert.Equal(t, "e", commonPrefix([]string{"echo", "exit"}))
	assert.Equal(t, "", commonPrefix(nil))
	// "é" and "è" share their first byte
	assert.Equal(t, "caf", commonPrefix([]string{"caf\u00e9", "caf\u00e8"}))
	assert.Equal(t, "\u00fcber", commonPrefix([]string{"\u00fcber", "\u00fcberall"}))
}
