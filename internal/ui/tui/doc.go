// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tui provides the full-screen console frontend.
//
// The Model is a Bubble Tea model with a scrolling transcript (a bubbles
// viewport) above a single input line (a bubbles textinput). Every submitted
// line goes through a console.Controller; the controller appends to the
// model's screen transcript, which the view renders.
//
// # Key Bindings
//
//   - Enter: submit the line
//   - Tab: complete command names and flags
//   - Up/Down: input history
//   - PgUp/PgDown: scroll the transcript
//   - Esc: clear the input line
//   - Ctrl+C: quit
//
// # Usage
//
//	m := tui.New(tui.Options{Controller: ctrl, Screen: screen, Theme: theme})
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
package tui
