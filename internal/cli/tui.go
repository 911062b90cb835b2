// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mattparishdev/TextAdventure/internal/config"
	"github.com/mattparishdev/TextAdventure/internal/console"
	"github.com/mattparishdev/TextAdventure/internal/ui/styles"
	"github.com/mattparishdev/TextAdventure/internal/ui/tui"
)

// runTUI starts the full-screen console. Edits to the config file are
// applied while it runs.
func runTUI(cmd *cobra.Command, opts *globalOptions) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()
	a.tryOpenArchive()

	screen := console.NewTranscript()
	ctrl := a.controller(screen)

	model := tui.New(tui.Options{
		Controller:     ctrl,
		Screen:         screen,
		Theme:          styles.NewTheme(a.cfg.UI.Theme),
		Prompt:         a.cfg.Console.Prompt,
		Greeting:       a.cfg.Console.Greeting,
		RenderMarkdown: a.cfg.UI.RenderMarkdown,
	})

	programOpts := []tea.ProgramOption{
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if a.cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, programOpts...)

	if a.configPath != "" {
		w, err := config.Watch(a.configPath, config.DefaultWatchDebounce, func(cfg *config.Config, err error) {
			if err != nil {
				a.log.Warn("config reload failed: %v", err)
			} else {
				a.log.Info("config reloaded from %s", a.configPath)
			}
			p.Send(tui.ConfigReloadedMsg{Config: cfg, Err: err})
		})
		if err != nil {
			a.log.Warn("config watch disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return &CommandError{Command: "textadventure", Action: "run console", Err: err}
	}
	a.log.Info("session %s ended", ctrl.Session())
	return nil
}
