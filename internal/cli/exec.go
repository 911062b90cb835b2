// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newExecCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec [--] LINE...",
		Short: "Run one console line and print the response",
		Long: `Run a single console line and print its response.

The line is passed quoted, or after -- so its -flags reach the console:

  textadventure exec "roll -sides 20"
  textadventure exec -- sum -a 2 -b 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			a.tryOpenArchive()

			out := cmd.OutOrStdout()
			p := newPrinter(out, a.cfg.UI.Theme, a.cfg.UI.RenderMarkdown)
			ctrl := a.controller(p.sink())
			ctrl.Submit(strings.Join(args, " "))
			return nil
		},
	}
}
