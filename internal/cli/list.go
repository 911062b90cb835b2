// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattparishdev/TextAdventure/internal/commands"
	"github.com/mattparishdev/TextAdventure/internal/util"
)

// commandInfo describes a registered command for --json output.
type commandInfo struct {
	Name        string      `json:"name"`
	Aliases     []string    `json:"aliases,omitempty"`
	Description string      `json:"description"`
	Params      []paramInfo `json:"params,omitempty"`
}

type paramInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

func newCommandsCommand(opts *globalOptions) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List the registered console commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if jsonOut {
				return runJSON(out, "commands", func() (any, error) {
					a, err := newApp(opts)
					if err != nil {
						return nil, err
					}
					defer a.Close()
					return describeCommands(a.registry), nil
				})
			}

			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			writeCommandTable(out, describeCommands(a.registry))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func describeCommands(registry *commands.Registry) []commandInfo {
	cmds := registry.Commands()
	infos := make([]commandInfo, 0, len(cmds))
	for _, c := range cmds {
		info := commandInfo{
			Name:        c.Name,
			Aliases:     registry.Aliases(c),
			Description: c.HelpText,
		}
		for _, p := range c.Params {
			info.Params = append(info.Params, paramInfo{
				Name:        p.Name(),
				Type:        string(p.Type()),
				Description: p.Description(),
			})
		}
		infos = append(infos, info)
	}
	return infos
}

func writeCommandTable(w io.Writer, infos []commandInfo) {
	nameWidth, aliasWidth := len("NAME"), len("ALIASES")
	for _, info := range infos {
		nameWidth = max(nameWidth, util.StringWidth(info.Name))
		aliasWidth = max(aliasWidth, util.StringWidth(strings.Join(info.Aliases, ",")))
	}

	fmt.Fprintf(w, "%s  %s  %s\n", util.PadRight("NAME", nameWidth), util.PadRight("ALIASES", aliasWidth), "DESCRIPTION")
	for _, info := range infos {
		fmt.Fprintf(w, "%s  %s  %s\n",
			util.PadRight(info.Name, nameWidth),
			util.PadRight(strings.Join(info.Aliases, ","), aliasWidth),
			util.FirstLine(info.Description))
	}
}
