// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information, set by main at startup.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "textadventure",
		Short: "A text console with a pluggable command registry",
		Long: `textadventure is a text console: type a command name followed by
-flag value pairs and the console runs it. Type help inside the console
for the list of commands.

Without a subcommand, the full-screen console starts.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("textadventure {{.Version}} (commit %s, built %s)\n", GitCommit, BuildDate))

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default ~/.textadventure/config.toml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&opts.noArchive, "no-archive", false, "do not archive this session's transcript")

	root.AddCommand(
		newREPLCommand(opts),
		newExecCommand(opts),
		newCommandsCommand(opts),
		newTranscriptCommand(opts),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := NewRootCommand()
	err := root.Execute()
	if err != nil {
		DisplayError(root.ErrOrStderr(), err)
	}
	return GetExitCode(err)
}
