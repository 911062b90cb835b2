// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the command-line entry points for textadventure.
//
// # Commands
//
//	textadventure                    Full-screen console (TUI)
//	textadventure repl               Line-based console with history and Tab completion
//	textadventure exec <line>        Run one console line and print the response
//	textadventure commands           List the available console commands
//	textadventure transcript         Show archived transcript entries
//
// # Global Flags
//
//	--config PATH      Use a specific config file
//	--log-level LEVEL  Override log.level (debug, info, warn, error)
//	--no-archive       Do not archive this session's transcript
//
// Console lines that contain flags must be quoted or follow "--", since the
// console's own flags are single-dash words:
//
//	textadventure exec 'roll -sides 20'
//	textadventure exec -- roll -sides 20
package cli
