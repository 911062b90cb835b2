// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command engine.
//
// A request line is split into a command name and a raw argument tail. The
// name is resolved in a Registry; the command tokenizes the tail into
// "-name value" flags, converts each declared parameter to its type, applies
// defaults, and only then calls its handler. Every argument problem of a call
// is collected and reported together; the handler does not run.
//
// # Key Types
//
//   - Param: Named, typed, optionally defaulted parameter
//   - Command: Name, help text, parameters and handler
//   - Registry: Name and alias lookup, plus the built-in help and cls
//   - Request: Parsed input line (ParseRequest)
//   - Response: Structured outcome (text, none, clear, quit)
//   - Tokenizer: Flag grammar (FlagTokenizer) or shell-style (ShellTokenizer)
//   - Completer: Tab completion for command names and flags
//
// # Built-in Commands
//
//   - help, ?: List commands, or describe one with -command <name>
//   - cls: Clear the transcript
//
// RegisterDefaults adds echo, roll, sum and quit (alias exit).
//
// # Usage
//
//	registry := commands.NewRegistry()
//	req, ok := commands.ParseRequest("help -command cls")
//	if ok {
//	    if cmd, found := registry.Resolve(req.Name); found {
//	        resp := cmd.Execute(commands.NewContext(registry), req.Tail)
//	        // ...
//	    }
//	}
package commands
