// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command engine.
package commands

import (
	"strings"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer handles tab completion for command names and flags.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns full-line candidates for the given input.
//
// While the first word is being typed, command names and aliases with that
// prefix are offered. Afterwards, the flags of the resolved command that are
// not already present are offered for the last word.
func (c *Completer) Complete(line string) []string {
	if c.registry == nil {
		return nil
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.IndexFunc(trimmed, isSpaceRune) == -1 {
		return c.completeCommands(trimmed)
	}

	cmd, ok := c.registry.Resolve(ExtractCommandName(trimmed))
	if !ok {
		return nil
	}

	// Split off the word under the cursor
	head, partial := line, ""
	if i := strings.LastIndexFunc(line, isSpaceRune); i >= 0 && i < len(line)-1 {
		head, partial = line[:i+1], line[i+1:]
	}
	if partial != "" && !strings.HasPrefix(partial, "-") {
		return nil
	}

	return c.completeFlags(cmd, head, strings.TrimPrefix(partial, "-"))
}

// completeCommands returns command names and aliases starting with partial.
func (c *Completer) completeCommands(partial string) []string {
	return c.registry.NamesWithPrefix(partial)
}

// completeFlags returns head extended by each unused flag matching partial.
func (c *Completer) completeFlags(cmd *Command, head, partial string) []string {
	used := FlagTokenizer{}.Tokenize(head)

	var out []string
	for _, p := range cmd.Params {
		if _, ok := used[p.Name()]; ok {
			continue
		}
		if strings.HasPrefix(p.Name(), partial) {
			out = append(out, head+"-"+p.Name()+" ")
		}
	}
	return out
}
