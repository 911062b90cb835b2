// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command engine.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// Limits for the roll command.
const (
	MaxDiceSides = 1000
	MaxDiceCount = 100
)

// RegisterDefaults adds the general-purpose commands the console ships with.
// NewRegistry only installs help and cls; callers opt into these.
func RegisterDefaults(r *Registry) error {
	echo := &Command{
		Name:     "echo",
		HelpText: "Print the given text",
		Details:  "Quoted text keeps its quotes: echo -text \"hello world\"",
		Params: []*Param{
			NewParam("text", TypeString, WithDescription("Text to print")),
		},
		Handler: handleEcho,
	}

	roll := &Command{
		Name:     "roll",
		HelpText: "Roll dice",
		Params: []*Param{
			NewParam("sides", TypeInt, WithDefault(6), WithDescription("Sides per die")),
			NewParam("count", TypeInt, WithDefault(1), WithDescription("Number of dice")),
		},
		Handler: handleRoll,
	}

	sum := &Command{
		Name:     "sum",
		HelpText: "Add two numbers",
		Params: []*Param{
			NewParam("a", TypeFloat, WithDescription("First operand")),
			NewParam("b", TypeFloat, WithDefault(0.0), WithDescription("Second operand")),
		},
		Handler: handleSum,
	}

	quit := &Command{
		Name:     "quit",
		HelpText: "Leave the console",
		Handler: func(_ *Context, _ Values) Response {
			return Quit("Goodbye.")
		},
	}

	for _, cmd := range []*Command{echo, roll, sum, quit} {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return r.RegisterAlias("exit", quit)
}

// =============================================================================
// HANDLER IMPLEMENTATIONS
// =============================================================================

func handleEcho(_ *Context, args Values) Response {
	return Text(args.String(0))
}

func handleRoll(ctx *Context, args Values) Response {
	sides, count := args.Int(0), args.Int(1)
	if sides < 2 || sides > MaxDiceSides {
		return Text(fmt.Sprintf("sides must be between 2 and %d", MaxDiceSides))
	}
	if count < 1 || count > MaxDiceCount {
		return Text(fmt.Sprintf("count must be between 1 and %d", MaxDiceCount))
	}

	rng := ctx.random()
	rolls := make([]string, count)
	total := 0
	for i := range rolls {
		n := rng.IntN(sides) + 1
		total += n
		rolls[i] = strconv.Itoa(n)
	}
	ctx.debug("rolled %dd%d: %v", count, sides, rolls)

	if count == 1 {
		return Text(fmt.Sprintf("You rolled **%d**", total))
	}
	return Text(fmt.Sprintf("You rolled %s = **%d**", strings.Join(rolls, " + "), total))
}

func handleSum(_ *Context, args Values) Response {
	return Text(strconv.FormatFloat(args.Float(0)+args.Float(1), 'g', -1, 64))
}
