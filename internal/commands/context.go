// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command engine.
package commands

import (
	"math/rand/v2"

	"github.com/mattparishdev/TextAdventure/internal/log"
)

// Context carries what a handler may need besides its arguments.
// All fields are optional; a zero Context uses the flag tokenizer, permissive
// flag handling and no logging.
//
// Example usage in a handler:
//
//	func handleRoll(ctx *Context, args Values) Response {
//	    n := ctx.Rand.IntN(args.Int(0)) + 1
//	    // ...
//	}
type Context struct {
	// Registry is the registry the command was resolved from
	Registry *Registry

	// Tokenizer splits the argument tail into flags (FlagTokenizer if nil)
	Tokenizer Tokenizer

	// StrictFlags rejects flags the command does not declare
	StrictFlags bool

	// Log receives handler diagnostics (may be nil)
	Log *log.Logger

	// Rand is the random source for handlers that need one
	Rand *rand.Rand
}

// NewContext creates a context bound to a registry.
func NewContext(registry *Registry) *Context {
	return &Context{
		Registry:  registry,
		Tokenizer: FlagTokenizer{},
		Rand:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (c *Context) tokenizer() Tokenizer {
	if c.Tokenizer == nil {
		return FlagTokenizer{}
	}
	return c.Tokenizer
}

func (c *Context) random() *rand.Rand {
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c.Rand
}

func (c *Context) debug(msg string, args ...any) {
	if c.Log != nil {
		c.Log.Debug(msg, args...)
	}
}
