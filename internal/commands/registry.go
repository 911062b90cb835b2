// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command engine.
package commands

import (
	"fmt"
	"strings"

	"github.com/tidwall/btree"
)

// Names of the built-in commands every registry carries.
const (
	HelpCommand  = "help"
	HelpAlias    = "?"
	ClearCommand = "cls"
)

// =============================================================================
// REGISTRATION ERROR
// =============================================================================

// RegistrationError reports why a command or alias could not be registered.
type RegistrationError struct {
	Name    string
	Message string
	Err     error
}

func (e *RegistrationError) Error() string {
	msg := "register " + e.Name + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry maps command names and aliases to commands.
// It is built once at startup and only read afterwards.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command

	// index holds every name and alias in sorted order for listings and
	// prefix completion.
	index *btree.Map[string, *Command]

	help *Command
}

// NewRegistry creates a registry holding the built-in help and cls commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
		index:    btree.NewMap[string, *Command](0),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command under its primary name.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil {
		return &RegistrationError{Name: "<nil>", Message: "command is nil"}
	}
	if err := cmd.validate(); err != nil {
		return &RegistrationError{Name: cmd.Name, Message: "invalid command", Err: err}
	}
	if r.taken(cmd.Name) {
		return &RegistrationError{Name: cmd.Name, Message: "name already registered"}
	}

	r.commands[cmd.Name] = cmd
	r.index.Set(cmd.Name, cmd)
	return nil
}

// RegisterAlias makes alias resolve to cmd, which must already be registered.
// Both names share the same *Command.
func (r *Registry) RegisterAlias(alias string, cmd *Command) error {
	if alias == "" || strings.IndexFunc(alias, isSpaceRune) >= 0 {
		return &RegistrationError{Name: alias, Message: "invalid alias"}
	}
	if cmd == nil || r.commands[cmd.Name] != cmd {
		return &RegistrationError{Name: alias, Message: "alias target is not registered"}
	}
	if r.taken(alias) {
		return &RegistrationError{Name: alias, Message: "name already registered"}
	}

	r.aliases[alias] = cmd
	r.index.Set(alias, cmd)
	return nil
}

// MustRegister registers cmd and its aliases, panicking on error.
// It is meant for static command tables built at startup.
func (r *Registry) MustRegister(cmd *Command, aliases ...string) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
	for _, alias := range aliases {
		if err := r.RegisterAlias(alias, cmd); err != nil {
			panic(err)
		}
	}
}

// Resolve returns the command registered under name or alias.
// Matching is exact and case-sensitive.
func (r *Registry) Resolve(name string) (*Command, bool) {
	if cmd, ok := r.commands[name]; ok {
		return cmd, true
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd, true
	}
	return nil, false
}

// Commands returns the registered commands sorted by primary name.
func (r *Registry) Commands() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	r.index.Scan(func(name string, cmd *Command) bool {
		if cmd.Name == name {
			cmds = append(cmds, cmd)
		}
		return true
	})
	return cmds
}

// Names returns every registered name and alias, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.index.Len())
	r.index.Scan(func(name string, _ *Command) bool {
		names = append(names, name)
		return true
	})
	return names
}

// NamesWithPrefix returns the sorted names and aliases starting with prefix.
func (r *Registry) NamesWithPrefix(prefix string) []string {
	var names []string
	r.index.Ascend(prefix, func(name string, _ *Command) bool {
		if !strings.HasPrefix(name, prefix) {
			return false
		}
		names = append(names, name)
		return true
	})
	return names
}

// Aliases returns the aliases registered for cmd, sorted.
func (r *Registry) Aliases(cmd *Command) []string {
	var names []string
	r.index.Scan(func(name string, c *Command) bool {
		if c == cmd && name != cmd.Name {
			names = append(names, name)
		}
		return true
	})
	return names
}

// Listing concatenates the brief help of every command except help itself,
// each preceded by a newline.
func (r *Registry) Listing() string {
	var sb strings.Builder
	for _, cmd := range r.Commands() {
		if cmd == r.help {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(cmd.BriefHelp())
	}
	return sb.String()
}

// Help produces the help text for the named command, or the full listing
// when name is empty.
func (r *Registry) Help(name string) string {
	if name == "" {
		return r.Listing()
	}
	if cmd, ok := r.Resolve(name); ok && cmd != r.help {
		return cmd.ExpandedHelp()
	}
	return fmt.Sprintf("**%s** is not an available command", name) + r.Listing()
}

func (r *Registry) taken(name string) bool {
	_, ok := r.index.Get(name)
	return ok
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.help = &Command{
		Name:     HelpCommand,
		HelpText: "Get information about the available commands, or about a specific command",
		Params: []*Param{
			NewParam("command", TypeString, WithDefault(""), WithDescription("Command to describe")),
		},
		Handler: func(_ *Context, args Values) Response {
			return Text(r.Help(args.String(0)))
		},
	}
	r.MustRegister(r.help, HelpAlias)

	r.MustRegister(&Command{
		Name:     ClearCommand,
		HelpText: "Clear the screen",
		Handler: func(_ *Context, _ Values) Response {
			return Clear()
		},
	})
}
