// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command engine.
package commands

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// HandlerFunc executes a command with its resolved arguments.
// args holds one value per declared parameter, in declaration order.
type HandlerFunc func(ctx *Context, args Values) Response

// Command binds a name, help text and handler to an ordered parameter list.
// Commands are not modified after registration.
type Command struct {
	// Name is the primary command name (e.g., "help")
	Name string

	// HelpText is the one-line summary shown in listings
	HelpText string

	// Details is an optional paragraph shown in expanded help
	Details string

	// Params are the declared parameters, in handler argument order
	Params []*Param

	// Handler runs the command once all arguments resolved
	Handler HandlerFunc
}

// =============================================================================
// VALUES
// =============================================================================

// Values are the resolved arguments of one invocation.
type Values []any

// String returns argument i as a string.
func (v Values) String(i int) string {
	s, _ := v[i].(string)
	return s
}

// Int returns argument i as an int.
func (v Values) Int(i int) int {
	n, _ := v[i].(int)
	return n
}

// Float returns argument i as a float64.
func (v Values) Float(i int) float64 {
	f, _ := v[i].(float64)
	return f
}

// =============================================================================
// ARGUMENT ERRORS
// =============================================================================

// ArgumentErrorKind classifies an argument resolution failure.
type ArgumentErrorKind int

const (
	ErrMissing     ArgumentErrorKind = iota // Required parameter not supplied
	ErrWrongType                            // Token did not parse as the parameter type
	ErrUnknownFlag                          // Flag not declared (strict mode only)
)

// ArgumentError describes one problem with the arguments of an invocation.
type ArgumentError struct {
	Kind  ArgumentErrorKind
	Param string
	Type  ParamType
}

func (e *ArgumentError) Error() string {
	switch e.Kind {
	case ErrWrongType:
		return fmt.Sprintf("Parameter %s was not of expected type %s", e.Param, e.Type)
	case ErrUnknownFlag:
		return fmt.Sprintf("Unknown parameter %s", e.Param)
	default:
		return fmt.Sprintf("Required parameter %s was not provided", e.Param)
	}
}

// Resolution is the result of matching Arguments against a command's params.
// Values must not be used when Errors is non-empty.
type Resolution struct {
	Values Values
	Errors []*ArgumentError
}

// OK reports whether resolution produced no errors.
func (r Resolution) OK() bool {
	return len(r.Errors) == 0
}

// Message joins the error messages, one per line.
func (r Resolution) Message() string {
	msgs := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// =============================================================================
// EXECUTION
// =============================================================================

// Execute parses the raw argument tail and runs the handler.
// Argument problems are all collected and returned as the response text; the
// handler is not invoked in that case.
func (c *Command) Execute(ctx *Context, tail string) Response {
	if ctx == nil {
		ctx = &Context{}
	}

	args := ctx.tokenizer().Tokenize(strings.TrimSpace(tail))
	res := c.Resolve(args)
	if ctx.StrictFlags {
		res.Errors = append(res.Errors, c.unknownFlags(args)...)
	}

	if !res.OK() {
		return Text(res.Message())
	}
	return c.Handler(ctx, res.Values)
}

// Resolve converts raw tokens into handler values, in declared order.
func (c *Command) Resolve(args Arguments) Resolution {
	var res Resolution

	for _, p := range c.Params {
		token, supplied := args.Lookup(p.Name())
		value, ok := p.ParseArgument(token, supplied)

		switch {
		case ok:
			res.Values = append(res.Values, value)
		case supplied:
			res.Errors = append(res.Errors, &ArgumentError{Kind: ErrWrongType, Param: p.Name(), Type: p.Type()})
		default:
			res.Errors = append(res.Errors, &ArgumentError{Kind: ErrMissing, Param: p.Name(), Type: p.Type()})
		}
	}

	return res
}

// unknownFlags reports supplied flags no parameter declares, sorted by name.
func (c *Command) unknownFlags(args Arguments) []*ArgumentError {
	var names []string
	for name := range args {
		if c.Param(name) == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	errs := make([]*ArgumentError, len(names))
	for i, name := range names {
		errs[i] = &ArgumentError{Kind: ErrUnknownFlag, Param: name}
	}
	return errs
}

// Param returns the declared parameter called name, or nil.
func (c *Command) Param(name string) *Param {
	for _, p := range c.Params {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// =============================================================================
// HELP
// =============================================================================

// BriefHelp returns the one-line summary used in listings.
func (c *Command) BriefHelp() string {
	return c.Name + " - " + c.HelpText
}

// ExpandedHelp returns the summary plus details and parameter descriptions.
// Without either, it is the same as BriefHelp.
func (c *Command) ExpandedHelp() string {
	if c.Details == "" && len(c.Params) == 0 {
		return c.BriefHelp()
	}

	var sb strings.Builder
	sb.WriteString(c.BriefHelp())
	if c.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(c.Details)
	}
	if len(c.Params) > 0 {
		sb.WriteString("\nParameters:")
		for _, p := range c.Params {
			sb.WriteString("\n  ")
			sb.WriteString(p.usage())
		}
	}
	return sb.String()
}

// validate checks the command before it enters a registry.
func (c *Command) validate() error {
	if c.Name == "" {
		return fmt.Errorf("command name is empty")
	}
	if strings.IndexFunc(c.Name, isSpaceRune) >= 0 {
		return fmt.Errorf("command name %q contains whitespace", c.Name)
	}
	if c.Handler == nil {
		return fmt.Errorf("command %s has no handler", c.Name)
	}

	seen := make(map[string]bool, len(c.Params))
	for _, p := range c.Params {
		if p == nil {
			return fmt.Errorf("command %s has a nil parameter", c.Name)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("command %s: %w", c.Name, err)
		}
		if seen[p.Name()] {
			return fmt.Errorf("command %s declares parameter %s twice", c.Name, p.Name())
		}
		seen[p.Name()] = true
	}
	return nil
}
