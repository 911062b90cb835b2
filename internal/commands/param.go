// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"regexp"
	"strconv"
)

// =============================================================================
// PARAM TYPE
// =============================================================================

// ParamType is the value type a parameter is converted to.
type ParamType string

const (
	TypeString ParamType = "string" // Identity, always parses
	TypeInt    ParamType = "int"    // Base-10 integer, converted to int
	TypeFloat  ParamType = "float"  // Decimal number, converted to float64
)

// Valid reports whether t is one of the supported parameter types.
func (t ParamType) Valid() bool {
	switch t {
	case TypeString, TypeInt, TypeFloat:
		return true
	}
	return false
}

// decimalPattern is the float syntax accepted from the console. NaN,
// infinities and hex floats are not numbers here.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parse converts a raw token to t's Go type.
func (t ParamType) parse(token string) (any, bool) {
	switch t {
	case TypeString:
		return token, true
	case TypeInt:
		v, err := strconv.Atoi(token)
		if err != nil {
			return nil, false
		}
		return v, true
	case TypeFloat:
		if !decimalPattern.MatchString(token) {
			return nil, false
		}
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, false
		}
		return v, true
	}
	return nil, false
}

// matches reports whether v has the Go type values of t are stored as.
func (t ParamType) matches(v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeInt:
		_, ok := v.(int)
		return ok
	case TypeFloat:
		_, ok := v.(float64)
		return ok
	}
	return false
}

// =============================================================================
// PARAM
// =============================================================================

// Param describes one named, typed command parameter.
// A Param without a default is required. Params are immutable once built.
type Param struct {
	name        string
	typ         ParamType
	description string
	def         any
	hasDefault  bool
}

// ParamOption configures a Param at construction time.
type ParamOption func(*Param)

// WithDefault makes the parameter optional with the given default.
// The default must have the Go type of the parameter (string, int or float64).
func WithDefault(v any) ParamOption {
	return func(p *Param) {
		p.def = v
		p.hasDefault = true
	}
}

// WithDescription attaches a one-line description shown in expanded help.
func WithDescription(desc string) ParamOption {
	return func(p *Param) {
		p.description = desc
	}
}

// NewParam creates a parameter. Construction problems are reported by Validate,
// which the registry calls when the owning command is registered.
func NewParam(name string, typ ParamType, opts ...ParamOption) *Param {
	p := &Param{name: name, typ: typ}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the flag name of the parameter.
func (p *Param) Name() string { return p.name }

// Type returns the value type of the parameter.
func (p *Param) Type() ParamType { return p.typ }

// Description returns the optional one-line description.
func (p *Param) Description() string { return p.description }

// HasDefault reports whether the parameter was built with a default.
func (p *Param) HasDefault() bool { return p.hasDefault }

// Default returns the stored default. Check HasDefault first; a required
// parameter returns nil.
func (p *Param) Default() any { return p.def }

// ParseArgument converts an optionally supplied raw token.
//
// When supplied is false the default is returned, with ok reporting whether
// one exists. When supplied is true the token is converted to the parameter's
// type; ok is false (and the value nil) if it does not convert.
func (p *Param) ParseArgument(token string, supplied bool) (value any, ok bool) {
	if !supplied {
		return p.def, p.hasDefault
	}
	return p.typ.parse(token)
}

// Validate checks the parameter's construction.
func (p *Param) Validate() error {
	if p.name == "" {
		return fmt.Errorf("parameter name is empty")
	}
	if !p.typ.Valid() {
		return fmt.Errorf("parameter %s has unknown type %q", p.name, p.typ)
	}
	if p.hasDefault && !p.typ.matches(p.def) {
		return fmt.Errorf("parameter %s default %v (%T) does not match type %s", p.name, p.def, p.def, p.typ)
	}
	return nil
}

// usage renders the parameter for expanded help.
func (p *Param) usage() string {
	s := "-" + p.name + " " + string(p.typ)
	if p.hasDefault {
		s += fmt.Sprintf(" (default: %s)", formatDefault(p.def))
	} else {
		s += " (required)"
	}
	if p.description != "" {
		s += "  " + p.description
	}
	return s
}

func formatDefault(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}
