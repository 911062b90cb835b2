// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command engine.
package commands

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// REQUEST
// =============================================================================

// Request is one line of console input split into a command name and the
// raw argument tail that follows it.
type Request struct {
	// Name is the command name (text before the first whitespace)
	Name string

	// Tail is everything after the first whitespace character, unparsed
	Tail string

	// Raw is the trimmed input line
	Raw string
}

// =============================================================================
// PARSER
// =============================================================================

// ParseRequest splits a raw input line on its first whitespace character.
// It returns false for blank input, which is not an error: the caller simply
// has nothing to run.
func ParseRequest(line string) (Request, bool) {
	line = strings.TrimSpace(line)

	req := Request{Raw: line}

	end := strings.IndexFunc(line, isSpaceRune)
	if end == -1 {
		req.Name = line
	} else {
		_, size := utf8.DecodeRuneInString(line[end:])
		req.Name = line[:end]
		req.Tail = line[end+size:]
	}

	if req.Name == "" {
		return Request{}, false
	}
	return req, true
}

// ExtractCommandName returns just the command name of a line.
// e.g., "help -command cls" -> "help"
func ExtractCommandName(line string) string {
	req, _ := ParseRequest(line)
	return req.Name
}

func isSpaceRune(r rune) bool {
	return unicode.IsSpace(r)
}
