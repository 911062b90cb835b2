// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command engine.
package commands

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// ARGUMENTS
// =============================================================================

// Arguments maps flag names to the raw tokens supplied for them.
// It only lives for the duration of one invocation.
type Arguments map[string]string

// Lookup returns the raw token for name and whether one was supplied.
func (a Arguments) Lookup(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// Tokenizer turns the raw argument tail of a request into Arguments.
type Tokenizer interface {
	Tokenize(tail string) Arguments
}

// TokenizerByName returns the tokenizer registered under name ("flag" or
// "shell"). Unknown names fall back to the flag tokenizer.
func TokenizerByName(name string) Tokenizer {
	if strings.EqualFold(name, "shell") {
		return ShellTokenizer{}
	}
	return FlagTokenizer{}
}

// =============================================================================
// FLAG TOKENIZER
// =============================================================================

// flagPattern matches "-<name><space>+<value>". The name is a lazy run of
// non-digit characters; the value is a double-quoted string (quotes kept), a
// run of non-space characters, or a decimal number.
var flagPattern = regexp.MustCompile(`-(\D+?)\s+("[^"]*"|\S+|\d+\.?\d*)`)

// FlagTokenizer is the default tokenizer. Text that does not match the flag
// grammar is ignored. When a flag repeats, the last value wins.
type FlagTokenizer struct{}

// Tokenize implements Tokenizer.
func (FlagTokenizer) Tokenize(tail string) Arguments {
	args := make(Arguments)
	for _, m := range flagPattern.FindAllStringSubmatch(tail, -1) {
		args[m[1]] = m[2]
	}
	return args
}

// =============================================================================
// SHELL TOKENIZER
// =============================================================================

// ShellTokenizer lexes the tail shell-style (quotes removed, backslash escapes
// inside quotes) and then pairs each "-name" word with the word after it.
// A "-name" with nothing after it is ignored, as is any unpaired word.
type ShellTokenizer struct{}

// Tokenize implements Tokenizer.
func (ShellTokenizer) Tokenize(tail string) Arguments {
	args := make(Arguments)
	words := SplitWords(tail)
	for i := 0; i+1 < len(words); i++ {
		w := words[i]
		if len(w) < 2 || w[0] != '-' || isDigitByte(w[1]) {
			continue
		}
		args[w[1:]] = words[i+1]
		i++
	}
	return args
}

// SplitWords splits a line into words, respecting single and double quotes.
func SplitWords(input string) []string {
	var words []string
	var current strings.Builder
	var inSingleQuote, inDoubleQuote, quoted bool

	for i := 0; i < len(input); i++ {
		char := input[i]

		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			quoted = true

		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			quoted = true

		case char == '\\' && i+1 < len(input) && (inDoubleQuote || inSingleQuote):
			next := input[i+1]
			if next == '"' || next == '\'' || next == '\\' {
				current.WriteByte(next)
				i++
			} else {
				current.WriteByte(char)
			}

		case isSpaceByte(char) && !inSingleQuote && !inDoubleQuote:
			if current.Len() > 0 || quoted {
				words = append(words, current.String())
				current.Reset()
				quoted = false
			}

		default:
			current.WriteByte(char)
		}
	}

	if current.Len() > 0 || quoted {
		words = append(words, current.String())
	}

	return words
}

// isSpaceByte only considers ASCII; bytes of multi-byte runes are never space.
func isSpaceByte(b byte) bool {
	return b < utf8.RuneSelf && unicode.IsSpace(rune(b))
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}
