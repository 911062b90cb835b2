// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

// maxHistory bounds the number of remembered input lines.
const maxHistory = 500

// history is the input line history navigated with Up/Down.
// pos == len(lines) means "not browsing"; draft keeps what was typed before
// browsing started.
type history struct {
	lines []string
	pos   int
	draft string
}

func (h *history) add(line string) {
	if line == "" {
		return
	}
	if n := len(h.lines); n == 0 || h.lines[n-1] != line {
		h.lines = append(h.lines, line)
		if len(h.lines) > maxHistory {
			h.lines = h.lines[len(h.lines)-maxHistory:]
		}
	}
	h.pos = len(h.lines)
	h.draft = ""
}

// prev moves back one line; ok is false at the oldest line.
func (h *history) prev(current string) (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	if h.pos == len(h.lines) {
		h.draft = current
	}
	h.pos--
	return h.lines[h.pos], true
}

// next moves forward one line, ending at the saved draft.
func (h *history) next() (string, bool) {
	if h.pos >= len(h.lines) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.lines) {
		return h.draft, true
	}
	return h.lines[h.pos], true
}
