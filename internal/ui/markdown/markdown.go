// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders the emphasis markup used in command responses.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"
)

// Renderer renders response text for a terminal. A nil or disabled Renderer
// strips the markup instead.
type Renderer struct {
	term *glamour.TermRenderer
}

// New creates a renderer for a glamour style ("dark", "light" or "notty")
// wrapping at width columns. When enabled is false, or glamour cannot be
// initialized, the renderer falls back to Plain.
func New(style string, width int, enabled bool) *Renderer {
	if !enabled {
		return &Renderer{}
	}
	if width <= 0 {
		width = 80
	}

	term, err := glamour.NewTermRenderer(
		glamour.WithStyles(styleConfig(style)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &Renderer{}
	}
	return &Renderer{term: term}
}

// Enabled reports whether markup is rendered rather than stripped.
func (r *Renderer) Enabled() bool {
	return r != nil && r.term != nil
}

// Render renders text line by line so that the line structure of listings
// survives; lines without markup pass through untouched.
func (r *Renderer) Render(text string) string {
	if !r.Enabled() {
		return Plain(text)
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !hasMarkup(line) {
			continue
		}
		content := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(content)]

		out, err := r.term.Render(content)
		if err != nil {
			lines[i] = indent + Plain(content)
			continue
		}
		lines[i] = indent + compact(out)
	}
	return strings.Join(lines, "\n")
}

// Plain removes emphasis markers.
func Plain(text string) string {
	if !strings.Contains(text, "**") {
		return text
	}
	return strings.ReplaceAll(text, "**", "")
}

// compact drops the blank lines glamour puts around a block.
func compact(rendered string) string {
	var kept []string
	for _, l := range strings.Split(rendered, "\n") {
		if strings.TrimSpace(xansi.Strip(l)) == "" {
			continue
		}
		kept = append(kept, strings.TrimRight(l, " "))
	}
	return strings.Join(kept, "\n")
}

func hasMarkup(line string) bool {
	return strings.Contains(line, "**") || strings.Contains(line, "`")
}

// styleConfig returns a glamour style with the document margin removed so
// rendered lines align with plain ones.
func styleConfig(name string) ansi.StyleConfig {
	var cfg ansi.StyleConfig
	switch name {
	case "light":
		cfg = styles.LightStyleConfig
	case "notty":
		cfg = styles.NoTTYStyleConfig
	default:
		cfg = styles.DarkStyleConfig
	}

	var zero uint
	cfg.Document.Margin = &zero
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""
	return cfg
}
