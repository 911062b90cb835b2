// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestNewTheme_Modes(t *testing.T) {
	if theme := NewTheme("dark"); !theme.IsDark {
		t.Error("NewTheme(dark) should be dark")
	}
	if theme := NewTheme("LIGHT"); theme.IsDark {
		t.Error("NewTheme(LIGHT) should be light")
	}
	if theme := NewTheme("auto"); theme == nil {
		t.Fatal("NewTheme(auto) returned nil")
	}
}

func TestGlamourStyle(t *testing.T) {
	tests := []struct {
		isDark  bool
		profile termenv.Profile
		want    string
	}{
		{true, termenv.TrueColor, "dark"},
		{false, termenv.ANSI256, "light"},
		{true, termenv.Ascii, "notty"},
	}

	for _, tc := range tests {
		theme := &Theme{IsDark: tc.isDark, ColorProfile: tc.profile}
		if got := theme.GlamourStyle(); got != tc.want {
			t.Errorf("GlamourStyle(dark=%v, profile=%v) = %q, want %q", tc.isDark, tc.profile, got, tc.want)
		}
	}
}

func TestThemeStylesRender(t *testing.T) {
	theme := NewTheme("dark")

	for name, render := range map[string]func(...string) string{
		"Prompt":      theme.Prompt.Render,
		"Request":     theme.Request.Render,
		"Response":    theme.Response.Render,
		"Unavailable": theme.Unavailable.Render,
		"Farewell":    theme.Farewell.Render,
		"Notice":      theme.Notice.Render,
	} {
		if out := render("text"); !strings.Contains(out, "text") {
			t.Errorf("%s.Render dropped its content: %q", name, out)
		}
	}
}

func TestLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{80, LayoutMedium},
		{120, LayoutWide},
	}

	theme := NewTheme("dark")
	for _, tc := range tests {
		theme.SetSize(tc.width, 24)
		if got := theme.GetLayoutMode(); got != tc.want {
			t.Errorf("width %d: GetLayoutMode() = %v, want %v", tc.width, got, tc.want)
		}
	}
}

func TestRenderStatusHelpers(t *testing.T) {
	tests := []struct {
		name      string
		render    func(string) string
		indicator string
	}{
		{"success", RenderSuccess, StatusIndicators.Success},
		{"error", RenderError, StatusIndicators.Error},
		{"warning", RenderWarning, StatusIndicators.Warning},
		{"info", RenderInfo, StatusIndicators.Info},
	}

	for _, tc := range tests {
		out := tc.render("message")
		if !strings.Contains(out, tc.indicator) || !strings.Contains(out, "message") {
			t.Errorf("%s: %q missing indicator or message", tc.name, out)
		}
	}
}
