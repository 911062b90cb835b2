// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", Debug, false},
		{"INFO", Info, false},
		{"", Info, false},
		{"warning", Warn, false},
		{"error", Error, false},
		{"loud", Info, true},
	}

	for _, tc := range tests {
		got, err := ParseLevel(tc.input)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, err=%v)", tc.input, got, err, tc.want, tc.wantErr)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Terminal: &buf, NoColor: true})

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  shown 3")
	assert.Contains(t, out, "ERROR shown 4")
}

func TestLogger_TerminalColors(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		noColor   bool
		wantColor bool
	}{
		{"plain stream", map[string]string{"CLICOLOR_FORCE": "", "NO_COLOR": ""}, false, false},
		{"forced", map[string]string{"CLICOLOR_FORCE": "1", "NO_COLOR": ""}, false, true},
		{"NO_COLOR wins", map[string]string{"CLICOLOR_FORCE": "1", "NO_COLOR": "1"}, false, false},
		{"option off", map[string]string{"CLICOLOR_FORCE": "1", "NO_COLOR": ""}, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			var buf bytes.Buffer
			l := New(Options{Level: Debug, Terminal: &buf, NoColor: tc.noColor})
			l.Error("boom")

			out := buf.String()
			assert.Contains(t, out, "ERROR boom")
			assert.Equal(t, tc.wantColor, strings.Contains(out, "\x1b["), "output %q", out)
		})
	}
}

func TestLogger_NamedJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Name: "console", Level: Debug, Terminal: &buf, JSON: true})

	l.Named("engine").Info("ran %s", "help")

	var entry logEntry
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "console/engine", entry.Service)
	assert.Equal(t, "ran help", entry.Message)
}

func TestLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "console.log")
	l := New(Options{Level: Info, File: path})

	l.Info("to file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(data)), "to file"))
}

func TestLogger_Nil(t *testing.T) {
	var l *Logger
	l.Info("nothing happens")
	assert.Nil(t, l.Named("child"))
	assert.False(t, l.Enabled(Error))
	assert.NoError(t, l.Close())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.False(t, l.Enabled(Error))
	l.Error("dropped")
}
