// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every override for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TEXTADVENTURE_PROMPT", "TEXTADVENTURE_TOKENIZER", "TEXTADVENTURE_STRICT_FLAGS",
		"TEXTADVENTURE_ARCHIVE", "TEXTADVENTURE_ARCHIVE_PATH", "TEXTADVENTURE_LOG_LEVEL",
		"TEXTADVENTURE_LOG_FILE", "TEXTADVENTURE_THEME", "NO_COLOR",
	} {
		if old, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "flag", cfg.Console.Tokenizer)
	assert.False(t, cfg.Console.StrictFlags)
	assert.True(t, cfg.Storage.ArchiveEnabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad tokenizer", func(c *Config) { c.Console.Tokenizer = "regex" }, "console.tokenizer"},
		{"blank prompt", func(c *Config) { c.Console.Prompt = "  " }, "console.prompt"},
		{"bad level", func(c *Config) { c.Log.Level = "chatty" }, "log.level"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"archive without path", func(c *Config) { c.Storage.ArchivePath = "" }, "storage.archive_path"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs), "want ValidateErrors, got %v", err)
			require.Len(t, verrs, 1)
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}
}

func TestSaveAndLoadTOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Console.Prompt = "$ "
	cfg.Console.Tokenizer = "shell"
	cfg.Console.StrictFlags = true
	cfg.Storage.ArchiveEnabled = false
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveTOML_CreatesPrivateDir(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "nested")
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, SaveTOML(Default(), path))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestLoadFromPath_Formats(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	files := map[string]string{
		"config.json": `{"console": {"prompt": "json> ", "strict_flags": true}}`,
		"config.yaml": "console:\n  prompt: \"yaml> \"\n  strict_flags: true\n",
		"config.toml": "[console]\nprompt = \"toml> \"\nstrict_flags = true\n",
	}

	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(body), 0600))

			cfg, err := LoadFromPath(path)
			require.NoError(t, err)
			assert.Equal(t, name[len("config."):]+"> ", cfg.Console.Prompt)
			assert.True(t, cfg.Console.StrictFlags)
			// Unset fields keep their defaults
			assert.Equal(t, "flag", cfg.Console.Tokenizer)
			assert.True(t, cfg.Storage.ArchiveEnabled)
		})
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[console\n"), 0600))
	_, err := LoadFromPath(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[console]\ntokenizer = \"regex\"\n"), 0600))
	_, err = LoadFromPath(invalid)
	var verrs ValidateErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = LoadFromPath(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEXTADVENTURE_PROMPT", ">> ")
	t.Setenv("TEXTADVENTURE_TOKENIZER", "shell")
	t.Setenv("TEXTADVENTURE_STRICT_FLAGS", "true")
	t.Setenv("TEXTADVENTURE_ARCHIVE", "0")
	t.Setenv("TEXTADVENTURE_LOG_LEVEL", "debug")
	t.Setenv("NO_COLOR", "")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, ">> ", cfg.Console.Prompt)
	assert.Equal(t, "shell", cfg.Console.Tokenizer)
	assert.True(t, cfg.Console.StrictFlags)
	assert.False(t, cfg.Storage.ArchiveEnabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.UI.RenderMarkdown)
}

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	def := Default()

	assert.Equal(t, def.Version, cfg.Version)
	assert.Equal(t, def.Console.Prompt, cfg.Console.Prompt)
	assert.Equal(t, def.Console.Tokenizer, cfg.Console.Tokenizer)
	assert.Equal(t, def.Log.Level, cfg.Log.Level)
	assert.Equal(t, def.UI.Theme, cfg.UI.Theme)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x", "y.db"), ExpandHome("~/x/y.db"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestWatch_Reloads(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	changes := make(chan *Config, 4)
	w, err := Watch(path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			changes <- cfg
		}
	})
	require.NoError(t, err)
	defer w.Close()

	cfg := Default()
	cfg.Console.Prompt = "changed> "
	require.NoError(t, SaveTOML(cfg, path))

	select {
	case got := <-changes:
		assert.Equal(t, "changed> ", got.Console.Prompt)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}
}
