// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the console.
//
// Supports TOML, JSON and YAML configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ConsoleConfig: Prompt, argument tokenizer and flag strictness
//   - StorageConfig: Transcript archive location
//   - LogConfig: Log level and file
//   - UIConfig: Theme and rendering
//   - Watcher: Reloads the config file when it changes
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TEXTADVENTURE_*)
//   - ~/.textadventure/config.toml
//   - ~/.textadventure/config.json
//   - ~/.textadventure/config.yaml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//
// Follow changes:
//
//	w, err := config.Watch(path, 0, func(cfg *config.Config, err error) {
//	    // ...
//	})
//	defer w.Close()
package config
