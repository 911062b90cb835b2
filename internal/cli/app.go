// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/mattparishdev/TextAdventure/internal/commands"
	"github.com/mattparishdev/TextAdventure/internal/config"
	"github.com/mattparishdev/TextAdventure/internal/console"
	"github.com/mattparishdev/TextAdventure/internal/log"
	"github.com/mattparishdev/TextAdventure/internal/storage"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	logLevel   string
	noArchive  bool
}

// app is what every subcommand needs: configuration, a logger, the command
// registry and, when enabled, the transcript archive.
type app struct {
	cfg        *config.Config
	configPath string // file the config came from ("" for defaults)
	log        *log.Logger
	registry   *commands.Registry
	archive    *storage.TranscriptStore
}

// newApp loads configuration and builds the registry. The archive is opened
// separately with openArchive.
func newApp(opts *globalOptions) (*app, error) {
	cfg, path, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.logLevel != "" {
		if _, err := log.ParseLevel(opts.logLevel); err != nil {
			return nil, &UsageError{Message: fmt.Sprintf("invalid --log-level %q: must be one of debug, info, warn, error", opts.logLevel)}
		}
		cfg.Log.Level = opts.logLevel
	}
	if opts.noArchive {
		cfg.Storage.ArchiveEnabled = false
	}

	level, _ := log.ParseLevel(cfg.Log.Level)
	logger := log.New(log.Options{
		Name:  "textadventure",
		Level: level,
		File:  config.ExpandHome(cfg.Log.File),
		JSON:  cfg.Log.JSON,
	})

	registry := commands.NewRegistry()
	if err := commands.RegisterDefaults(registry); err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}

	logger.Debug("loaded config from %s", describePath(path))
	return &app{
		cfg:        cfg,
		configPath: path,
		log:        logger,
		registry:   registry,
	}, nil
}

// loadConfig loads an explicit file, or the default locations.
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.LoadFromPath(path)
		if err != nil {
			return nil, "", &ConfigError{Path: path, Err: err}
		}
		return cfg, path, nil
	}

	found, _ := config.LocatePath()
	cfg, err := config.Load()
	if err != nil {
		return nil, "", &ConfigError{Path: found, Err: err}
	}
	return cfg, found, nil
}

func describePath(path string) string {
	if path == "" {
		return "built-in defaults"
	}
	return path
}

// openArchive opens the transcript archive if it is enabled.
func (a *app) openArchive() error {
	if !a.cfg.Storage.ArchiveEnabled || a.archive != nil {
		return nil
	}
	store, err := storage.OpenTranscriptStore(config.ExpandHome(a.cfg.Storage.ArchivePath))
	if err != nil {
		return err
	}
	a.archive = store
	return nil
}

// tryOpenArchive opens the archive for an interactive session, which runs
// without archiving if that fails.
func (a *app) tryOpenArchive() {
	if err := a.openArchive(); err != nil {
		a.log.Warn("transcript archive disabled: %v", err)
	}
}

// controller builds a controller that forwards to sinks and the archive.
func (a *app) controller(sinks ...console.Sink) *console.Controller {
	if a.archive != nil {
		sinks = append(sinks, a.archive)
	}
	ctrl := console.NewController(a.registry, console.Options{
		Tokenizer:   commands.TokenizerByName(strings.ToLower(a.cfg.Console.Tokenizer)),
		StrictFlags: a.cfg.Console.StrictFlags,
		Sink:        console.MultiSink(sinks),
		Log:         a.log.Named("console"),
	})
	a.log.Info("session %s started", ctrl.Session())
	return ctrl
}

// Close releases the archive and the log file.
func (a *app) Close() error {
	var first error
	if a.archive != nil {
		if err := a.archive.Close(); err != nil {
			first = err
		}
	}
	if err := a.log.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
