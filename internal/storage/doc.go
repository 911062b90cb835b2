// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage archives console transcripts in SQLite.
//
// The archive is a console.Sink: every entry a Controller submits is inserted
// as a row tagged with its session. Clearing the screen does not remove
// anything from the archive.
//
// # Key Types
//
//   - TranscriptStore: SQLite-backed sink and reader
//   - SessionSummary: Lightweight session metadata for listing
//
// # Usage
//
// Open the archive and attach it to a controller:
//
//	store, err := storage.OpenTranscriptStore(path)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//	ctrl := console.NewController(registry, console.Options{Sink: store})
//
// Read it back:
//
//	entries, err := store.Recent(ctx, 20)
//	sessions, err := store.Sessions(ctx)
package storage
