// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console connects the command engine to a transcript.
//
// A Controller takes one raw input line at a time, resolves and executes the
// command it names, and forwards the outcome to a Sink. Sinks are whatever
// shows or keeps the transcript: the in-memory Transcript, the SQLite archive
// in internal/storage, or a frontend.
//
// # Usage
//
//	registry := commands.NewRegistry()
//	transcript := console.NewTranscript()
//	ctrl := console.NewController(registry, console.Options{Sink: transcript})
//
//	ctrl.Submit("help")
//	for _, e := range transcript.Entries() {
//	    fmt.Println(e.Request, e.Response.Text)
//	}
package console
