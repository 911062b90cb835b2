// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mattparishdev/TextAdventure/internal/commands"
)

// Entry is one transcript row: the echoed request and its response.
type Entry struct {
	ID       uuid.UUID
	Session  uuid.UUID
	Request  string
	Response commands.Response
	At       time.Time
}

// Sink receives transcript updates from a Controller.
type Sink interface {
	// Append adds an entry. Entries with a ResponseNone response only echo
	// the request.
	Append(entry Entry) error

	// Clear removes everything shown so far.
	Clear() error
}

// =============================================================================
// IN-MEMORY TRANSCRIPT
// =============================================================================

// Transcript is a Sink that keeps entries in memory.
// It is safe for concurrent use.
type Transcript struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append implements Sink.
func (t *Transcript) Append(entry Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	return nil
}

// Clear implements Sink.
func (t *Transcript) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
	return nil
}

// Entries returns a copy of the current entries, oldest first.
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// =============================================================================
// FAN-OUT
// =============================================================================

// MultiSink delivers every update to each of its sinks in order.
// A failing sink does not stop delivery to the others; the first error is
// returned.
type MultiSink []Sink

// Append implements Sink.
func (m MultiSink) Append(entry Entry) error {
	var first error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Append(entry); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Clear implements Sink.
func (m MultiSink) Clear() error {
	var first error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Clear(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// SinkFunc adapts a pair of functions to a Sink. Either may be nil.
type SinkFunc struct {
	OnAppend func(Entry) error
	OnClear  func() error
}

// Append implements Sink.
func (f SinkFunc) Append(entry Entry) error {
	if f.OnAppend == nil {
		return nil
	}
	return f.OnAppend(entry)
}

// Clear implements Sink.
func (f SinkFunc) Clear() error {
	if f.OnClear == nil {
		return nil
	}
	return f.OnClear()
}
