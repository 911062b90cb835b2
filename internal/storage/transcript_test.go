// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattparishdev/TextAdventure/internal/commands"
	"github.com/mattparishdev/TextAdventure/internal/console"
)

func openTestStore(t *testing.T) (*TranscriptStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive", "transcript.db")
	store, err := OpenTranscriptStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestTranscriptStore_AppendAndSession(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	session := uuid.New()
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	entries := []console.Entry{
		{ID: uuid.New(), Session: session, Request: "help", Response: commands.Text("\ncls - Clear the screen"), At: at},
		{ID: uuid.New(), Session: session, Request: "cls", Response: commands.Clear(), At: at.Add(time.Second)},
		{ID: uuid.New(), Session: session, Request: "quit", Response: commands.Quit("Goodbye."), At: at.Add(2 * time.Second)},
	}
	for _, e := range entries {
		require.NoError(t, store.Append(e))
	}
	require.NoError(t, store.Clear())

	got, err := store.Session(ctx, session)
	require.NoError(t, err)
	require.Len(t, got, len(entries))
	for i := range entries {
		assert.Equal(t, entries[i].ID, got[i].ID)
		assert.Equal(t, entries[i].Request, got[i].Request)
		assert.Equal(t, entries[i].Response, got[i].Response)
		assert.True(t, entries[i].At.Equal(got[i].At))
	}
}

func TestTranscriptStore_SessionNotFound(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.Session(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.True(t, IsNotFound(err))
}

func TestTranscriptStore_Recent(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	session := uuid.New()

	for _, req := range []string{"a", "b", "c", "d"} {
		require.NoError(t, store.Append(console.Entry{Session: session, Request: req}))
	}

	got, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].Request)
	assert.Equal(t, "d", got[1].Request)
	assert.NotEqual(t, uuid.Nil, got[0].ID)

	all, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTranscriptStore_Persists(t *testing.T) {
	store, path := openTestStore(t)
	session := uuid.New()
	require.NoError(t, store.Append(console.Entry{Session: session, Request: "echo -text hi", Response: commands.Text("hi")}))
	require.NoError(t, store.Close())

	reopened, err := OpenTranscriptStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Session(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Response.Text)
}

func TestTranscriptStore_Sessions(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	first, second := uuid.New(), uuid.New()

	require.NoError(t, store.Append(console.Entry{Session: first, Request: "help"}))
	require.NoError(t, store.Append(console.Entry{Session: first, Request: "cls"}))
	require.NoError(t, store.Append(console.Entry{Session: second, Request: "roll"}))

	sessions, err := store.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, second, sessions[0].ID)
	assert.Equal(t, 1, sessions[0].Entries)
	assert.Equal(t, first, sessions[1].ID)
	assert.Equal(t, 2, sessions[1].Entries)
	assert.Equal(t, "help", sessions[1].Preview)

	table := FormatSessionList(sessions)
	assert.Contains(t, table, first.String())
	assert.Contains(t, table, "roll")
	assert.Equal(t, "No sessions found.\n", FormatSessionList(nil))
}

func TestTranscriptStore_WithController(t *testing.T) {
	store, _ := openTestStore(t)
	transcript := console.NewTranscript()

	ctrl := console.NewController(commands.NewRegistry(), console.Options{
		Sink: console.MultiSink{transcript, store},
	})
	ctrl.Submit("help")
	ctrl.Submit("cls")

	// The screen is cleared; the archive keeps both entries.
	assert.Equal(t, 0, transcript.Len())
	got, err := store.Session(context.Background(), ctrl.Session())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, commands.ResponseClear, got[1].Response.Kind)
}
