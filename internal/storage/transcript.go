// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/mattparishdev/TextAdventure/internal/commands"
	"github.com/mattparishdev/TextAdventure/internal/console"
	"github.com/mattparishdev/TextAdventure/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrSessionNotFound is returned when a session has no archived entries.
// Use errors.Is(err, ErrSessionNotFound) to check for this error.
var ErrSessionNotFound = &StoreError{Message: "session not found"}

// StoreError represents an archive lookup error.
type StoreError struct {
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing store errors.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	session    TEXT NOT NULL,
	request    TEXT NOT NULL,
	kind       TEXT NOT NULL,
	response   TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_session ON entries(session, seq);
`

// appendTimeout bounds Append, which has no caller context.
const appendTimeout = 5 * time.Second

// =============================================================================
// TRANSCRIPT STORE
// =============================================================================

// TranscriptStore is a console.Sink that archives entries in SQLite.
type TranscriptStore struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenTranscriptStore opens (creating if needed) the archive at path.
// Use ":memory:" for a throwaway archive.
func OpenTranscriptStore(path string) (*TranscriptStore, error) {
	if path != ":memory:" {
		if err := util.EnsureParentDir(path, 0700); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript archive: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &TranscriptStore{db: db}, nil
}

// Append implements console.Sink.
func (s *TranscriptStore) Append(entry console.Entry) error {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()
	return s.Insert(ctx, entry)
}

// Clear implements console.Sink. The archive keeps cleared entries.
func (s *TranscriptStore) Clear() error {
	return nil
}

// Insert stores one entry.
func (s *TranscriptStore) Insert(ctx context.Context, entry console.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.At.IsZero() {
		entry.At = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, session, request, kind, response, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID.String(),
		entry.Session.String(),
		entry.Request,
		entry.Response.Kind.String(),
		entry.Response.Text,
		entry.At.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to archive entry: %w", err)
	}
	return nil
}

// Recent returns up to limit of the newest entries across all sessions,
// oldest first. A limit <= 0 returns everything.
func (s *TranscriptStore) Recent(ctx context.Context, limit int) ([]console.Entry, error) {
	query := `SELECT id, session, request, kind, response, created_at FROM
		(SELECT * FROM entries ORDER BY seq DESC LIMIT ?) ORDER BY seq ASC`
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	return s.query(ctx, query, limit)
}

// Session returns every entry of one session, oldest first.
func (s *TranscriptStore) Session(ctx context.Context, id uuid.UUID) ([]console.Entry, error) {
	entries, err := s.query(ctx,
		`SELECT id, session, request, kind, response, created_at FROM entries WHERE session = ? ORDER BY seq ASC`,
		id.String())
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrSessionNotFound
	}
	return entries, nil
}

// SessionSummary is lightweight session metadata for listing.
type SessionSummary struct {
	ID        uuid.UUID
	StartedAt time.Time
	Entries   int
	Preview   string // first request of the session
}

// Sessions lists archived sessions, most recent first.
func (s *TranscriptStore) Sessions(ctx context.Context) ([]SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.session, MIN(e.created_at), COUNT(*),
			(SELECT f.request FROM entries f WHERE f.session = e.session ORDER BY f.seq LIMIT 1)
		FROM entries e
		GROUP BY e.session
		ORDER BY MAX(e.seq) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var (
			id      string
			started int64
			sum     SessionSummary
		)
		if err := rows.Scan(&id, &started, &sum.Entries, &sum.Preview); err != nil {
			return nil, fmt.Errorf("failed to read session: %w", err)
		}
		sum.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("corrupt session id %q: %w", id, err)
		}
		sum.StartedAt = time.Unix(0, started)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *TranscriptStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func (s *TranscriptStore) query(ctx context.Context, query string, args ...any) ([]console.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer rows.Close()

	var entries []console.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (console.Entry, error) {
	var (
		id, session, request, kind, text string
		at                               int64
	)
	if err := rows.Scan(&id, &session, &request, &kind, &text, &at); err != nil {
		return console.Entry{}, fmt.Errorf("failed to read entry: %w", err)
	}

	entryID, err := uuid.Parse(id)
	if err != nil {
		return console.Entry{}, fmt.Errorf("corrupt entry id %q: %w", id, err)
	}
	sessionID, err := uuid.Parse(session)
	if err != nil {
		return console.Entry{}, fmt.Errorf("corrupt session id %q: %w", session, err)
	}

	return console.Entry{
		ID:       entryID,
		Session:  sessionID,
		Request:  request,
		Response: commands.Response{Kind: commands.ParseResponseKind(kind), Text: text},
		At:       time.Unix(0, at),
	}, nil
}

// =============================================================================
// FORMATTING
// =============================================================================

// FormatSessionList formats sessions as a table.
func FormatSessionList(sessions []SessionSummary) string {
	if len(sessions) == 0 {
		return "No sessions found.\n"
	}

	var sb strings.Builder
	sb.WriteString("Sessions:\n")
	sb.WriteString(strings.Repeat("-", 96) + "\n")
	sb.WriteString(util.PadRight("ID", 36) + " " + util.PadRight("Started", 17) + " " + util.PadRight("Entries", 8) + " First request\n")
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	for _, s := range sessions {
		sb.WriteString(util.PadRight(s.ID.String(), 36) + " " +
			util.PadRight(s.StartedAt.Format("2006-01-02 15:04"), 17) + " " +
			util.PadRight(fmt.Sprint(s.Entries), 8) + " " +
			util.TruncateWidth(s.Preview, 30) + "\n")
	}
	return sb.String()
}

// IsNotFound reports whether err means the requested data is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}
