// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mattparishdev/TextAdventure/internal/console"
	"github.com/mattparishdev/TextAdventure/internal/storage"
	"github.com/mattparishdev/TextAdventure/internal/ui/markdown"
)

// transcriptOptions are the flags of the transcript command.
type transcriptOptions struct {
	limit    int
	session  string
	sessions bool
	jsonOut  bool
}

// transcriptEntry is the --json form of an archived entry.
type transcriptEntry struct {
	ID       string    `json:"id"`
	Session  string    `json:"session"`
	Request  string    `json:"request"`
	Kind     string    `json:"kind"`
	Response string    `json:"response,omitempty"`
	At       time.Time `json:"at"`
}

func newTranscriptCommand(opts *globalOptions) *cobra.Command {
	topts := &transcriptOptions{}
	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Show archived console transcripts",
		Long: `Show entries from the transcript archive.

Entries are kept even after cls clears the screen.`,
		Example: `  textadventure transcript --limit 20
  textadventure transcript --sessions
  textadventure transcript --session 4f0c... --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if topts.jsonOut {
				return runJSON(out, "transcript", func() (any, error) {
					return queryTranscript(cmd.Context(), opts, topts)
				})
			}
			data, err := queryTranscript(cmd.Context(), opts, topts)
			if err != nil {
				return err
			}
			switch v := data.(type) {
			case []storage.SessionSummary:
				fmt.Fprint(out, storage.FormatSessionList(v))
			case []transcriptEntry:
				writeTranscript(out, v)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&topts.limit, "limit", "n", 50, "number of recent entries to show (0 = all)")
	f.StringVar(&topts.session, "session", "", "show every entry of one session")
	f.BoolVar(&topts.sessions, "sessions", false, "list archived sessions")
	f.BoolVar(&topts.jsonOut, "json", false, "output as JSON")
	cmd.MarkFlagsMutuallyExclusive("session", "sessions")
	return cmd
}

// queryTranscript returns []storage.SessionSummary or []transcriptEntry.
func queryTranscript(ctx context.Context, opts *globalOptions, topts *transcriptOptions) (any, error) {
	if topts.limit < 0 {
		return nil, &UsageError{Message: "--limit must not be negative"}
	}
	var id uuid.UUID
	if topts.session != "" {
		parsed, err := uuid.Parse(topts.session)
		if err != nil {
			return nil, &UsageError{Message: fmt.Sprintf("invalid --session %q: %v", topts.session, err)}
		}
		id = parsed
	}

	a, err := newApp(opts)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	if !a.cfg.Storage.ArchiveEnabled {
		return nil, &UsageError{Message: "the transcript archive is disabled (storage.archive_enabled)"}
	}
	if err := a.openArchive(); err != nil {
		return nil, &CommandError{Command: "transcript", Action: "open archive", Err: err}
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if topts.sessions {
		summaries, err := a.archive.Sessions(ctx)
		if err != nil {
			return nil, &CommandError{Command: "transcript", Action: "list sessions", Err: err}
		}
		return summaries, nil
	}

	var entries []console.Entry
	if topts.session != "" {
		entries, err = a.archive.Session(ctx, id)
		if err != nil {
			if storage.IsNotFound(err) {
				return nil, err
			}
			return nil, &CommandError{Command: "transcript", Action: "read session", Err: err}
		}
	} else {
		entries, err = a.archive.Recent(ctx, topts.limit)
		if err != nil {
			return nil, &CommandError{Command: "transcript", Action: "read entries", Err: err}
		}
	}

	out := make([]transcriptEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, transcriptEntry{
			ID:       e.ID.String(),
			Session:  e.Session.String(),
			Request:  e.Request,
			Kind:     e.Response.Kind.String(),
			Response: e.Response.Text,
			At:       e.At,
		})
	}
	return out, nil
}

func writeTranscript(w io.Writer, entries []transcriptEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "[%s] > %s\n", e.At.Local().Format("2006-01-02 15:04:05"), e.Request)
		if e.Response != "" {
			fmt.Fprintln(w, markdown.Plain(e.Response))
		}
	}
}
