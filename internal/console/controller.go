// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/mattparishdev/TextAdventure/internal/commands"
	"github.com/mattparishdev/TextAdventure/internal/log"
)

// UnavailableMessage is the response to a name that resolves to no command.
const UnavailableMessage = "The requested command is unavailable. Consider using **help**"

// Options configures a Controller. The zero value is usable.
type Options struct {
	// Tokenizer splits argument tails (FlagTokenizer if nil)
	Tokenizer commands.Tokenizer

	// StrictFlags rejects flags a command does not declare
	StrictFlags bool

	// Sink receives every submitted entry (may be nil)
	Sink Sink

	// Session groups the entries of one run (random if zero)
	Session uuid.UUID

	// Log receives one debug line per invocation (may be nil)
	Log *log.Logger

	// Rand seeds handlers that need randomness (random if nil)
	Rand *rand.Rand

	// Now stamps entries (time.Now if nil)
	Now func() time.Time
}

// Controller turns raw input lines into responses and transcript entries.
// It is not safe for concurrent use; frontends drive it from one goroutine.
type Controller struct {
	registry *commands.Registry
	ctx      *commands.Context
	sink     Sink
	session  uuid.UUID
	log      *log.Logger
	now      func() time.Time
}

// NewController creates a controller over registry.
func NewController(registry *commands.Registry, opts Options) *Controller {
	ctx := commands.NewContext(registry)
	if opts.Tokenizer != nil {
		ctx.Tokenizer = opts.Tokenizer
	}
	if opts.Rand != nil {
		ctx.Rand = opts.Rand
	}
	ctx.StrictFlags = opts.StrictFlags
	ctx.Log = opts.Log.Named("commands")

	session := opts.Session
	if session == uuid.Nil {
		session = uuid.New()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Controller{
		registry: registry,
		ctx:      ctx,
		sink:     opts.Sink,
		session:  session,
		log:      opts.Log,
		now:      now,
	}
}

// Registry returns the registry commands are resolved from.
func (c *Controller) Registry() *commands.Registry {
	return c.registry
}

// Session returns the ID stamped on every entry.
func (c *Controller) Session() uuid.UUID {
	return c.session
}

// SetSink replaces the sink. A nil sink discards entries.
func (c *Controller) SetSink(s Sink) {
	c.sink = s
}

// Reconfigure changes argument handling for subsequent lines.
func (c *Controller) Reconfigure(tokenizer commands.Tokenizer, strict bool) {
	if tokenizer != nil {
		c.ctx.Tokenizer = tokenizer
	}
	c.ctx.StrictFlags = strict
}

// Process runs one input line. It returns false when the line is blank and
// there is nothing to show.
func (c *Controller) Process(line string) (commands.Response, bool) {
	return c.process(normalize(line))
}

// process runs a line that is already normalized.
func (c *Controller) process(line string) (commands.Response, bool) {
	req, ok := commands.ParseRequest(line)
	if !ok {
		return commands.Response{}, false
	}

	cmd, found := c.registry.Resolve(req.Name)
	if !found {
		c.log.Debug("unavailable command %q", req.Name)
		return commands.Text(UnavailableMessage), true
	}

	start := time.Now()
	resp := cmd.Execute(c.ctx, req.Tail)
	c.log.Debug("ran %s (%s) in %s", cmd.Name, resp.Kind, time.Since(start))
	return resp, true
}

// Submit runs one input line and forwards the result to the sink: the entry
// is always appended, then the sink is cleared for a Clear response.
func (c *Controller) Submit(line string) (Entry, bool) {
	request := normalize(line)
	resp, ok := c.process(request)
	if !ok {
		return Entry{}, false
	}

	entry := Entry{
		ID:       uuid.New(),
		Session:  c.session,
		Request:  request,
		Response: resp,
		At:       c.now(),
	}

	if c.sink == nil {
		return entry, true
	}
	if err := c.sink.Append(entry); err != nil {
		c.log.Warn("failed to append transcript entry: %v", err)
	}
	if resp.Kind == commands.ResponseClear {
		if err := c.sink.Clear(); err != nil {
			c.log.Warn("failed to clear transcript: %v", err)
		}
	}
	return entry, true
}

// normalize composes the line to NFC so that equivalent spellings of a name
// resolve identically, then trims it.
func normalize(line string) string {
	return strings.TrimSpace(norm.NFC.String(line))
}
