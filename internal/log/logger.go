// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package log provides the leveled logger used across the console.
//
// The interactive frontends own the terminal, so the application normally
// logs to a rotating file (lumberjack) and only writes to a terminal stream
// for non-interactive commands. A nil *Logger discards everything.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a Logger.
type Options struct {
	// Name prefixes every line (sub-loggers append "/<name>")
	Name string

	// Level is the minimum level written
	Level Level

	// File, when set, receives output through a rotating writer
	File string

	// Terminal, when set, also receives output. Colors follow the stream's
	// profile and NO_COLOR; NoColor turns them off.
	Terminal io.Writer
	NoColor  bool

	// JSON writes one JSON object per line instead of text
	JSON bool

	// Rotation limits for File
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger writes leveled messages to a file and/or a terminal stream.
type Logger struct {
	out *output

	name       string
	level      Level
	json       bool
	timeFormat string
}

// output is shared between a logger and its named children.
type output struct {
	mu       sync.Mutex
	file     io.WriteCloser
	terminal *termenv.Output
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

// New creates a logger. With neither File nor Terminal set, output is
// discarded.
func New(opts Options) *Logger {
	out := &output{}
	if opts.Terminal != nil {
		if opts.NoColor {
			out.terminal = termenv.NewOutput(opts.Terminal, termenv.WithProfile(termenv.Ascii))
		} else {
			out.terminal = termenv.NewOutput(opts.Terminal)
		}
	}

	if opts.File != "" {
		out.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    withDefault(opts.MaxSizeMB, 16),
			MaxBackups: withDefault(opts.MaxBackups, 3),
			MaxAge:     withDefault(opts.MaxAgeDays, 28),
		}
	}

	return &Logger{
		out:        out,
		name:       opts.Name,
		level:      opts.Level,
		json:       opts.JSON,
		timeFormat: "2006-01-02 15:04:05",
	}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(Options{Level: Error + 1})
}

func withDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Named returns a child logger sharing this logger's output.
func (l *Logger) Named(name string) *Logger {
	if l == nil {
		return nil
	}
	child := *l
	if l.name != "" {
		child.name = l.name + "/" + name
	} else {
		child.name = name
	}
	return &child
}

// Level returns the minimum level written.
func (l *Logger) Level() Level {
	if l == nil {
		return Error + 1
	}
	return l.level
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && level >= l.level
}

func (l *Logger) Debug(msg string, args ...any) { l.log(Debug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(Info, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(Warn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(Error, msg, args...) }

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.out.file == nil {
		return nil
	}
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	return l.out.file.Close()
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if !l.Enabled(level) {
		return
	}

	timestamp := time.Now().Format(l.timeFormat)
	formatted := fmt.Sprintf(msg, args...)

	var line string
	if l.json {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Service:   l.name,
			Message:   formatted,
		}
		b, _ := json.Marshal(entry)
		line = string(b)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if l.name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, l.name)
		}
		line = prefix + " " + formatted
	}

	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	if l.out.file != nil {
		fmt.Fprintln(l.out.file, line)
	}
	if term := l.out.terminal; term != nil {
		if !l.json {
			line = term.String(line).Foreground(term.Color(color(level))).String()
		}
		fmt.Fprintln(term, line)
	}
}
