// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/mattparishdev/TextAdventure/internal/commands"
	"github.com/mattparishdev/TextAdventure/internal/config"
	"github.com/mattparishdev/TextAdventure/internal/console"
	"github.com/mattparishdev/TextAdventure/internal/ui/markdown"
	"github.com/mattparishdev/TextAdventure/internal/ui/styles"
)

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader reads one line of console input. io.EOF ends the session.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// linerReader provides history and line editing on a terminal.
// USABILITY: arrow keys walk the history, tab completes command names and flags.
type linerReader struct {
	line        *liner.State
	historyFile string
}

func newLinerReader(completer *commands.Completer) *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer.Complete)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	r := &linerReader{
		line:        line,
		historyFile: filepath.Join(configDir, "repl_history"),
	}
	if f, err := os.Open(r.historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	return r
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history with owner-only permissions and restores the terminal.
func (r *linerReader) Close() error {
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0700); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	return r.line.Close()
}

// scanReader reads piped input. The prompt is not echoed.
type scanReader struct {
	scanner *bufio.Scanner
}

func newScanReader(in io.Reader) *scanReader {
	return &scanReader{scanner: bufio.NewScanner(in)}
}

func (r *scanReader) ReadLine(string) (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scanReader) Close() error { return nil }

// =============================================================================
// OUTPUT
// =============================================================================

// printer is the REPL's screen: it writes each response as it arrives.
type printer struct {
	out      io.Writer
	renderer *markdown.Renderer
}

func newPrinter(out io.Writer, theme string, renderMarkdown bool) *printer {
	enabled := renderMarkdown && colorsEnabledFor(out)
	style := "notty"
	if enabled {
		style = styles.NewTheme(theme).GlamourStyle()
	}
	return &printer{
		out:      out,
		renderer: markdown.New(style, GetTerminalWidth(), enabled),
	}
}

func (p *printer) sink() console.Sink {
	return console.SinkFunc{
		OnAppend: func(e console.Entry) error {
			if e.Response.HasText() {
				_, err := fmt.Fprintln(p.out, p.renderer.Render(e.Response.Text))
				return err
			}
			return nil
		},
		OnClear: func() error {
			clearScreen(p.out)
			return nil
		},
	}
}

// =============================================================================
// REPL
// =============================================================================

func newREPLCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Run the console on the plain terminal",
		Long: `Run the console line by line without the full-screen interface.

Input may be piped: each line is submitted as one request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			a.tryOpenArchive()

			in := cmd.InOrStdin()
			var reader lineReader
			if f, ok := in.(*os.File); ok && f == os.Stdin && IsTTY() {
				reader = newLinerReader(commands.NewCompleter(a.registry))
			} else {
				reader = newScanReader(in)
			}
			defer reader.Close()

			return runREPL(a, reader, cmd.OutOrStdout())
		},
	}
}

// runREPL submits lines until a command quits or input ends.
func runREPL(a *app, reader lineReader, out io.Writer) error {
	p := newPrinter(out, a.cfg.UI.Theme, a.cfg.UI.RenderMarkdown)
	ctrl := a.controller(p.sink())

	if a.cfg.Console.Greeting != "" {
		fmt.Fprintln(out, p.renderer.Render(a.cfg.Console.Greeting))
	}

	for {
		line, err := reader.ReadLine(a.cfg.Console.Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return &CommandError{Command: "repl", Action: "read input", Err: err}
		}

		entry, ok := ctrl.Submit(line)
		if ok && entry.Response.Kind == commands.ResponseQuit {
			return nil
		}
	}
}
