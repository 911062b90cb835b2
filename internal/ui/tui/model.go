// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattparishdev/TextAdventure/internal/commands"
	"github.com/mattparishdev/TextAdventure/internal/config"
	"github.com/mattparishdev/TextAdventure/internal/console"
	"github.com/mattparishdev/TextAdventure/internal/ui/markdown"
	"github.com/mattparishdev/TextAdventure/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ConfigReloadedMsg is sent when the config file changes on disk.
// Err is set when the new file could not be loaded; the old settings stay.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures a Model.
type Options struct {
	// Controller runs submitted lines (required)
	Controller *console.Controller

	// Screen is the transcript the view renders. It must be (or be part of)
	// the controller's sink.
	Screen *console.Transcript

	// Theme (dark if nil)
	Theme *styles.Theme

	// Prompt shown before the input line
	Prompt string

	// Greeting shown above the transcript until the first clear
	Greeting string

	// RenderMarkdown renders emphasis in responses
	RenderMarkdown bool
}

// Model is the Bubble Tea model for the console.
type Model struct {
	ctrl      *console.Controller
	completer *commands.Completer
	screen    *console.Transcript

	// Styling
	theme          *styles.Theme
	renderMarkdown bool
	renderer       *markdown.Renderer
	keys           KeyMap

	// Components
	input    textinput.Model
	viewport viewport.Model
	history  history

	// Transient lines under the transcript
	greeting   string
	notice     string
	candidates []string

	// Dimensions
	width  int
	height int

	quitting bool
}

// New creates a console model.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("dark")
	}
	screen := opts.Screen
	if screen == nil {
		screen = console.NewTranscript()
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = "> "
	}

	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "Type a command..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	m := Model{
		ctrl:           opts.Controller,
		completer:      commands.NewCompleter(opts.Controller.Registry()),
		screen:         screen,
		theme:          theme,
		renderMarkdown: opts.RenderMarkdown,
		keys:           DefaultKeyMap(),
		input:          ti,
		viewport:       vp,
		greeting:       opts.Greeting,
		width:          80,
		height:         24,
	}
	m.applyTheme()
	m.layout()
	m.refresh()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Quitting reports whether a quit command ended the session.
func (m Model) Quitting() bool {
	return m.quitting
}

// Screen returns the transcript the model renders.
func (m Model) Screen() *console.Transcript {
	return m.screen
}

// applyTheme restyles the input and rebuilds the markdown renderer.
func (m *Model) applyTheme() {
	m.input.PromptStyle = m.theme.Prompt
	m.input.TextStyle = m.theme.InputText
	m.input.PlaceholderStyle = m.theme.Placeholder
	m.renderer = markdown.New(m.theme.GlamourStyle(), m.width-4, m.renderMarkdown)
}

// applyConfig adopts reloaded settings.
func (m *Model) applyConfig(cfg *config.Config) {
	m.input.Prompt = cfg.Console.Prompt
	m.renderMarkdown = cfg.UI.RenderMarkdown
	m.theme = styles.NewTheme(cfg.UI.Theme)
	m.theme.SetSize(m.width, m.height)
	m.ctrl.Reconfigure(commands.TokenizerByName(cfg.Console.Tokenizer), cfg.Console.StrictFlags)
	m.applyTheme()
}
