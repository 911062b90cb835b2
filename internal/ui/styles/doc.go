// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the console.
//
// All colors use Lip Gloss AdaptiveColor so they read on both light and dark
// terminals. A Theme groups the styles the TUI and REPL render with.
//
// # Usage
//
//	theme := styles.NewTheme(cfg.UI.Theme)
//	fmt.Println(theme.Prompt.Render("> ") + theme.Request.Render("help"))
//	fmt.Println(styles.RenderError("archive unavailable"))
package styles
