// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the console frontends.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth, StringWidth, PadRight: display-width aware layout
//   - FirstLine: first line of a multi-line response
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//   - EnsureParentDir: create the directory for a database or log file
//
// # Usage
//
//	// Align a column of command names
//	fmt.Fprintf(w, "%s  %s\n", util.PadRight(name, width), help)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0600)
package util
