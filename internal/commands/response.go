// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command engine.
package commands

// ResponseKind tells the caller what to do with a command's outcome.
type ResponseKind int

const (
	ResponseNone  ResponseKind = iota // Echo the request, render no response line
	ResponseText                      // Render Text below the echoed request
	ResponseClear                     // Echo, then clear the transcript
	ResponseQuit                      // Echo, then leave the console
)

// String returns the kind's name as stored in the transcript archive.
func (k ResponseKind) String() string {
	switch k {
	case ResponseText:
		return "text"
	case ResponseClear:
		return "clear"
	case ResponseQuit:
		return "quit"
	default:
		return "none"
	}
}

// ParseResponseKind is the inverse of ResponseKind.String.
func ParseResponseKind(s string) ResponseKind {
	switch s {
	case "text":
		return ResponseText
	case "clear":
		return ResponseClear
	case "quit":
		return ResponseQuit
	default:
		return ResponseNone
	}
}

// Response is the structured outcome of executing a command.
// Text may contain markdown emphasis; sinks decide how to render it.
type Response struct {
	Kind ResponseKind
	Text string
}

// Text returns a response that renders s.
func Text(s string) Response {
	return Response{Kind: ResponseText, Text: s}
}

// NoResponse returns a response that renders nothing beyond the echo.
func NoResponse() Response {
	return Response{Kind: ResponseNone}
}

// Clear returns a response asking the sink to clear its transcript.
func Clear() Response {
	return Response{Kind: ResponseClear}
}

// Quit returns a response asking the frontend to exit.
func Quit(farewell string) Response {
	return Response{Kind: ResponseQuit, Text: farewell}
}

// HasText reports whether there is a response line to render.
func (r Response) HasText() bool {
	return r.Text != "" && r.Kind != ResponseNone
}
