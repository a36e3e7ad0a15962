// Package ui defines the interface between the chat loop and a user
// interface.
//
// A [ChatUI] is an event source: the caller loops over [ChatUI.Receive] and
// answers each [Event] through its [Context]. Messages are either text for
// the model or one of the reserved commands handled by package command.
package ui

import (
	"context"
)

///////////////////////////////////////////////////////////////////////////////
// INTERFACES

// ChatUI is implemented by every chat frontend
type ChatUI interface {
	// Receive blocks until the next event is available or the context is
	// cancelled. It returns io.EOF when the input is closed.
	Receive(ctx context.Context) (Event, error)

	// Close releases resources held by the interface
	Close() error
}

// Context is where responses to an event are sent
type Context interface {
	// SendText sends plain text, such as tables and notices
	SendText(ctx context.Context, text string) error

	// SendMarkdown sends markdown which is rendered when the output
	// supports it
	SendMarkdown(ctx context.Context, markdown string) error

	// SendError reports a failure to the user
	SendError(ctx context.Context, err error) error

	// SetTyping shows or hides an indicator while the model is working
	SetTyping(ctx context.Context, typing bool) error
}

///////////////////////////////////////////////////////////////////////////////
// EVENT TYPES

// EventType identifies the kind of incoming event
type EventType int

const (
	EventText    EventType = iota // User sent a message for the model
	EventCommand                  // User sent a reserved command (e.g. tools, stats)
)

func (t EventType) String() string {
	switch t {
	case EventText:
		return "text"
	case EventCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Event is one line of user input
type Event struct {
	// Type identifies what kind of event this is
	Type EventType

	// Context provides the response methods
	Context Context

	// Text contains the whole input line
	Text string

	// Command is the lowercased command name (EventCommand only)
	Command string

	// Args are the words following the command (EventCommand only)
	Args []string
}
