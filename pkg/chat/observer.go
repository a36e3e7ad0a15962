package chat

import (
	// Packages
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Observer is notified as a session dispatches tool calls. Notifications
// are delivered in request order from the goroutine running Chat, even when
// calls run in parallel.
type Observer interface {
	// A tool call is about to be dispatched
	OnToolCall(call schema.ToolCall)

	// A tool call has completed, successfully or not
	OnToolResult(call schema.ToolCall, result *schema.Turn)
}

// ObserverFuncs adapts a pair of functions to the Observer interface.
// Either function may be nil.
type ObserverFuncs struct {
	ToolCall   func(call schema.ToolCall)
	ToolResult func(call schema.ToolCall, result *schema.Turn)
}

var _ Observer = ObserverFuncs{}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (o ObserverFuncs) OnToolCall(call schema.ToolCall) {
	if o.ToolCall != nil {
		o.ToolCall(call)
	}
}

func (o ObserverFuncs) OnToolResult(call schema.ToolCall, result *schema.Turn) {
	if o.ToolResult != nil {
		o.ToolResult(call, result)
	}
}
