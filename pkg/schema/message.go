package schema

import (
	"encoding/json"
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Role of the author of a turn
type Role string

// Turn is one entry in a conversation: a user message, an assistant message
// (text or a batch of tool calls) or the result of one tool call.
type Turn struct {
	Role       Role       `json:"role"`                   // "user", "assistant", "tool"
	Text       string     `json:"text,omitempty"`         // Text content or tool result
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // Batch of tool calls (assistant)
	ToolCallID string     `json:"tool_call_id,omitempty"` // Correlates a tool result with its call
	Name       string     `json:"name,omitempty"`         // Tool name (tool)
	IsError    bool       `json:"is_error,omitempty"`     // Tool result is an error
	Tokens     uint       `json:"tokens,omitempty"`       // Number of tokens
	Created    time.Time  `json:"created,omitzero"`
}

// ToolCall is a tool invocation requested by the model
type ToolCall struct {
	ID        string          `json:"id"`                  // Provider-assigned call ID
	Name      string          `json:"name"`                // Tool function name
	Arguments json.RawMessage `json:"arguments,omitempty"` // Arguments as sent by the model
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
	RoleSystem    Role = "system"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewUserTurn returns a user message
func NewUserTurn(text string) *Turn {
	return &Turn{Role: RoleUser, Text: text, Created: time.Now()}
}

// NewAssistantTurn returns an assistant text message
func NewAssistantTurn(text string) *Turn {
	return &Turn{Role: RoleAssistant, Text: text, Created: time.Now()}
}

// NewToolCallTurn returns an assistant turn carrying a batch of tool calls,
// with optional accompanying text
func NewToolCallTurn(text string, calls ...ToolCall) *Turn {
	return &Turn{Role: RoleAssistant, Text: text, ToolCalls: calls, Created: time.Now()}
}

// NewToolResult returns the successful result of a tool call
func NewToolResult(call ToolCall, result string) *Turn {
	return &Turn{
		Role:       RoleTool,
		Text:       result,
		ToolCallID: call.ID,
		Name:       call.Name,
		Created:    time.Now(),
	}
}

// NewToolError returns a tool result which reports a failed tool call
func NewToolError(call ToolCall, err error) *Turn {
	return &Turn{
		Role:       RoleTool,
		Text:       "Error: " + err.Error(),
		ToolCallID: call.ID,
		Name:       call.Name,
		IsError:    true,
		Created:    time.Now(),
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Valid returns true for the roles which may appear in a conversation
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleTool:
		return true
	}
	return false
}

// HasToolCalls returns true if the turn is an assistant batch of tool calls
func (t *Turn) HasToolCalls() bool {
	return t.Role == RoleAssistant && len(t.ToolCalls) > 0
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Turn) String() string {
	return types.Stringify(t)
}

func (c ToolCall) String() string {
	return types.Stringify(c)
}
