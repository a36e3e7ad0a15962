package openai

import (
	"encoding/json"

	// Packages
	uuid "github.com/google/uuid"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is a chat message on the wire
type Message struct {
	Role       string     `json:"role"`                   // system, user, assistant, tool
	Content    *string    `json:"content"`                // null for assistant tool calls
	Calls      []ToolCall `json:"tool_calls,omitempty"`   // assistant tool calls
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool result correlation
	Name       string     `json:"name,omitempty"`         // tool name
}

// ToolCall is a function call requested by the model
type ToolCall struct {
	Index    *int         `json:"index,omitempty"`
	Id       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the function name and its arguments as a JSON
// encoded string
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	callPrefix = "call_"
	callType   = "function"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Messages converts a conversation to wire messages, with an optional
// system prompt first
func Messages(system string, conversation *schema.Conversation) []Message {
	result := make([]Message, 0, conversation.Len()+1)
	if system != "" {
		result = append(result, Message{Role: string(schema.RoleSystem), Content: &system})
	}
	for _, turn := range conversation.Turns {
		result = append(result, NewMessage(turn))
	}
	return result
}

// NewMessage converts a turn to a wire message
func NewMessage(turn *schema.Turn) Message {
	message := Message{Role: string(turn.Role)}
	switch turn.Role {
	case schema.RoleAssistant:
		if turn.Text != "" || len(turn.ToolCalls) == 0 {
			message.Content = &turn.Text
		}
		for _, call := range turn.ToolCalls {
			message.Calls = append(message.Calls, ToolCall{
				Id:   call.ID,
				Type: callType,
				Function: FunctionCall{
					Name:      call.Name,
					Arguments: arguments(call.Arguments),
				},
			})
		}
	case schema.RoleTool:
		message.Content = &turn.Text
		message.ToolCallID = turn.ToolCallID
		message.Name = turn.Name
	default:
		message.Content = &turn.Text
	}
	return message
}

// Text returns the text content of the message
func (m Message) Text() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}

// ToolCalls returns the tool calls of the message. A call without an
// identifier is assigned one. Arguments which are not valid JSON are kept
// as a JSON string, so they can be reported as malformed.
func (m Message) ToolCalls() []schema.ToolCall {
	if len(m.Calls) == 0 {
		return nil
	}
	result := make([]schema.ToolCall, 0, len(m.Calls))
	for _, call := range m.Calls {
		id := call.Id
		if id == "" {
			id = callPrefix + uuid.NewString()
		}
		var args json.RawMessage
		switch {
		case call.Function.Arguments == "":
			args = nil
		case json.Valid([]byte(call.Function.Arguments)):
			args = json.RawMessage(call.Function.Arguments)
		default:
			args, _ = json.Marshal(call.Function.Arguments)
		}
		result = append(result, schema.ToolCall{
			ID:        id,
			Name:      call.Function.Name,
			Arguments: args,
		})
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// arguments returns the wire form of tool call arguments. A JSON string is
// unquoted, anything else is sent as is.
func arguments(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var str string
	if raw[0] == '"' && json.Unmarshal(raw, &str) == nil {
		return str
	}
	return string(raw)
}
