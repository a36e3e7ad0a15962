package schema

import (
	"slices"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	chatbot "github.com/mutablelogic/go-chatbot"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Conversation is an append-only log of turns. A tool turn must answer a
// call of the most recent assistant batch which has not been answered yet,
// and no other turn may be appended while calls remain unanswered.
type Conversation struct {
	ID       string    `json:"id"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
	Turns    []*Turn   `json:"turns"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewConversation returns an empty conversation with a new identifier
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:       uuid.New().String(),
		Created:  now,
		Modified: now,
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append adds a turn to the end of the conversation
func (c *Conversation) Append(turn *Turn) error {
	if turn == nil {
		return chatbot.ErrBadParameter.With("nil turn")
	}
	if !turn.Role.Valid() {
		return chatbot.ErrBadParameter.Withf("invalid role: %q", turn.Role)
	}
	pending := c.Pending()
	switch turn.Role {
	case RoleTool:
		if turn.ToolCallID == "" {
			return chatbot.ErrBadParameter.With("tool turn without tool_call_id")
		}
		if !slices.Contains(pending, turn.ToolCallID) {
			return chatbot.ErrBadParameter.Withf("tool turn %q does not answer a pending tool call", turn.ToolCallID)
		}
	default:
		if len(pending) > 0 {
			return chatbot.ErrConflict.Withf("%d tool call(s) not answered", len(pending))
		}
		if turn.Role == RoleUser && len(turn.ToolCalls) > 0 {
			return chatbot.ErrBadParameter.With("user turn with tool calls")
		}
		seen := make(map[string]struct{}, len(turn.ToolCalls))
		for _, call := range turn.ToolCalls {
			if call.ID == "" {
				return chatbot.ErrBadParameter.Withf("tool call %q without id", call.Name)
			}
			if _, exists := seen[call.ID]; exists {
				return chatbot.ErrBadParameter.Withf("duplicate tool call id %q", call.ID)
			}
			seen[call.ID] = struct{}{}
		}
	}
	if turn.Created.IsZero() {
		turn.Created = time.Now()
	}
	c.Turns = append(c.Turns, turn)
	c.Modified = turn.Created
	return nil
}

// Pending returns the call identifiers of the most recent assistant batch
// which have not yet been answered by a tool turn
func (c *Conversation) Pending() []string {
	answered := make(map[string]struct{})
	for i := len(c.Turns) - 1; i >= 0; i-- {
		turn := c.Turns[i]
		if turn.Role == RoleTool {
			answered[turn.ToolCallID] = struct{}{}
			continue
		}
		if !turn.HasToolCalls() {
			return nil
		}
		var result []string
		for _, call := range turn.ToolCalls {
			if _, ok := answered[call.ID]; !ok {
				result = append(result, call.ID)
			}
		}
		return result
	}
	return nil
}

// Len returns the number of turns
func (c *Conversation) Len() int {
	return len(c.Turns)
}

// Last returns the most recent turn, or nil
func (c *Conversation) Last() *Turn {
	if len(c.Turns) == 0 {
		return nil
	}
	return c.Turns[len(c.Turns)-1]
}

// Tokens returns the total number of tokens recorded on turns
func (c *Conversation) Tokens() uint {
	var total uint
	for _, turn := range c.Turns {
		total += turn.Tokens
	}
	return total
}

// Count returns the number of turns with the given role
func (c *Conversation) Count(role Role) int {
	var n int
	for _, turn := range c.Turns {
		if turn.Role == role {
			n++
		}
	}
	return n
}

// Truncate discards every turn after the first n. It is used to roll back an
// exchange which could not be completed.
func (c *Conversation) Truncate(n int) {
	if n < 0 || n >= len(c.Turns) {
		return
	}
	clear(c.Turns[n:])
	c.Turns = c.Turns[:n]
	c.Modified = time.Now()
}

// Reset removes all turns and assigns a new identifier
func (c *Conversation) Reset() {
	now := time.Now()
	c.ID = uuid.New().String()
	c.Turns = nil
	c.Created = now
	c.Modified = now
}

// Copy returns a shallow copy of the conversation. The turns are shared but
// the slice is not, so appends to either do not affect the other.
func (c *Conversation) Copy() *Conversation {
	result := *c
	result.Turns = slices.Clone(c.Turns)
	return &result
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c Conversation) String() string {
	return types.Stringify(c)
}
