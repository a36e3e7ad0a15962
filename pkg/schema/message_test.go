package schema_test

import (
	"encoding/json"
	"errors"
	"testing"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func TestConversationRoundTrip(t *testing.T) {
	assert := assert.New(t)
	conversation := schema.NewConversation()
	assert.NotEmpty(conversation.ID)

	c1 := schema.ToolCall{ID: "c1", Name: "weather", Arguments: json.RawMessage(`{"city":"Tokyo"}`)}
	c2 := schema.ToolCall{ID: "c2", Name: "datetime", Arguments: json.RawMessage(`{"action":"current"}`)}

	assert.NoError(conversation.Append(schema.NewUserTurn("Weather and time in Tokyo?")))
	assert.NoError(conversation.Append(schema.NewToolCallTurn("", c1, c2)))
	assert.Equal([]string{"c1", "c2"}, conversation.Pending())
	assert.NoError(conversation.Append(schema.NewToolResult(c1, "22°C")))
	assert.Equal([]string{"c2"}, conversation.Pending())
	assert.NoError(conversation.Append(schema.NewToolResult(c2, "12:00")))
	assert.Empty(conversation.Pending())
	assert.NoError(conversation.Append(schema.NewAssistantTurn("It is 22°C at noon.")))

	// All five turns in insertion order, with call ids paired
	assert.Equal(5, conversation.Len())
	roles := []schema.Role{schema.RoleUser, schema.RoleAssistant, schema.RoleTool, schema.RoleTool, schema.RoleAssistant}
	for i, role := range roles {
		assert.Equal(role, conversation.Turns[i].Role)
	}
	assert.Equal("c1", conversation.Turns[1].ToolCalls[0].ID)
	assert.Equal("c1", conversation.Turns[2].ToolCallID)
	assert.Equal("weather", conversation.Turns[2].Name)
	assert.Equal("c2", conversation.Turns[1].ToolCalls[1].ID)
	assert.Equal("c2", conversation.Turns[3].ToolCallID)

	// JSON round trip preserves the turns
	data, err := json.Marshal(conversation)
	assert.NoError(err)
	var other schema.Conversation
	assert.NoError(json.Unmarshal(data, &other))
	assert.Equal(5, other.Len())
	assert.Equal("c2", other.Turns[3].ToolCallID)
	assert.JSONEq(`{"city":"Tokyo"}`, string(other.Turns[1].ToolCalls[0].Arguments))
}

func TestConversationToolTurnWithoutCall(t *testing.T) {
	assert := assert.New(t)
	conversation := schema.NewConversation()

	assert.NoError(conversation.Append(schema.NewUserTurn("hello")))
	err := conversation.Append(schema.NewToolResult(schema.ToolCall{ID: "c1", Name: "weather"}, "sunny"))
	assert.ErrorIs(err, chatbot.ErrBadParameter)
	assert.Equal(1, conversation.Len())
}

func TestConversationDuplicateCallID(t *testing.T) {
	assert := assert.New(t)
	conversation := schema.NewConversation()

	call := schema.ToolCall{ID: "c1", Name: "weather"}
	err := conversation.Append(schema.NewToolCallTurn("", call, call))
	assert.ErrorIs(err, chatbot.ErrBadParameter)
	assert.Equal(0, conversation.Len())
}

func TestConversationAnswerTwice(t *testing.T) {
	assert := assert.New(t)
	conversation := schema.NewConversation()

	call := schema.ToolCall{ID: "c1", Name: "weather"}
	assert.NoError(conversation.Append(schema.NewToolCallTurn("", call)))
	assert.NoError(conversation.Append(schema.NewToolError(call, errors.New("boom"))))
	assert.Error(conversation.Append(schema.NewToolResult(call, "again")))
	assert.True(conversation.Last().IsError)
	assert.Contains(conversation.Last().Text, "boom")
}

func TestConversationPendingBlocksUserTurn(t *testing.T) {
	assert := assert.New(t)
	conversation := schema.NewConversation()

	assert.NoError(conversation.Append(schema.NewToolCallTurn("", schema.ToolCall{ID: "c1", Name: "weather"})))
	err := conversation.Append(schema.NewUserTurn("hello"))
	assert.ErrorIs(err, chatbot.ErrConflict)
}

func TestConversationTruncateReset(t *testing.T) {
	assert := assert.New(t)
	conversation := schema.NewConversation()
	id := conversation.ID

	assert.NoError(conversation.Append(schema.NewUserTurn("one")))
	assert.NoError(conversation.Append(schema.NewAssistantTurn("two")))
	assert.NoError(conversation.Append(schema.NewUserTurn("three")))

	snapshot := conversation.Copy()
	conversation.Truncate(1)
	assert.Equal(1, conversation.Len())
	assert.Equal(3, snapshot.Len())
	assert.Equal(2, snapshot.Count(schema.RoleUser))

	conversation.Reset()
	assert.Equal(0, conversation.Len())
	assert.NotEqual(id, conversation.ID)
	assert.Nil(conversation.Last())
}

func TestTranscript(t *testing.T) {
	assert := assert.New(t)
	conversation := schema.NewConversation()
	assert.NoError(conversation.Append(schema.NewUserTurn("one")))
	assert.NoError(conversation.Append(schema.NewAssistantTurn("two")))

	transcript := schema.NewTranscript(conversation, "gpt-4o-mini", "OpenAI")
	assert.Equal(1, transcript.Metadata.MessageCount)
	assert.Equal("gpt-4o-mini", transcript.Metadata.Model)

	data, err := json.Marshal(transcript)
	assert.NoError(err)
	var v map[string]any
	assert.NoError(json.Unmarshal(data, &v))
	assert.Contains(v, "metadata")
	assert.Contains(v, "conversation")
	assert.Contains(v["metadata"], "message_count")
}

func TestResultType(t *testing.T) {
	assert := assert.New(t)

	data, err := json.Marshal(schema.ResultMaxIterations)
	assert.NoError(err)
	assert.Equal(`"max_iterations"`, string(data))

	var result schema.ResultType
	assert.NoError(json.Unmarshal([]byte(`"model_unavailable"`), &result))
	assert.Equal(schema.ResultModelUnavailable, result)
	assert.Error(json.Unmarshal([]byte(`"bogus"`), &result))

	assert.False(schema.ResultToolCall.Final())
	assert.True(schema.ResultStop.Final())
	assert.Equal("unknown", schema.ResultType(99).String())
}
