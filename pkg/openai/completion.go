package openai

import (
	"context"
	"fmt"

	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
	opt "github.com/mutablelogic/go-chatbot/pkg/opt"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Completion Response
type Response struct {
	Id                string         `json:"id"`
	Type              string         `json:"object"`
	Created           uint64         `json:"created"`
	Model             string         `json:"model"`
	SystemFingerprint string         `json:"system_fingerprint,omitempty"`
	Completions       []Completion   `json:"choices"`
	Metrics           `json:"usage,omitempty"`
	Error             *ResponseError `json:"error,omitempty"`
}

// Completion Variation
type Completion struct {
	Index   uint64   `json:"index"`
	Message *Message `json:"message"`
	Reason  string   `json:"finish_reason,omitempty"`
}

// Metrics
type Metrics struct {
	PromptTokens     uint64 `json:"prompt_tokens,omitempty"`
	CompletionTokens uint64 `json:"completion_tokens,omitempty"`
	TotalTokens      uint64 `json:"total_tokens,omitempty"`
}

// ResponseError is an error reported in the body of a response
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Code    any    `json:"code,omitempty"`
}

type reqCompletion struct {
	Model       string                  `json:"model"`
	Messages    []Message               `json:"messages"`
	Tools       []schema.ToolDefinition `json:"tools,omitempty"`
	ToolChoice  any                     `json:"tool_choice,omitempty"`
	Temperature *float64                `json:"temperature,omitempty"`
	MaxTokens   uint                    `json:"max_tokens,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Response) String() string {
	return types.Stringify(r)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate sends the conversation and the tool definitions to the model
// and returns the assistant turn, which carries either text or a batch of
// tool calls
func (c *Client) Generate(ctx context.Context, conversation *schema.Conversation, tools []schema.ToolDefinition, opts ...opt.Opt) (*schema.Turn, schema.ResultType, error) {
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, schema.ResultError, err
	}

	// Model is required
	model := o.GetString(opt.ModelKey)
	if model == "" {
		return nil, schema.ResultError, chatbot.ErrBadParameter.With("model is required")
	}

	// Tool choice only applies when there are tools
	var choice any
	if len(tools) > 0 {
		choice = toolChoice(o.GetString(opt.ToolChoiceKey))
	}

	// Temperature may be zero
	var temperature *float64
	if o.Has(opt.TemperatureKey) {
		temperature = types.Ptr(o.GetFloat64(opt.TemperatureKey))
	}

	// Request
	req, err := client.NewJSONRequest(reqCompletion{
		Model:       model,
		Messages:    Messages(o.GetString(opt.SystemPromptKey), conversation),
		Tools:       tools,
		ToolChoice:  choice,
		Temperature: temperature,
		MaxTokens:   o.GetUint(opt.MaxTokensKey),
	})
	if err != nil {
		return nil, schema.ResultError, err
	}

	// Response
	var response Response
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("chat", "completions")); err != nil {
		return nil, schema.ResultError, err
	}

	return response.Turn()
}

// Turn returns the first completion as an assistant turn
func (r *Response) Turn() (*schema.Turn, schema.ResultType, error) {
	if r.Error != nil {
		return nil, schema.ResultError, chatbot.ErrInternalServerError.Withf("%s", r.Error)
	}
	if len(r.Completions) == 0 || r.Completions[0].Message == nil {
		return nil, schema.ResultError, chatbot.ErrInternalServerError.With("response contains no choices")
	}

	completion := r.Completions[0]
	calls := completion.Message.ToolCalls()
	var turn *schema.Turn
	if len(calls) > 0 {
		turn = schema.NewToolCallTurn(completion.Message.Text(), calls...)
	} else {
		turn = schema.NewAssistantTurn(completion.Message.Text())
	}
	turn.Tokens = uint(r.CompletionTokens)

	return turn, finishReason(completion.Reason, len(calls) > 0), nil
}

func (e *ResponseError) String() string {
	if e.Code != nil {
		return fmt.Sprintf("%v: %s", e.Code, e.Message)
	}
	return e.Message
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func finishReason(reason string, calls bool) schema.ResultType {
	if calls {
		return schema.ResultToolCall
	}
	switch reason {
	case "stop", "":
		return schema.ResultStop
	case "length":
		return schema.ResultMaxTokens
	case "tool_calls", "function_call":
		return schema.ResultToolCall
	case "content_filter":
		return schema.ResultBlocked
	default:
		return schema.ResultOther
	}
}
