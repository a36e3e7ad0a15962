/*
chat implements the orchestration loop between a user, a language model
and a registry of tools. A Session holds one conversation: each call to
Chat appends the user message, asks the model for a reply and dispatches
any tool calls the model requests, feeding the results back until the model
answers in plain text.
*/
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	chatbot "github.com/mutablelogic/go-chatbot"
	opt "github.com/mutablelogic/go-chatbot/pkg/opt"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
	types "github.com/mutablelogic/go-server/pkg/types"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Generator produces the next assistant turn for a conversation. The
// returned turn carries either text or a batch of tool calls.
type Generator interface {
	// Return the name of the provider
	Name() string

	// Generate the next assistant turn, offering the given tools
	Generate(ctx context.Context, conversation *schema.Conversation, tools []schema.ToolDefinition, opts ...opt.Opt) (*schema.Turn, schema.ResultType, error)
}

// Session mediates between the user, the model and the tools for a single
// conversation. Calls to Chat are serialised.
type Session struct {
	sync.Mutex
	generator    Generator
	registry     *tool.Registry
	conversation *schema.Conversation
	state        atomic.Uint32
	stats        Stats

	// Options
	logger    *slog.Logger
	tracer    trace.Tracer
	observer  Observer
	opts      []opt.Opt
	maxRounds uint
	retries   uint
	timeout   time.Duration
	initial   time.Duration
	interval  time.Duration
	parallel  uint
}

// Reply is the outcome of one call to Chat
type Reply struct {
	Text       string            `json:"text"`
	Result     schema.ResultType `json:"result"`
	Rounds     uint              `json:"rounds"`
	ToolCalls  []schema.ToolCall `json:"tool_calls,omitempty"`
	ToolErrors uint              `json:"tool_errors,omitempty"`
	Tokens     uint              `json:"tokens,omitempty"`
}

// Stats are counters accumulated over the lifetime of a session
type Stats struct {
	Messages   uint `json:"messages"`
	ModelCalls uint `json:"model_calls"`
	Retries    uint `json:"retries"`
	ToolCalls  uint `json:"tool_calls"`
	ToolErrors uint `json:"tool_errors"`
	Tokens     uint `json:"tokens"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultMaxRounds = 5
	DefaultRetries   = 3
	DefaultTimeout   = 60 * time.Second
	defaultInitial   = 500 * time.Millisecond
	defaultInterval  = 10 * time.Second
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a session for a generator and a tool registry
func New(generator Generator, registry *tool.Registry, opts ...Opt) (*Session, error) {
	if generator == nil {
		return nil, chatbot.ErrBadParameter.With("generator is required")
	}
	if registry == nil {
		return nil, chatbot.ErrBadParameter.With("registry is required")
	}
	s := &Session{
		generator:    generator,
		registry:     registry,
		conversation: schema.NewConversation(),
		logger:       slog.New(slog.DiscardHandler),
		tracer:       noop.NewTracerProvider().Tracer(""),
		maxRounds:    DefaultMaxRounds,
		retries:      DefaultRetries,
		timeout:      DefaultTimeout,
		initial:      defaultInitial,
		interval:     defaultInterval,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// State returns the current position of the session in the chat loop
func (s *Session) State() State {
	return State(s.state.Load())
}

// Generator returns the generator the session talks to
func (s *Session) Generator() Generator {
	return s.generator
}

// Registry returns the tools offered to the model
func (s *Session) Registry() *tool.Registry {
	return s.registry
}

// Conversation returns a snapshot of the conversation
func (s *Session) Conversation() *schema.Conversation {
	s.Lock()
	defer s.Unlock()
	return s.conversation.Copy()
}

// Stats returns the session counters
func (s *Session) Stats() Stats {
	s.Lock()
	defer s.Unlock()
	return s.stats
}

// Reset clears the conversation and the counters
func (s *Session) Reset() {
	s.Lock()
	defer s.Unlock()
	s.conversation.Reset()
	s.stats = Stats{}
	s.logger.Debug("session reset", "conversation", s.conversation.ID)
}

// Chat sends a user message and returns the final reply of the model.
//
// When the model cannot be reached after the configured retries, every turn
// appended during this call is discarded and the reply explains the failure
// alongside an error wrapping ErrModelUnavailable. Tool failures never
// return an error: they are reported to the model as tool turns.
func (s *Session) Chat(ctx context.Context, text string) (reply *Reply, err error) {
	s.Lock()
	defer s.Unlock()

	ctx, endSpan := otel.StartSpan(s.tracer, ctx, "Chat",
		attribute.String("generator", s.generator.Name()),
		attribute.String("conversation", s.conversation.ID),
	)
	defer func() { endSpan(err) }()
	defer s.setState(AwaitingUserInput)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, chatbot.ErrBadParameter.With("empty message")
	}

	// Record where this exchange starts, so it can be rolled back
	snapshot := s.conversation.Len()
	if err := s.conversation.Append(schema.NewUserTurn(text)); err != nil {
		return nil, err
	}

	tools := s.registry.Schema()
	reply = &Reply{Result: schema.ResultStop}
	for {
		s.setState(ModelCall)
		turn, result, err := s.generate(ctx, tools)
		if err != nil {
			s.conversation.Truncate(snapshot)
			if errors.Is(err, chatbot.ErrModelUnavailable) {
				reply.Text = unavailable(err)
				reply.Result = schema.ResultModelUnavailable
				return reply, err
			}
			return nil, err
		}
		reply.Tokens += turn.Tokens
		s.stats.Tokens += turn.Tokens

		// Plain text ends the exchange
		if !turn.HasToolCalls() {
			s.setState(FinalResponse)
			if !result.Final() {
				result = schema.ResultStop
			}
			turn.Role = schema.RoleAssistant
			if err := s.conversation.Append(turn); err != nil {
				s.conversation.Truncate(snapshot)
				return nil, err
			}
			s.stats.Messages++
			reply.Text = turn.Text
			reply.Result = result
			return reply, nil
		}

		// Stop when the model keeps asking for tools
		if reply.Rounds >= s.maxRounds {
			s.setState(FinalResponse)
			cutoff := chatbot.ErrMaxIterations.Withf("stopped after %d rounds of tool calls", reply.Rounds)
			s.logger.Warn("tool rounds exhausted", "error", cutoff, "pending", len(turn.ToolCalls))
			reply.Text = exhausted(cutoff)
			reply.Result = schema.ResultMaxIterations
			if err := s.conversation.Append(schema.NewAssistantTurn(reply.Text)); err != nil {
				return nil, err
			}
			s.stats.Messages++
			return reply, nil
		}

		// Append the batch, then dispatch it
		s.setState(ToolDispatch)
		turn.ToolCalls = normalize(turn.ToolCalls)
		if err := s.conversation.Append(turn); err != nil {
			s.conversation.Truncate(snapshot)
			return nil, err
		}
		results := s.dispatch(ctx, turn.ToolCalls)
		for _, result := range results {
			if err := s.conversation.Append(result); err != nil {
				s.conversation.Truncate(snapshot)
				return nil, err
			}
			if result.IsError {
				reply.ToolErrors++
				s.stats.ToolErrors++
			}
		}
		reply.ToolCalls = append(reply.ToolCalls, turn.ToolCalls...)
		reply.Rounds++
		s.stats.ToolCalls += uint(len(turn.ToolCalls))
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *Session) setState(state State) {
	s.state.Store(uint32(state))
}

func unavailable(err error) string {
	return fmt.Sprintf("Sorry, the model is unavailable right now (%v). Your message was not added to the conversation, please try again.", err)
}

func exhausted(err error) string {
	return fmt.Sprintf("Sorry, I could not reach an answer (%v). Please try rephrasing or narrowing the question.", err)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Reply) String() string {
	return types.Stringify(r)
}

func (s Stats) String() string {
	return types.Stringify(s)
}
