package chat

import (
	"context"
	"encoding/json"

	// Packages
	uuid "github.com/google/uuid"
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// dispatch runs a batch of tool calls and returns one tool turn per call,
// in request order. Failures become error turns.
func (s *Session) dispatch(ctx context.Context, calls []schema.ToolCall) []*schema.Turn {
	if s.observer != nil {
		for _, call := range calls {
			s.observer.OnToolCall(call)
		}
	}

	results := make([]*schema.Turn, len(calls))
	if s.parallel > 1 && len(calls) > 1 {
		var g errgroup.Group
		g.SetLimit(int(s.parallel))
		for i, call := range calls {
			g.Go(func() error {
				results[i] = s.call(ctx, call)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, call := range calls {
			results[i] = s.call(ctx, call)
		}
	}

	if s.observer != nil {
		for i, call := range calls {
			s.observer.OnToolResult(call, results[i])
		}
	}
	return results
}

// call dispatches one tool call through the registry
func (s *Session) call(ctx context.Context, call schema.ToolCall) *schema.Turn {
	var err error
	ctx, endSpan := otel.StartSpan(s.tracer, ctx, "Tool",
		attribute.String("tool", call.Name),
		attribute.String("id", call.ID),
	)
	defer func() { endSpan(err) }()

	result, err := s.registry.Call(ctx, call)
	if err != nil {
		if chatbot.IsToolError(err) {
			s.logger.Info("tool call failed", "tool", call.Name, "id", call.ID, "error", err)
		} else {
			s.logger.Warn("tool call failed", "tool", call.Name, "id", call.ID, "error", err)
		}
		return schema.NewToolError(call, err)
	}
	s.logger.Debug("tool call succeeded", "tool", call.Name, "id", call.ID, "bytes", len(result))
	return schema.NewToolResult(call, result)
}

// normalize assigns an identifier to calls whose identifier is missing or
// repeats an earlier call of the same batch. Arguments which are not valid
// JSON are kept as a JSON string, so the turn can always be marshalled.
func normalize(calls []schema.ToolCall) []schema.ToolCall {
	seen := make(map[string]struct{}, len(calls))
	for i := range calls {
		if _, exists := seen[calls[i].ID]; exists || calls[i].ID == "" {
			calls[i].ID = "call_" + uuid.NewString()
		}
		seen[calls[i].ID] = struct{}{}
		switch args := calls[i].Arguments; {
		case len(args) == 0:
			calls[i].Arguments = nil
		case !json.Valid(args):
			calls[i].Arguments, _ = json.Marshal(string(args))
		}
	}
	return calls
}
