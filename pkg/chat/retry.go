package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	// Packages
	backoff "github.com/cenkalti/backoff/v4"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// generate asks the model for the next turn, retrying transient failures
// with exponential backoff. A failure which is not caused by the caller's
// context is returned wrapped in ErrModelUnavailable.
func (s *Session) generate(ctx context.Context, tools []schema.ToolDefinition) (turn *schema.Turn, result schema.ResultType, err error) {
	ctx, endSpan := otel.StartSpan(s.tracer, ctx, "Generate",
		attribute.String("generator", s.generator.Name()),
		attribute.Int("turns", s.conversation.Len()),
		attribute.Int("tools", len(tools)),
	)
	defer func() { endSpan(err) }()

	attempt := 0
	operation := func() error {
		attempt++
		s.stats.ModelCalls++

		callctx, cancel := ctx, context.CancelFunc(func() {})
		if s.timeout > 0 {
			callctx, cancel = context.WithTimeout(ctx, s.timeout)
		}
		defer cancel()

		t, r, err := s.generator.Generate(callctx, s.conversation, tools, s.opts...)
		if err == nil && t == nil {
			err = chatbot.ErrInternalServerError.With("empty response from model")
		}
		if err != nil {
			if ctx.Err() != nil || permanent(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		turn, result = t, r
		return nil
	}
	notify := func(err error, delay time.Duration) {
		s.stats.Retries++
		s.logger.Warn("model call failed, retrying", "attempt", attempt, "delay", delay, "error", err)
	}

	if err = backoff.RetryNotify(operation, s.backoff(ctx), notify); err == nil {
		s.logger.Debug("model replied", "attempts", attempt, "result", result, "calls", len(turn.ToolCalls))
		return turn, result, nil
	}

	// Cancellation by the caller is not a model failure
	if ctxerr := ctx.Err(); ctxerr != nil {
		return nil, schema.ResultError, ctxerr
	}
	s.logger.Error("model unavailable", "attempts", attempt, "error", err)
	return nil, schema.ResultModelUnavailable, fmt.Errorf("%w after %d attempt(s): %w", chatbot.ErrModelUnavailable, attempt, err)
}

func (s *Session) backoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(s.initial),
		backoff.WithMaxInterval(s.interval),
		backoff.WithMaxElapsedTime(0),
	)
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(s.retries)), ctx)
}

// permanent returns true for failures which a retry cannot fix: client
// errors other than timeouts and rate limits, and bad configuration
func permanent(err error) bool {
	var httpErr httpresponse.Err
	if errors.As(err, &httpErr) {
		code := int(httpErr)
		switch {
		case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
			return false
		case code >= 400 && code < 500:
			return true
		}
		return false
	}
	return errors.Is(err, chatbot.ErrBadParameter) || errors.Is(err, chatbot.ErrNotImplemented)
}
