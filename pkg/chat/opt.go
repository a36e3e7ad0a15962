package chat

import (
	"log/slog"
	"time"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	opt "github.com/mutablelogic/go-chatbot/pkg/opt"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring a session
type Opt func(*Session) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the logger for model calls and tool dispatch
func WithLogger(logger *slog.Logger) Opt {
	return func(s *Session) error {
		if logger == nil {
			return chatbot.ErrBadParameter.With("logger is required")
		}
		s.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used for chat, model and tool spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(s *Session) error {
		if tracer == nil {
			return chatbot.ErrBadParameter.With("tracer is required")
		}
		s.tracer = tracer
		return nil
	}
}

// WithObserver sets an observer for tool calls and results
func WithObserver(observer Observer) Opt {
	return func(s *Session) error {
		s.observer = observer
		return nil
	}
}

// WithGenerateOpts sets the options passed to the generator on every call,
// such as the model, temperature and system prompt
func WithGenerateOpts(opts ...opt.Opt) Opt {
	return func(s *Session) error {
		s.opts = append(s.opts, opts...)
		return nil
	}
}

// WithMaxRounds sets the number of tool-call rounds allowed for each message
func WithMaxRounds(n uint) Opt {
	return func(s *Session) error {
		if n == 0 {
			return chatbot.ErrBadParameter.With("max rounds must be at least one")
		}
		s.maxRounds = n
		return nil
	}
}

// WithRetries sets the number of times a failed model call is retried.
// Zero disables retries.
func WithRetries(n uint) Opt {
	return func(s *Session) error {
		s.retries = n
		return nil
	}
}

// WithTimeout bounds each model call. Zero means no limit other than the
// caller's context.
func WithTimeout(timeout time.Duration) Opt {
	return func(s *Session) error {
		if timeout < 0 {
			return chatbot.ErrBadParameter.Withf("invalid timeout %v", timeout)
		}
		s.timeout = timeout
		return nil
	}
}

// WithBackoff sets the first and the largest delay between retries
func WithBackoff(initial, max time.Duration) Opt {
	return func(s *Session) error {
		if initial <= 0 || max < initial {
			return chatbot.ErrBadParameter.Withf("invalid backoff %v..%v", initial, max)
		}
		s.initial, s.interval = initial, max
		return nil
	}
}

// WithParallelTools runs up to n calls of a batch concurrently. Results are
// still appended in the order the model requested them. Zero or one
// dispatches sequentially.
func WithParallelTools(n uint) Opt {
	return func(s *Session) error {
		s.parallel = n
		return nil
	}
}

// WithConversation continues an existing conversation, for example one
// loaded from a transcript. The conversation must not have unanswered
// tool calls.
func WithConversation(conversation *schema.Conversation) Opt {
	return func(s *Session) error {
		if conversation == nil {
			return chatbot.ErrBadParameter.With("conversation is required")
		} else if pending := conversation.Pending(); len(pending) > 0 {
			return chatbot.ErrConflict.Withf("%d tool call(s) not answered", len(pending))
		}
		s.conversation = conversation.Copy()
		return nil
	}
}
