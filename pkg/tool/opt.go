package tool

import (
	"log/slog"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring a registry
type Opt func(*Registry) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the logger for registration, discovery and dispatch
func WithLogger(logger *slog.Logger) Opt {
	return func(r *Registry) error {
		if logger == nil {
			return chatbot.ErrBadParameter.With("logger is required")
		}
		r.logger = logger
		return nil
	}
}

// WithTools registers tools when the registry is created
func WithTools(tools ...Tool) Opt {
	return func(r *Registry) error {
		return r.Register(tools...)
	}
}
