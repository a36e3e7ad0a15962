package opt

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A generic option type, which sets generation options for a model call
type Opt func(*opts) error

// set of options
type opts struct {
	url.Values
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ModelKey        = "model"
	TemperatureKey  = "temperature"
	MaxTokensKey    = "max_tokens"
	SystemPromptKey = "system"
	ToolChoiceKey   = "tool_choice"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply returns a structure of applied options
func Apply(o ...Opt) (*opts, error) {
	opts := &opts{Values: make(url.Values)}
	for _, opt := range o {
		if opt == nil {
			continue
		}
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetString returns the trimmed value for key, or empty string if not set
func (o *opts) GetString(key string) string {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// GetFloat64 returns the float64 value for key, or 0 if not set or invalid
func (o *opts) GetFloat64(key string) float64 {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64); err == nil {
			return v
		}
	}
	return 0
}

// GetUint returns the uint value for key, or 0 if not set or invalid
func (o *opts) GetUint(key string) uint {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseUint(strings.TrimSpace(values[0]), 10, 64); err == nil {
			return uint(v)
		}
	}
	return 0
}

// Has returns true if the key exists
func (o *opts) Has(key string) bool {
	_, ok := o.Values[key]
	return ok
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// Error returns an option that always returns an error
func Error(err error) Opt {
	return func(o *opts) error {
		return err
	}
}

// WithOpts combines multiple options into a single option
func WithOpts(options ...Opt) Opt {
	return func(o *opts) error {
		for _, opt := range options {
			if opt == nil {
				continue
			}
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// SetString replaces the value for key
func SetString(key, value string) Opt {
	return func(o *opts) error {
		o.Values.Set(key, value)
		return nil
	}
}

// WithModel sets the model identifier
func WithModel(model string) Opt {
	return func(o *opts) error {
		if model = strings.TrimSpace(model); model == "" {
			return chatbot.ErrBadParameter.With("model is required")
		}
		o.Values.Set(ModelKey, model)
		return nil
	}
}

// WithTemperature sets the sampling temperature, between 0 and 2
func WithTemperature(value float64) Opt {
	return func(o *opts) error {
		if value < 0 || value > 2 {
			return chatbot.ErrBadParameter.Withf("temperature must be between 0 and 2, got %v", value)
		}
		o.Values.Set(TemperatureKey, strconv.FormatFloat(value, 'f', -1, 64))
		return nil
	}
}

// WithMaxTokens sets the maximum number of tokens to generate
func WithMaxTokens(value uint) Opt {
	return func(o *opts) error {
		if value == 0 {
			return chatbot.ErrBadParameter.With("max tokens must be positive")
		}
		o.Values.Set(MaxTokensKey, fmt.Sprint(value))
		return nil
	}
}

// WithSystemPrompt sets the system prompt sent ahead of the conversation
func WithSystemPrompt(value string) Opt {
	return func(o *opts) error {
		if value = strings.TrimSpace(value); value != "" {
			o.Values.Set(SystemPromptKey, value)
		}
		return nil
	}
}

// WithToolChoice sets whether the model may call tools: auto, none or required
func WithToolChoice(value string) Opt {
	return func(o *opts) error {
		switch value {
		case "auto", "none", "required":
			o.Values.Set(ToolChoiceKey, value)
			return nil
		}
		return chatbot.ErrBadParameter.Withf("invalid tool choice: %q", value)
	}
}
