package tool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Reason a tool call failed validation
type Reason string

// ValidationError names the offending parameter and why it was rejected
type ValidationError struct {
	Tool   string
	Param  string
	Reason Reason
	Detail string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ReasonMissing   Reason = "missing"
	ReasonUnknown   Reason = "unknown"
	ReasonType      Reason = "type-mismatch"
	ReasonEnum      Reason = "enum-mismatch"
	ReasonMalformed Reason = "malformed"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Validate checks arguments against the parameters of a spec: required
// parameters must be present, unknown names are rejected, values must match
// the declared type and, where an enum is declared, be one of its members.
// Types and enums are checked with the JSON schema sent to the model. A null
// value is treated as absent.
func Validate(spec schema.ToolSpec, args schema.Args) error {
	for _, p := range spec.Parameters {
		if p.Required && !args.Has(p.Name) {
			return &ValidationError{Tool: spec.Name, Param: p.Name, Reason: ReasonMissing}
		}
	}

	// Report unknown parameters in a stable order
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, exists := spec.Parameter(name); !exists {
			return &ValidationError{Tool: spec.Name, Param: name, Reason: ReasonUnknown}
		}
	}

	for _, p := range spec.Parameters {
		value, exists := args[p.Name]
		if !exists || value == nil {
			continue
		}
		if err := p.CheckType(value); err != nil {
			return &ValidationError{Tool: spec.Name, Param: p.Name, Reason: ReasonType, Detail: fmt.Sprintf("expected %s, got %s", p.Type, typeOf(value))}
		}
		if err := p.CheckEnum(value); err != nil {
			return &ValidationError{Tool: spec.Name, Param: p.Name, Reason: ReasonEnum, Detail: fmt.Sprintf("%v is not one of %v", value, p.Enum)}
		}
	}
	return nil
}

// DecodeArgs decodes the raw arguments of a tool call. An empty payload or
// null decodes to no arguments, and a JSON string containing an object is
// unwrapped. Anything other than an object is a malformed payload.
func DecodeArgs(raw json.RawMessage) (schema.Args, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return schema.Args{}, nil
	}

	// Some providers double-encode the arguments
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, &ValidationError{Reason: ReasonMalformed, Detail: err.Error()}
		}
		return DecodeArgs(json.RawMessage(inner))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var args schema.Args
	if err := dec.Decode(&args); err != nil {
		return nil, &ValidationError{Reason: ReasonMalformed, Detail: err.Error()}
	}
	if dec.More() {
		return nil, &ValidationError{Reason: ReasonMalformed, Detail: "trailing data after arguments"}
	}
	if args == nil {
		args = schema.Args{}
	}
	return args, nil
}

///////////////////////////////////////////////////////////////////////////////
// ERROR

func (e *ValidationError) Error() string {
	var msg string
	switch e.Reason {
	case ReasonMissing:
		msg = fmt.Sprintf("missing required parameter %q", e.Param)
	case ReasonUnknown:
		msg = fmt.Sprintf("unknown parameter %q", e.Param)
	case ReasonType:
		msg = fmt.Sprintf("parameter %q has the wrong type", e.Param)
	case ReasonEnum:
		msg = fmt.Sprintf("parameter %q has a value which is not allowed", e.Param)
	case ReasonMalformed:
		msg = "malformed arguments"
	default:
		msg = fmt.Sprintf("parameter %q is invalid", e.Param)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Tool != "" {
		msg = e.Tool + ": " + msg
	}
	return chatbot.ErrValidation.Error() + ": " + msg
}

func (e *ValidationError) Unwrap() error {
	return chatbot.ErrValidation
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func typeOf(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
