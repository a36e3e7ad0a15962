package tool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is a named capability which the model may request to run
type Tool interface {
	// Return the calling contract of the tool. Must not have side effects.
	Spec() schema.ToolSpec

	// Run the tool with validated arguments and return the result
	Execute(ctx context.Context, args schema.Args) (string, error)
}

// Registry is a collection of tools with unique names, kept in registration
// order. It is mutated during discovery and read-only afterwards, so it may
// be shared between conversations.
type Registry struct {
	names    []string
	tools    map[string]Tool
	specs    map[string]schema.ToolSpec
	warnings []schema.Warning
	logger   *slog.Logger
}

// Stats summarises the contents of a registry
type Stats struct {
	Tools      int `json:"tools"`
	Parameters int `json:"parameters"`
	Required   int `json:"required"`
	Warnings   int `json:"warnings"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates an empty registry
func New(opts ...Opt) (*Registry, error) {
	r := &Registry{
		tools:  make(map[string]Tool),
		specs:  make(map[string]schema.ToolSpec),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Register adds one or more tools to the registry. It returns ErrDuplicateTool
// when a name is already registered, leaving the existing tool in place, and
// ErrBadParameter when a tool's spec is invalid. Tools before the failing
// one remain registered.
func (r *Registry) Register(tools ...Tool) error {
	for _, t := range tools {
		if t == nil {
			return chatbot.ErrBadParameter.With("tool cannot be nil")
		}
		spec := t.Spec()
		if err := spec.Validate(); err != nil {
			return err
		}
		if _, exists := r.tools[spec.Name]; exists {
			return chatbot.ErrDuplicateTool.Withf("%q", spec.Name)
		}
		r.names = append(r.names, spec.Name)
		r.tools[spec.Name] = t
		r.specs[spec.Name] = spec
		r.logger.Debug("registered tool", "tool", spec.Name, "parameters", len(spec.Parameters))
	}
	return nil
}

// Get returns a tool by name, or ErrUnknownTool
func (r *Registry) Get(name string) (Tool, error) {
	if t, exists := r.tools[name]; exists {
		return t, nil
	}
	return nil, chatbot.ErrUnknownTool.Withf("%q", name)
}

// Spec returns the spec of a tool as captured at registration
func (r *Registry) Spec(name string) (schema.ToolSpec, error) {
	if spec, exists := r.specs[name]; exists {
		return spec, nil
	}
	return schema.ToolSpec{}, chatbot.ErrUnknownTool.Withf("%q", name)
}

// Names returns the names of the registered tools in registration order
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// Specs returns the specs of the registered tools in registration order
func (r *Registry) Specs() []schema.ToolSpec {
	result := make([]schema.ToolSpec, 0, len(r.names))
	for _, name := range r.names {
		result = append(result, r.specs[name])
	}
	return result
}

// Len returns the number of registered tools
func (r *Registry) Len() int {
	return len(r.names)
}

// Warnings returns the failures recorded during discovery
func (r *Registry) Warnings() []schema.Warning {
	result := make([]schema.Warning, len(r.warnings))
	copy(result, r.warnings)
	return result
}

// Schema returns the tools in the function-calling wire format, in
// registration order. The output is identical between calls as long as no
// tools are registered in between.
func (r *Registry) Schema() []schema.ToolDefinition {
	result := make([]schema.ToolDefinition, 0, len(r.names))
	for _, name := range r.names {
		result = append(result, r.specs[name].Definition())
	}
	return result
}

// Dispatch validates the arguments against the tool's parameters, fills in
// defaults for absent optional parameters and runs the tool. Failures are
// ErrUnknownTool, a *ValidationError or ErrToolExecution.
func (r *Registry) Dispatch(ctx context.Context, name string, args schema.Args) (string, error) {
	t, err := r.Get(name)
	if err != nil {
		return "", err
	}
	spec := r.specs[name]
	if err := Validate(spec, args); err != nil {
		return "", err
	}
	return r.execute(ctx, spec, t, withDefaults(spec, args))
}

// Call decodes the raw arguments of a tool call and dispatches it
func (r *Registry) Call(ctx context.Context, call schema.ToolCall) (string, error) {
	if _, err := r.Get(call.Name); err != nil {
		return "", err
	}
	args, err := DecodeArgs(call.Arguments)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Tool = call.Name
		}
		return "", err
	}
	return r.Dispatch(ctx, call.Name, args)
}

// Stats returns counts of tools, parameters and warnings
func (r *Registry) Stats() Stats {
	stats := Stats{Tools: len(r.names), Warnings: len(r.warnings)}
	for _, spec := range r.specs {
		stats.Parameters += len(spec.Parameters)
		stats.Required += len(spec.Required())
	}
	return stats
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r *Registry) execute(ctx context.Context, spec schema.ToolSpec, t Tool, args schema.Args) (result string, err error) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.Error("tool panic", "tool", spec.Name, "panic", v)
			result, err = "", chatbot.ErrToolExecution.Withf("%s: %v", spec.Name, v)
		}
	}()
	r.logger.Debug("execute tool", "tool", spec.Name, "args", types.Stringify(args))
	result, err = t.Execute(ctx, args)
	if err != nil {
		r.logger.Debug("tool failed", "tool", spec.Name, "error", err)
		if errors.Is(err, chatbot.ErrToolExecution) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s: %w", chatbot.ErrToolExecution, spec.Name, err)
	}
	return result, nil
}

// withDefaults returns a copy of args with defaults for absent parameters
func withDefaults(spec schema.ToolSpec, args schema.Args) schema.Args {
	result := make(schema.Args, len(args)+len(spec.Parameters))
	maps.Copy(result, args)
	for _, p := range spec.Parameters {
		if p.Default == nil {
			continue
		}
		if !result.Has(p.Name) {
			result[p.Name] = p.Default
		}
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r *Registry) String() string {
	return types.Stringify(r.Specs())
}
