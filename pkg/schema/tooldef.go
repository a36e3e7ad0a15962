package schema

import (
	"encoding/json"
	"fmt"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolDefinition is a tool in the function-calling wire format of
// chat-completion endpoints
type ToolDefinition struct {
	Type     string             `json:"type"`
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes a callable function and its arguments
type FunctionDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ToolTypeFunction = "function"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Definition returns the wire format for the spec
func (s ToolSpec) Definition() ToolDefinition {
	return ToolDefinition{
		Type: ToolTypeFunction,
		Function: FunctionDefinition{
			Name:        s.Name,
			Description: s.Description,
			Parameters:  s.JSONSchema(),
		},
	}
}

// JSONSchema returns an object schema with one property per parameter. Every
// required parameter is listed in the schema's required set.
func (s ToolSpec) JSONSchema() *jsonschema.Schema {
	result := &jsonschema.Schema{
		Type:       string(TypeObject),
		Properties: make(map[string]*jsonschema.Schema, len(s.Parameters)),
		Required:   s.Required(),
	}
	for _, p := range s.Parameters {
		result.Properties[p.Name] = p.JSONSchema()
	}
	return result
}

// JSONSchema returns the schema for a single parameter. Defaults are
// advertised in the description.
func (p ToolParameter) JSONSchema() *jsonschema.Schema {
	result := &jsonschema.Schema{
		Type:        string(p.Type),
		Description: p.Description,
	}
	if len(p.Enum) > 0 {
		result.Enum = make([]any, len(p.Enum))
		copy(result.Enum, p.Enum)
	}
	if p.Default != nil {
		if result.Description == "" {
			result.Description = fmt.Sprintf("Default: %v", p.Default)
		} else {
			result.Description = fmt.Sprintf("%s (default: %v)", result.Description, p.Default)
		}
	}
	if p.Type == TypeArray {
		result.Items = &jsonschema.Schema{}
	}
	return result
}

// CheckType returns an error if a decoded JSON value is not of the
// parameter type. An integer must have no fractional part.
func (p ToolParameter) CheckType(v any) error {
	return validate(&jsonschema.Schema{Type: string(p.Type)}, v)
}

// CheckEnum returns an error if the parameter declares an enum and the value
// is not one of its members. Numbers are compared by value.
func (p ToolParameter) CheckEnum(v any) error {
	if len(p.Enum) == 0 {
		return nil
	}
	return validate(p.JSONSchema(), v)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func validate(s *jsonschema.Schema, v any) error {
	resolved, err := s.Resolve(nil)
	if err != nil {
		return err
	}
	return resolved.Validate(jsonValue(v))
}

// jsonValue returns a value in the shapes produced by encoding/json, so
// json.Number becomes float64 and typed slices and maps become []any and
// map[string]any
func jsonValue(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return v
	}
	return result
}
