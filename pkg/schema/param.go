package schema

import (
	"encoding/json"
	"errors"
	"slices"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ParamType is the declared type of a tool parameter
type ParamType string

// ToolParameter describes one named argument of a tool
type ToolParameter struct {
	Name        string    `json:"name" yaml:"name"`
	Type        ParamType `json:"type" yaml:"type"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Required    bool      `json:"required,omitempty" yaml:"required"`
	Enum        []any     `json:"enum,omitempty" yaml:"enum"`
	Default     any       `json:"default,omitempty" yaml:"default"`
}

// ToolSpec is the calling contract of a tool: its name, description and
// ordered parameter list
type ToolSpec struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Parameters  []ToolParameter `json:"parameters,omitempty" yaml:"parameters"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
	TypeObject  ParamType = "object"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewParameter returns a parameter of the given type
func NewParameter(name string, t ParamType, description string, required bool) ToolParameter {
	return ToolParameter{
		Name:        name,
		Type:        t,
		Description: description,
		Required:    required,
	}
}

// WithEnum returns a copy of the parameter restricted to the given values
func (p ToolParameter) WithEnum(values ...any) ToolParameter {
	p.Enum = slices.Clone(values)
	return p
}

// WithDefault returns a copy of the parameter with a default value
func (p ToolParameter) WithDefault(value any) ToolParameter {
	p.Default = value
	return p
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - PARAMTYPE

// Valid returns true if the type is one of the known parameter types
func (t ParamType) Valid() bool {
	switch t {
	case TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeArray, TypeObject:
		return true
	}
	return false
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - TOOLSPEC

// Validate checks the spec itself: the name must be an identifier, parameter
// names must be unique identifiers with known types, and enum and default
// values must match the declared parameter type.
func (s ToolSpec) Validate() error {
	if !types.IsIdentifier(s.Name) {
		return chatbot.ErrBadParameter.Withf("invalid tool name: %q", s.Name)
	}
	seen := make(map[string]struct{}, len(s.Parameters))
	for _, p := range s.Parameters {
		if !types.IsIdentifier(p.Name) {
			return chatbot.ErrBadParameter.Withf("%s: invalid parameter name: %q", s.Name, p.Name)
		}
		if _, exists := seen[p.Name]; exists {
			return chatbot.ErrBadParameter.Withf("%s: duplicate parameter: %q", s.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
		if !p.Type.Valid() {
			return chatbot.ErrBadParameter.Withf("%s: parameter %q has unknown type %q", s.Name, p.Name, p.Type)
		}
		for _, e := range p.Enum {
			if err := p.CheckType(e); err != nil {
				return chatbot.ErrBadParameter.Withf("%s: parameter %q enum value %v is not of type %s", s.Name, p.Name, e, p.Type)
			}
		}
		if p.Default != nil {
			if err := errors.Join(p.CheckType(p.Default), p.CheckEnum(p.Default)); err != nil {
				return chatbot.ErrBadParameter.Withf("%s: parameter %q has invalid default %v", s.Name, p.Name, p.Default)
			}
		}
	}
	return nil
}

// Parameter returns the named parameter
func (s ToolSpec) Parameter(name string) (ToolParameter, bool) {
	for _, p := range s.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ToolParameter{}, false
}

// Required returns the names of the required parameters, in declaration order
func (s ToolSpec) Required() []string {
	var result []string
	for _, p := range s.Parameters {
		if p.Required {
			result = append(result, p.Name)
		}
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (s ToolSpec) String() string {
	return types.Stringify(s)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
