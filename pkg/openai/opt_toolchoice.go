package openai

import "strings"

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolChoice struct {
	Type     string `json:"type"`
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewToolChoice(function string) *ToolChoice {
	choice := new(ToolChoice)
	choice.Type = "function"
	choice.Function.Name = strings.TrimSpace(function)
	return choice
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// toolChoice returns the wire value for a tool choice: "auto", "none" and
// "required" are passed through and any other value names a function
func toolChoice(value string) any {
	switch value = strings.TrimSpace(value); value {
	case "":
		return nil
	case "auto", "none", "required":
		return value
	default:
		return NewToolChoice(value)
	}
}
