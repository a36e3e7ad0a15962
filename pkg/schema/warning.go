package schema

import (
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Warning records a tool candidate which could not be loaded or registered
type Warning struct {
	Source string `json:"source"`         // Where the candidate came from
	Name   string `json:"name,omitempty"` // Candidate name, if known
	Error  string `json:"error"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewWarning returns a warning for a candidate which failed with err
func NewWarning(source, name string, err error) Warning {
	return Warning{Source: source, Name: name, Error: err.Error()}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (w Warning) String() string {
	if w.Name == "" {
		return fmt.Sprintf("%s: %s", w.Source, w.Error)
	}
	return fmt.Sprintf("%s: %s: %s", w.Source, w.Name, w.Error)
}
