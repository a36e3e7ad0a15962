package schema

import (
	"encoding/json"
	"strconv"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Args are the decoded arguments of a tool call, keyed by parameter name
type Args map[string]any

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Has returns true if the argument is present and not null
func (a Args) Has(name string) bool {
	v, ok := a[name]
	return ok && v != nil
}

// String returns a string argument, or an empty string. Scalars of other
// types are formatted.
func (a Args) String(name string) string {
	switch v := a[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

// Int returns an integer argument, or def when the argument is absent or
// cannot be interpreted as a whole number. Numeric strings are accepted.
func (a Args) Int(name string, def int) int {
	switch v := a[name].(type) {
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	default:
		if f, ok := toFloat(v); ok {
			return int(f)
		}
	}
	return def
}

// Float returns a numeric argument
func (a Args) Float(name string) (float64, bool) {
	if s, ok := a[name].(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return toFloat(a[name])
}

// Bool returns a boolean argument, false when absent
func (a Args) Bool(name string) bool {
	switch v := a[name].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}
