package tool

import (
	"strings"
	"unicode"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	minKeyLength = 8
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CheckKey validates a tool API key. An empty key returns false with no
// error, and tools fall back to demo data. A key which is too short or
// contains whitespace or control characters is malformed.
func CheckKey(key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	if len(key) < minKeyLength {
		return false, chatbot.ErrBadParameter.With("malformed API key: too short")
	}
	if strings.IndexFunc(key, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return false, chatbot.ErrBadParameter.With("malformed API key: contains whitespace")
	}
	return true, nil
}
