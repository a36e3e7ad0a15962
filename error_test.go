package chatbot_test

import (
	"errors"
	"testing"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	assert "github.com/stretchr/testify/assert"
)

func Test_error_001(t *testing.T) {
	assert := assert.New(t)

	err := chatbot.ErrUnknownTool.Withf("tool %q", "weather")
	assert.True(errors.Is(err, chatbot.ErrUnknownTool))
	assert.False(errors.Is(err, chatbot.ErrDuplicateTool))
	assert.Equal(`unknown tool: tool "weather"`, err.Error())
}

func Test_error_002(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("model unavailable", chatbot.ErrModelUnavailable.Error())
	assert.Equal("error code 999", chatbot.Err(999).Error())
	assert.EqualError(chatbot.ErrBadParameter.With("a", "b"), "bad parameter: ab")
}

func Test_error_003(t *testing.T) {
	assert := assert.New(t)

	assert.True(chatbot.IsToolError(chatbot.ErrUnknownTool.With("weather")))
	assert.True(chatbot.IsToolError(chatbot.ErrValidation.With("city")))
	assert.True(chatbot.IsToolError(chatbot.ErrToolExecution.With("timeout")))
	assert.False(chatbot.IsToolError(chatbot.ErrModelUnavailable.With("502")))
	assert.False(chatbot.IsToolError(nil))
}
