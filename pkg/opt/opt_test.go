package opt_test

import (
	"errors"
	"testing"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	opt "github.com/mutablelogic/go-chatbot/pkg/opt"
	assert "github.com/stretchr/testify/assert"
)

func TestApplyEmpty(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply()
	assert.NoError(err)
	assert.NotNil(opts)
	assert.False(opts.Has("missing"))
	assert.Equal("", opts.GetString(opt.ModelKey))
	assert.Equal(uint(0), opts.GetUint(opt.MaxTokensKey))
}

func TestGenerationOptions(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(
		opt.WithModel("gpt-4o-mini"),
		opt.WithTemperature(0.7),
		opt.WithMaxTokens(1000),
		opt.WithSystemPrompt("  be helpful "),
		nil,
	)
	assert.NoError(err)
	assert.Equal("gpt-4o-mini", opts.GetString(opt.ModelKey))
	assert.Equal(0.7, opts.GetFloat64(opt.TemperatureKey))
	assert.Equal(uint(1000), opts.GetUint(opt.MaxTokensKey))
	assert.Equal("be helpful", opts.GetString(opt.SystemPromptKey))
}

func TestInvalidOptions(t *testing.T) {
	assert := assert.New(t)

	_, err := opt.Apply(opt.WithTemperature(2.5))
	assert.ErrorIs(err, chatbot.ErrBadParameter)

	_, err = opt.Apply(opt.WithMaxTokens(0))
	assert.ErrorIs(err, chatbot.ErrBadParameter)

	_, err = opt.Apply(opt.WithModel(" "))
	assert.ErrorIs(err, chatbot.ErrBadParameter)

	_, err = opt.Apply(opt.WithToolChoice("sometimes"))
	assert.ErrorIs(err, chatbot.ErrBadParameter)

	boom := errors.New("boom")
	_, err = opt.Apply(opt.WithOpts(opt.WithModel("m"), opt.Error(boom)))
	assert.ErrorIs(err, boom)
}

func TestEmptySystemPrompt(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(opt.WithSystemPrompt(""), opt.WithToolChoice("auto"))
	assert.NoError(err)
	assert.False(opts.Has(opt.SystemPromptKey))
	assert.Equal("auto", opts.GetString(opt.ToolChoiceKey))
}
