package tools_test

import (
	"context"
	"testing"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
	tools "github.com/mutablelogic/go-chatbot/pkg/tools"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func Test_builtin_001(t *testing.T) {
	assert := assert.New(t)

	registry, err := tool.New()
	require.NoError(t, err)

	report := registry.Discover(context.Background(), tools.Builtin(tools.Config{FilesRoot: t.TempDir()}))
	assert.Empty(report.Warnings)
	assert.Equal([]string{"calculator", "datetime", "file_operations", "news", "stock", "weather", "web_search"}, report.Registered)
	assert.Len(registry.Schema(), 7)

	// Every builtin spec is valid
	for _, spec := range registry.Specs() {
		assert.NoError(spec.Validate(), spec.Name)
	}
}

func Test_builtin_002(t *testing.T) {
	assert := assert.New(t)

	registry, err := tool.New()
	require.NoError(t, err)

	// A malformed key and a missing root become warnings, the rest load
	report := registry.Discover(context.Background(), tools.Builtin(tools.Config{
		WeatherKey: "bad key",
		FilesRoot:  "/nonexistent/path/xyz",
	}))
	assert.Len(report.Warnings, 2)
	assert.Len(report.Registered, 5)
	assert.NotContains(report.Registered, "weather")
	assert.NotContains(report.Registered, "file_operations")
	for _, w := range registry.Warnings() {
		assert.Equal("builtin", w.Source)
	}
}

func Test_builtin_003(t *testing.T) {
	assert := assert.New(t)

	registry, err := tool.New()
	require.NoError(t, err)
	registry.Discover(context.Background(), tools.Builtin(tools.Config{FilesRoot: t.TempDir()}))

	// Dispatch through the registry fills in defaults and validates
	result, err := registry.Dispatch(context.Background(), "calculator", schema.Args{"expression": "6 * 7"})
	assert.NoError(err)
	assert.Equal("Result: 42", result)

	result, err = registry.Dispatch(context.Background(), "news", schema.Args{})
	assert.NoError(err)
	assert.Contains(result, "Latest General News (US):")

	_, err = registry.Dispatch(context.Background(), "stock", schema.Args{"action": "price"})
	assert.ErrorIs(err, chatbot.ErrValidation)

	_, err = registry.Dispatch(context.Background(), "stock", schema.Args{"symbol": "XYZ"})
	assert.ErrorIs(err, chatbot.ErrToolExecution)
}
