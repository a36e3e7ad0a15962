package datetime_test

import (
	"context"
	"testing"
	"time"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	datetime "github.com/mutablelogic/go-chatbot/pkg/datetime"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

var (
	fixed = time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)
)

func newTool(t *testing.T) interface {
	Execute(context.Context, schema.Args) (string, error)
	Spec() schema.ToolSpec
} {
	tool, err := datetime.New(datetime.WithClock(func() time.Time { return fixed }), datetime.WithLocation(time.UTC))
	require.NoError(t, err)
	return tool
}

func Test_datetime_001(t *testing.T) {
	assert := assert.New(t)
	tool := newTool(t)

	spec := tool.Spec()
	assert.Equal("datetime", spec.Name)
	assert.Equal([]string{"action"}, spec.Required())
	assert.NoError(spec.Validate())

	result, err := tool.Execute(context.Background(), schema.Args{"action": "current"})
	assert.NoError(err)
	assert.Equal("Current time:\nUTC: 2026-10-19 12:30:00 UTC\nLocal: 2026-10-19 12:30:00", result)

	result, err = tool.Execute(context.Background(), schema.Args{"action": "current", "timezone": "Asia/Tokyo"})
	assert.NoError(err)
	assert.Equal("Current time in Asia/Tokyo: 2026-10-19 21:30:00 JST", result)

	result, err = tool.Execute(context.Background(), schema.Args{"action": "timezone"})
	assert.NoError(err)
	assert.Contains(result, "Europe/London")
}

func Test_datetime_002(t *testing.T) {
	assert := assert.New(t)
	tool := newTool(t)

	_, err := tool.Execute(context.Background(), schema.Args{"action": "convert"})
	assert.ErrorIs(err, chatbot.ErrBadParameter)

	_, err = tool.Execute(context.Background(), schema.Args{"action": "convert", "timezone": "Mars/Olympus"})
	assert.ErrorIs(err, chatbot.ErrBadParameter)

	_, err = tool.Execute(context.Background(), schema.Args{"action": "rewind"})
	assert.ErrorIs(err, chatbot.ErrBadParameter)
}

func Test_datetime_003(t *testing.T) {
	assert := assert.New(t)
	tool := newTool(t)

	result, err := tool.Execute(context.Background(), schema.Args{"action": "add", "amount": "2 hours"})
	assert.NoError(err)
	assert.Equal("Current time: 2026-10-19 12:30:00\nAfter adding 2 hours: 2026-10-19 14:30:00", result)

	result, err = tool.Execute(context.Background(), schema.Args{"action": "add", "amount": "1 Day"})
	assert.NoError(err)
	assert.Contains(result, "2026-10-20 12:30:00")

	for _, amount := range []string{"", "soon", "1 fortnight", "x days"} {
		_, err = tool.Execute(context.Background(), schema.Args{"action": "add", "amount": amount})
		assert.ErrorIs(err, chatbot.ErrBadParameter, amount)
	}
}

func Test_datetime_004(t *testing.T) {
	assert := assert.New(t)
	tool := newTool(t)

	result, err := tool.Execute(context.Background(), schema.Args{"action": "diff", "date1": "2026-01-02 03:04:05", "date2": "2026-01-01 00:00:00"})
	assert.NoError(err)
	assert.Contains(result, "1 days, 3 hours, 4 minutes, 5 seconds")

	_, err = tool.Execute(context.Background(), schema.Args{"action": "diff", "date1": "2026-01-01"})
	assert.ErrorIs(err, chatbot.ErrBadParameter)

	_, err = tool.Execute(context.Background(), schema.Args{"action": "diff", "date1": "yesterday", "date2": "2026-01-01"})
	assert.ErrorIs(err, chatbot.ErrBadParameter)
}

func Test_datetime_005(t *testing.T) {
	assert := assert.New(t)

	d, err := datetime.ParseAmount("-30 minutes")
	assert.NoError(err)
	assert.Equal(-30*time.Minute, d)

	assert.Equal("0 days, 0 hours, 1 minutes, 1 seconds", datetime.FormatDuration(61*time.Second))
}
