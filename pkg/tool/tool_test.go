package tool_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// STUBS

type stubTool struct {
	spec schema.ToolSpec
	fn   func(schema.Args) (string, error)
	args schema.Args
}

func (s *stubTool) Spec() schema.ToolSpec { return s.spec }

func (s *stubTool) Execute(_ context.Context, args schema.Args) (string, error) {
	s.args = args
	if s.fn != nil {
		return s.fn(args)
	}
	return "ok", nil
}

func newStub(name string, params ...schema.ToolParameter) *stubTool {
	return &stubTool{spec: schema.ToolSpec{Name: name, Description: "stub " + name, Parameters: params}}
}

func newStock() *stubTool {
	return newStub("stock",
		schema.NewParameter("symbol", schema.TypeString, "Stock symbol", true),
		schema.NewParameter("action", schema.TypeString, "Action", false).WithEnum("price", "info", "chart").WithDefault("price"),
	)
}

type failingSource struct{}

func (failingSource) Name() string { return "broken" }
func (failingSource) Candidates(context.Context) ([]tool.Candidate, error) {
	return nil, errors.New("cannot enumerate")
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_registry_001(t *testing.T) {
	assert := assert.New(t)
	r, err := tool.New()
	assert.NoError(err)

	weather := newStub("weather", schema.NewParameter("city", schema.TypeString, "", true), schema.NewParameter("country", schema.TypeString, "", false))
	assert.NoError(r.Register(newStock(), weather, newStub("calculator")))
	assert.Equal([]string{"stock", "weather", "calculator"}, r.Names())

	defs := r.Schema()
	assert.Len(defs, 3)
	for i, name := range r.Names() {
		assert.Equal(name, defs[i].Function.Name)
	}
	assert.Equal([]string{"symbol"}, defs[0].Function.Parameters.Required)
	assert.Equal([]string{"city"}, defs[1].Function.Parameters.Required)
	assert.Empty(defs[2].Function.Parameters.Required)

	// Idempotent
	a, err := json.Marshal(r.Schema())
	assert.NoError(err)
	b, err := json.Marshal(r.Schema())
	assert.NoError(err)
	assert.Equal(string(a), string(b))

	stats := r.Stats()
	assert.Equal(3, stats.Tools)
	assert.Equal(4, stats.Parameters)
	assert.Equal(2, stats.Required)
}

func Test_registry_002(t *testing.T) {
	assert := assert.New(t)
	r, err := tool.New()
	assert.NoError(err)

	first := newStub("weather")
	second := newStub("weather")
	second.spec.Description = "second"
	assert.NoError(r.Register(first))
	err = r.Register(second)
	assert.ErrorIs(err, chatbot.ErrDuplicateTool)

	assert.Equal(1, r.Len())
	got, err := r.Get("weather")
	assert.NoError(err)
	assert.Same(first, got)
}

func Test_registry_003(t *testing.T) {
	assert := assert.New(t)
	r, err := tool.New(tool.WithTools(newStock()))
	assert.NoError(err)
	before := r.Schema()

	_, err = r.Dispatch(context.Background(), "unknown_tool", schema.Args{})
	assert.ErrorIs(err, chatbot.ErrUnknownTool)
	_, err = r.Get("unknown_tool")
	assert.ErrorIs(err, chatbot.ErrUnknownTool)

	assert.Equal(before, r.Schema())
	assert.Equal([]string{"stock"}, r.Names())
}

func Test_registry_004(t *testing.T) {
	assert := assert.New(t)
	stock := newStock()
	r, err := tool.New(tool.WithTools(stock))
	assert.NoError(err)

	// Missing required parameter
	_, err = r.Dispatch(context.Background(), "stock", schema.Args{"action": "info"})
	assert.ErrorIs(err, chatbot.ErrValidation)
	var verr *tool.ValidationError
	if assert.ErrorAs(err, &verr) {
		assert.Equal("symbol", verr.Param)
		assert.Equal(tool.ReasonMissing, verr.Reason)
	}
	assert.Contains(err.Error(), "symbol")
	assert.Nil(stock.args)

	// Extra parameter
	_, err = r.Dispatch(context.Background(), "stock", schema.Args{"symbol": "AAPL", "exchange": "NYSE"})
	if assert.ErrorAs(err, &verr) {
		assert.Equal("exchange", verr.Param)
		assert.Equal(tool.ReasonUnknown, verr.Reason)
	}

	// Type mismatch
	_, err = r.Dispatch(context.Background(), "stock", schema.Args{"symbol": 42.0})
	if assert.ErrorAs(err, &verr) {
		assert.Equal("symbol", verr.Param)
		assert.Equal(tool.ReasonType, verr.Reason)
	}

	// Enum mismatch
	_, err = r.Dispatch(context.Background(), "stock", schema.Args{"symbol": "AAPL", "action": "volume"})
	if assert.ErrorAs(err, &verr) {
		assert.Equal("action", verr.Param)
		assert.Equal(tool.ReasonEnum, verr.Reason)
	}

	// Null for a required parameter is missing
	_, err = r.Dispatch(context.Background(), "stock", schema.Args{"symbol": nil})
	if assert.ErrorAs(err, &verr) {
		assert.Equal(tool.ReasonMissing, verr.Reason)
	}
}

func Test_registry_005(t *testing.T) {
	assert := assert.New(t)
	stock := newStock()
	r, err := tool.New(tool.WithTools(stock))
	assert.NoError(err)

	result, err := r.Dispatch(context.Background(), "stock", schema.Args{"symbol": "AAPL"})
	assert.NoError(err)
	assert.Equal("ok", result)
	assert.Equal("price", stock.args["action"])
	assert.Equal("AAPL", stock.args["symbol"])
}

func Test_registry_006(t *testing.T) {
	assert := assert.New(t)
	failing := newStub("failing")
	failing.fn = func(schema.Args) (string, error) { return "", errors.New("upstream timeout") }
	panicking := newStub("panicking")
	panicking.fn = func(schema.Args) (string, error) { panic("boom") }
	r, err := tool.New(tool.WithTools(failing, panicking))
	assert.NoError(err)

	_, err = r.Dispatch(context.Background(), "failing", schema.Args{})
	assert.ErrorIs(err, chatbot.ErrToolExecution)
	assert.Contains(err.Error(), "upstream timeout")

	_, err = r.Dispatch(context.Background(), "panicking", schema.Args{})
	assert.ErrorIs(err, chatbot.ErrToolExecution)
	assert.Contains(err.Error(), "boom")
}

func Test_registry_007(t *testing.T) {
	assert := assert.New(t)
	stock := newStock()
	r, err := tool.New(tool.WithTools(stock))
	assert.NoError(err)

	result, err := r.Call(context.Background(), schema.ToolCall{ID: "c1", Name: "stock", Arguments: json.RawMessage(`"{\"symbol\":\"MSFT\"}"`)})
	assert.NoError(err)
	assert.Equal("ok", result)
	assert.Equal("MSFT", stock.args["symbol"])

	_, err = r.Call(context.Background(), schema.ToolCall{ID: "c2", Name: "stock", Arguments: json.RawMessage(`{"symbol":`)})
	var verr *tool.ValidationError
	if assert.ErrorAs(err, &verr) {
		assert.Equal(tool.ReasonMalformed, verr.Reason)
		assert.Equal("stock", verr.Tool)
	}

	_, err = r.Call(context.Background(), schema.ToolCall{ID: "c3", Name: "nope", Arguments: json.RawMessage(`{`)})
	assert.ErrorIs(err, chatbot.ErrUnknownTool)
}

func Test_validate_001(t *testing.T) {
	spec := schema.ToolSpec{Name: "news", Parameters: []schema.ToolParameter{
		schema.NewParameter("count", schema.TypeInteger, "", false).WithEnum(1, 5, 10),
		schema.NewParameter("tags", schema.TypeArray, "", false),
	}}
	tests := []struct {
		raw    string
		reason tool.Reason
	}{
		{`{"count":5}`, ""},
		{`{"count":5.0}`, ""},
		{`{"tags":["a","b"]}`, ""},
		{`{"count":2.5}`, tool.ReasonType},
		{`{"count":"5"}`, tool.ReasonType},
		{`{"tags":"a"}`, tool.ReasonType},
		{`{"count":7}`, tool.ReasonEnum},
	}
	for _, test := range tests {
		args, err := tool.DecodeArgs(json.RawMessage(test.raw))
		assert.NoError(t, err, test.raw)
		err = tool.Validate(spec, args)
		if test.reason == "" {
			assert.NoError(t, err, test.raw)
		} else {
			var verr *tool.ValidationError
			if assert.ErrorAs(t, err, &verr, test.raw) {
				assert.Equal(t, test.reason, verr.Reason, test.raw)
				assert.Equal(t, "news", verr.Tool)
			}
		}
	}
}

func Test_decode_001(t *testing.T) {
	tests := []struct {
		raw    string
		len    int
		reason tool.Reason
	}{
		{"", 0, ""},
		{"null", 0, ""},
		{"{}", 0, ""},
		{`{"a":1,"b":"x"}`, 2, ""},
		{`"{\"a\":1}"`, 1, ""},
		{`[1,2]`, 0, tool.ReasonMalformed},
		{`"not json"`, 0, tool.ReasonMalformed},
		{`{"a":1} {"b":2}`, 0, tool.ReasonMalformed},
	}
	for _, test := range tests {
		args, err := tool.DecodeArgs(json.RawMessage(test.raw))
		if test.reason == "" {
			assert.NoError(t, err, test.raw)
			assert.Len(t, args, test.len, test.raw)
		} else {
			var verr *tool.ValidationError
			if assert.ErrorAs(t, err, &verr, test.raw) {
				assert.Equal(t, test.reason, verr.Reason)
			}
		}
	}
}

func Test_discover_001(t *testing.T) {
	assert := assert.New(t)
	r, err := tool.New()
	assert.NoError(err)

	source := tool.Static("builtin", newStub("weather"), newStub("news"), newStub("weather"), nil)
	report := r.Discover(context.Background(), source, failingSource{})
	assert.Equal([]string{"weather", "news"}, report.Registered)
	assert.Len(report.Warnings, 3)
	assert.Equal("weather", report.Warnings[0].Name)
	assert.Contains(report.Warnings[0].Error, "duplicate")
	assert.Equal("broken", report.Warnings[2].Source)
	assert.Equal(report.Warnings, r.Warnings())
	assert.Equal(3, r.Stats().Warnings)
}

func Test_discover_002(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	assert.NoError(os.WriteFile(filepath.Join(dir, "greet.yaml"), []byte(`
name: greet
description: Greet someone by name
parameters:
  - name: person
    type: string
    description: Who to greet
    required: true
  - name: greeting
    type: string
    enum: [Hello, Hi]
    default: Hello
template: "{{ .greeting }}, {{ .person }}!"
`), 0o600))
	assert.NoError(os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("name: [unterminated"), 0o600))
	assert.NoError(os.WriteFile(filepath.Join(dir, "bad-name.yaml"), []byte("name: bad name\ntemplate: x\n"), 0o600))
	assert.NoError(os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o600))

	r, err := tool.New()
	assert.NoError(err)
	report := r.Discover(context.Background(), tool.ManifestDir(dir), tool.ManifestDir(filepath.Join(dir, "missing")))
	assert.Equal([]string{"greet"}, report.Registered)
	assert.Len(report.Warnings, 2)

	result, err := r.Dispatch(context.Background(), "greet", schema.Args{"person": "Ada"})
	assert.NoError(err)
	assert.Equal("Hello, Ada!", result)

	_, err = r.Dispatch(context.Background(), "greet", schema.Args{"person": "Ada", "greeting": "Yo"})
	assert.ErrorIs(err, chatbot.ErrValidation)
}
