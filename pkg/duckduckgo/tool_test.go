package duckduckgo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
	duckduckgo "github.com/mutablelogic/go-chatbot/pkg/duckduckgo"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_tool_001(t *testing.T) {
	assert := assert.New(t)

	search, err := duckduckgo.NewTool(false)
	assert.NoError(err)
	spec := search.Spec()
	assert.Equal("web_search", spec.Name)
	assert.Equal([]string{"query"}, spec.Required())
	assert.Contains(spec.Description, "demo")
	assert.NoError(spec.Validate())

	result, err := search.Execute(context.Background(), schema.Args{"query": "Learn Python Programming today", "num_results": 2})
	assert.NoError(err)
	assert.Contains(result, "Web Search Results for: **Learn Python Programming today**")
	assert.Contains(result, "1. **Python Programming Language - Official Website**")
	assert.Contains(result, "*Showing 2 of 5 available results*")
}

func Test_tool_002(t *testing.T) {
	assert := assert.New(t)

	search, err := duckduckgo.NewTool(false)
	assert.NoError(err)

	// The query is contained in a demo key
	result, err := search.Execute(context.Background(), schema.Args{"query": "weather"})
	assert.NoError(err)
	assert.Contains(result, "Weather.com")

	// No match returns default results, count is clamped
	result, err = search.Execute(context.Background(), schema.Args{"query": "golang", "num_results": 0})
	assert.NoError(err)
	assert.Contains(result, "Search Results for: golang")
	assert.Contains(result, "*Showing 1 of 5 available results*")

	_, err = search.Execute(context.Background(), schema.Args{"query": "  "})
	assert.ErrorIs(err, chatbot.ErrBadParameter)
}

func Test_tool_003(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("golang", r.URL.Query().Get("q"))
		assert.Equal("json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Heading": "Go (programming language)",
			"AbstractText": "Go is a statically typed, compiled language.",
			"AbstractURL": "https://en.wikipedia.org/wiki/Go_(programming_language)",
			"AbstractSource": "Wikipedia",
			"Results": [{"Text": "Official site - The Go Programming Language", "FirstURL": "https://go.dev"}],
			"RelatedTopics": [
				{"Text": "Gopher - The Go mascot", "FirstURL": "https://go.dev/blog/gopher"},
				{"Name": "Tools", "Topics": [{"Text": "gofmt - Formatter", "FirstURL": "https://pkg.go.dev/cmd/gofmt"}]}
			]
		}`))
	}))
	defer server.Close()

	search, err := duckduckgo.NewTool(true, client.OptEndpoint(server.URL))
	assert.NoError(err)
	assert.NotContains(search.Spec().Description, "demo")

	result, err := search.Execute(context.Background(), schema.Args{"query": "golang", "num_results": 10})
	assert.NoError(err)
	assert.Contains(result, "1. **Go (programming language) - Wikipedia**")
	assert.Contains(result, "2. **Official site**")
	assert.Contains(result, "4. **gofmt**")
	assert.Contains(result, "*Showing 4 of 4 available results*")
}

func Test_answer_001(t *testing.T) {
	assert := assert.New(t)

	answer := duckduckgo.Answer{Heading: "2+2", Answer: "4"}
	results := answer.Results()
	if assert.Len(results, 1) {
		assert.Equal("4", results[0].Snippet)
	}
	assert.Empty(duckduckgo.Answer{}.Results())
}
