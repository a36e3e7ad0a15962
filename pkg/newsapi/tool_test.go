package newsapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
	newsapi "github.com/mutablelogic/go-chatbot/pkg/newsapi"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_tool_001(t *testing.T) {
	assert := assert.New(t)

	news, err := newsapi.NewTool("")
	assert.NoError(err)
	spec := news.Spec()
	assert.Equal("news", spec.Name)
	assert.Empty(spec.Required())
	assert.Contains(spec.Description, "demo")
	assert.NoError(spec.Validate())

	result, err := news.Execute(context.Background(), schema.Args{"topic": "technology", "count": 3})
	assert.NoError(err)
	assert.True(strings.HasPrefix(result, "Latest Technology News (US):"))
	assert.Contains(result, "1. **AI Breakthrough in Natural Language Processing**")
	assert.Contains(result, "*Showing 3 of 5 available articles*")
	assert.NotContains(result, "4. ")
}

func Test_tool_002(t *testing.T) {
	assert := assert.New(t)

	news, err := newsapi.NewTool("")
	assert.NoError(err)

	// Unknown categories fall back to general headlines, count is clamped
	result, err := news.Execute(context.Background(), schema.Args{"topic": "health", "country": "gb", "count": 50})
	assert.NoError(err)
	assert.Contains(result, "Latest Health News (GB):")
	assert.Contains(result, "Global Climate Summit")
	assert.Contains(result, "*Showing 5 of 5 available articles*")
}

func Test_tool_003(t *testing.T) {
	assert := assert.New(t)

	_, err := newsapi.NewTool("short")
	assert.ErrorIs(err, chatbot.ErrBadParameter)
}

func Test_tool_004(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/top-headlines", r.URL.Path)
		assert.Equal("secret-key-123", r.Header.Get("X-Api-Key"))
		assert.Equal("science", r.URL.Query().Get("category"))
		assert.Equal("2", r.URL.Query().Get("pageSize"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":       "ok",
			"totalResults": 2,
			"articles": []map[string]any{
				{"title": "[Removed]", "source": map[string]any{"name": "[Removed]"}},
				{"title": "Comet spotted", "source": map[string]any{"name": "Sky"}},
				{"title": "Fusion record", "source": map[string]any{"name": "Lab"}},
			},
		})
	}))
	defer server.Close()

	news, err := newsapi.NewTool("secret-key-123", client.OptEndpoint(server.URL))
	assert.NoError(err)
	result, err := news.Execute(context.Background(), schema.Args{"topic": "science", "count": 2})
	assert.NoError(err)
	assert.Contains(result, "Latest Science News (US):")
	assert.Contains(result, "2. **Fusion record**")
	assert.Contains(result, "   Sky\n")
	assert.NotContains(result, "[Removed]")
}

func Test_request_001(t *testing.T) {
	assert := assert.New(t)

	req := newsapi.HeadlinesRequest{Query: "go", PageSize: 3}
	values := req.Values()
	assert.Equal("go", values.Get("q"))
	assert.Equal("3", values.Get("pageSize"))
	assert.False(values.Has("country"))

	values = newsapi.NewHeadlinesRequest(" Technology ", "US", 50).Values()
	assert.Equal("technology", values.Get("category"))
	assert.Equal("us", values.Get("country"))
	assert.Equal("10", values.Get("pageSize"))
	assert.False(values.Has("q"))
}
