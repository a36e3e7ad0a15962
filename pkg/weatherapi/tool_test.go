package weatherapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	weatherapi "github.com/mutablelogic/go-chatbot/pkg/weatherapi"
	assert "github.com/stretchr/testify/assert"
)

func Test_tool_001(t *testing.T) {
	assert := assert.New(t)

	// Without a key, the tool returns demo data
	weather, err := weatherapi.NewTool("")
	assert.NoError(err)
	spec := weather.Spec()
	assert.Equal("weather", spec.Name)
	assert.Equal([]string{"city"}, spec.Required())
	assert.Contains(spec.Description, "demo")
	assert.NoError(spec.Validate())

	result, err := weather.Execute(context.Background(), schema.Args{"city": "Tokyo"})
	assert.NoError(err)
	assert.Contains(result, "Weather for Tokyo:")
	assert.Contains(result, "22°C")
}

func Test_tool_002(t *testing.T) {
	assert := assert.New(t)

	_, err := weatherapi.NewTool("bad key with spaces")
	assert.ErrorIs(err, chatbot.ErrBadParameter)

	_, err = weatherapi.New("")
	assert.ErrorIs(err, chatbot.ErrBadParameter)
}

func Test_tool_003(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/current.json", r.URL.Path)
		assert.Equal("secret-key-123", r.URL.Query().Get("key"))
		assert.Equal("London,GB", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"location": map[string]any{"name": "London", "country": "United Kingdom", "localtime": "2026-10-19 09:00"},
			"current": map[string]any{
				"temp_c": 14.0, "feelslike_c": 12.0, "humidity": 80, "wind_kph": 20.0, "wind_dir": "SW",
				"pressure_mb": 1008.0, "vis_km": 9.0, "condition": map[string]any{"text": "Light rain"},
			},
		})
	}))
	defer server.Close()

	weather, err := weatherapi.NewTool("secret-key-123", client.OptEndpoint(server.URL))
	assert.NoError(err)
	assert.NotContains(weather.Spec().Description, "demo")

	result, err := weather.Execute(context.Background(), schema.Args{"city": "London", "country": "GB"})
	assert.NoError(err)
	assert.Contains(result, "Weather for London, United Kingdom:")
	assert.Contains(result, "Light rain")
	assert.Contains(result, "20 km/h SW")
	assert.Contains(result, "2026-10-19 09:00")
}

func Test_tool_004(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	}))
	defer server.Close()

	weather, err := weatherapi.NewTool("secret-key-123", client.OptEndpoint(server.URL))
	assert.NoError(err)
	_, err = weather.Execute(context.Background(), schema.Args{"city": "Nowhere"})
	assert.Error(err)
}
