package alphavantage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
	alphavantage "github.com/mutablelogic/go-chatbot/pkg/alphavantage"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_tool_001(t *testing.T) {
	assert := assert.New(t)

	stock, err := alphavantage.NewTool("")
	assert.NoError(err)
	spec := stock.Spec()
	assert.Equal("stock", spec.Name)
	assert.Equal([]string{"symbol"}, spec.Required())
	assert.Contains(spec.Description, "demo")
	assert.NoError(spec.Validate())

	result, err := stock.Execute(context.Background(), schema.Args{"symbol": "aapl", "action": "price"})
	assert.NoError(err)
	assert.Contains(result, "Apple Inc. (AAPL)")
	assert.Contains(result, "Current Price: $175.43")
	assert.Contains(result, "Change: +2.15 (+1.24%)")
	assert.Contains(result, "Volume: 45.2M")
	assert.Contains(result, "Market Cap: $2.7T")
}

func Test_tool_002(t *testing.T) {
	assert := assert.New(t)

	stock, err := alphavantage.NewTool("")
	assert.NoError(err)

	result, err := stock.Execute(context.Background(), schema.Args{"symbol": "TSLA", "action": "info"})
	assert.NoError(err)
	assert.Contains(result, "Sector: Automotive")
	assert.Contains(result, "Market Cap: $789B")

	result, err = stock.Execute(context.Background(), schema.Args{"symbol": "AAPL", "action": "chart"})
	assert.NoError(err)
	assert.Contains(result, "52-Week High: $201.74")
	assert.Contains(result, "52-Week Low: $149.12")
	assert.Contains(result, "30-Day Avg: $178.94")
}

func Test_tool_003(t *testing.T) {
	assert := assert.New(t)

	stock, err := alphavantage.NewTool("")
	assert.NoError(err)

	_, err = stock.Execute(context.Background(), schema.Args{"symbol": "ZZZZ"})
	assert.ErrorIs(err, chatbot.ErrNotFound)
	assert.ErrorContains(err, "AAPL, AMZN, GOOGL, MSFT, TSLA")

	_, err = stock.Execute(context.Background(), schema.Args{"symbol": "AAPL", "action": "forecast"})
	assert.ErrorIs(err, chatbot.ErrBadParameter)
}

func Test_tool_004(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/query", r.URL.Path)
		assert.Equal("GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal("secret-key-123", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("symbol") {
		case "IBM":
			w.Write([]byte(`{"Global Quote":{"01. symbol":"IBM","02. open":"180.0000","03. high":"182.5000","04. low":"179.1000","05. price":"181.2500","06. volume":"3456789","07. latest trading day":"2026-10-16","08. previous close":"179.9000","09. change":"1.3500","10. change percent":"0.7504%"}}`))
		default:
			w.Write([]byte(`{"Global Quote":{}}`))
		}
	}))
	defer server.Close()

	stock, err := alphavantage.NewTool("secret-key-123", client.OptEndpoint(server.URL))
	assert.NoError(err)
	assert.NotContains(stock.Spec().Description, "demo")

	result, err := stock.Execute(context.Background(), schema.Args{"symbol": "ibm", "action": "price"})
	assert.NoError(err)
	assert.Contains(result, "Current Price: $181.25")
	assert.Contains(result, "Change: +1.35 (+0.75%)")
	assert.Contains(result, "Volume: 3,456,789")

	_, err = stock.Execute(context.Background(), schema.Args{"symbol": "NOPE", "action": "price"})
	assert.ErrorIs(err, chatbot.ErrNotFound)
}
