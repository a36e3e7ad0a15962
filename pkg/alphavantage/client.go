/*
alphavantage implements an API client for Alpha Vantage stock quotes
https://www.alphavantage.co/documentation/
*/
package alphavantage

import (
	"context"
	"net/url"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	key string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://www.alphavantage.co"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. The endpoint may be overridden with client.OptEndpoint.
func New(ApiKey string, opts ...client.ClientOpt) (*Client, error) {
	if ok, err := tool.CheckKey(ApiKey); err != nil {
		return nil, err
	} else if !ok {
		return nil, chatbot.ErrBadParameter.With("missing API key")
	}

	// Create client
	opts = append([]client.ClientOpt{client.OptEndpoint(endPoint)}, opts...)
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client: client,
		key:    ApiKey,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Quote returns the latest price and volume for a symbol
func (c *Client) Quote(ctx context.Context, symbol string) (Quote, error) {
	var response respQuote

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}, chatbot.ErrBadParameter.With("missing symbol")
	}

	// Request -> Response
	values := url.Values{}
	values.Set("function", "GLOBAL_QUOTE")
	values.Set("symbol", symbol)
	values.Set("apikey", c.key)
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("query"), client.OptQuery(values)); err != nil {
		return Quote{}, err
	}

	// The API reports errors and throttling with a 200 status
	switch {
	case response.ErrorMessage != "":
		return Quote{}, chatbot.ErrBadParameter.With(response.ErrorMessage)
	case response.Note != "":
		return Quote{}, chatbot.ErrInternalServerError.With(response.Note)
	case response.Information != "":
		return Quote{}, chatbot.ErrInternalServerError.With(response.Information)
	case response.Quote.Symbol == "":
		return Quote{}, chatbot.ErrNotFound.Withf("unknown symbol %q", symbol)
	}

	// Return success
	return response.Quote, nil
}
