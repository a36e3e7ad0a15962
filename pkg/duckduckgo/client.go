/*
duckduckgo implements an API client for the DuckDuckGo Instant Answer API
https://duckduckgo.com/api
*/
package duckduckgo

import (
	"context"
	"net/url"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.duckduckgo.com"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. No API key is required. The endpoint may be
// overridden with client.OptEndpoint.
func New(opts ...client.ClientOpt) (*Client, error) {
	opts = append([]client.ClientOpt{client.OptEndpoint(endPoint)}, opts...)
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{client}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Search returns instant answer results for a query, with the abstract
// first followed by direct results and related topics
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	var response Answer

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, chatbot.ErrBadParameter.With("missing query")
	}

	// Request -> Response
	values := url.Values{}
	values.Set("q", query)
	values.Set("format", "json")
	values.Set("no_html", "1")
	values.Set("skip_disambig", "1")
	if err := c.DoWithContext(ctx, nil, &response, client.OptQuery(values)); err != nil {
		return nil, err
	}

	// Return success
	return response.Results(), nil
}
