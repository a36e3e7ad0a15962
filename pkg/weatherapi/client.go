/*
weatherapi implements an API client for WeatherAPI
https://www.weatherapi.com/docs/
*/
package weatherapi

import (
	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client calls the WeatherAPI endpoints. The key is sent as a query
// parameter with each request.
type Client struct {
	*client.Client
	key string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.weatherapi.com/v1"
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
