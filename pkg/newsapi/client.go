/*
newsapi implements an API client for NewsAPI
https://newsapi.org/docs/
*/
package newsapi

import (
	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://newsapi.org/v2"
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
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptHeader("X-Api-Key", ApiKey),
	}, opts...)
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{client}, nil
}
