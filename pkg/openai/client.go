/*
openai implements a chat completion client for OpenAI and for OpenAI
compatible providers such as OpenRouter
https://platform.openai.com/docs/api-reference
*/
package openai

import (
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	name     string
	endpoint string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint           = "https://api.openai.com/v1"
	OpenRouterEndpoint = "https://openrouter.ai/api/v1"
	defaultName        = "openai"
	openRouterName     = "openrouter"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new OpenAI client. The endpoint may be overridden with
// client.OptEndpoint.
func New(ApiKey string, opts ...client.ClientOpt) (*Client, error) {
	return newClient(defaultName, endPoint, ApiKey, opts...)
}

// Create a new OpenRouter client. The referer and title identify the
// application to OpenRouter and are omitted when empty.
func NewOpenRouter(ApiKey, referer, title string, opts ...client.ClientOpt) (*Client, error) {
	var headers []client.ClientOpt
	if referer = strings.TrimSpace(referer); referer != "" {
		headers = append(headers, client.OptHeader("HTTP-Referer", referer))
	}
	if title = strings.TrimSpace(title); title != "" {
		headers = append(headers, client.OptHeader("X-Title", title))
	}
	return newClient(openRouterName, OpenRouterEndpoint, ApiKey, append(headers, opts...)...)
}

func newClient(name, endpoint, ApiKey string, opts ...client.ClientOpt) (*Client, error) {
	if ApiKey = strings.TrimSpace(ApiKey); ApiKey == "" {
		return nil, chatbot.ErrBadParameter.Withf("%s: missing API key", name)
	}

	// Create client
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endpoint),
		client.OptReqToken(client.Token{
			Scheme: client.Bearer,
			Value:  ApiKey,
		}),
	}, opts...)
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client:   client,
		name:     name,
		endpoint: endpoint,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Return the name of the provider
func (c *Client) Name() string {
	return c.name
}
