package weatherapi

import (
	"context"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type weather struct {
	client *Client
}

var _ tool.Tool = (*weather)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	toolName        = "weather"
	toolDescription = "Get real-time weather information for any city or location."
	demoSuffix      = " Returns simulated demo data."
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTool returns the weather tool. Without an API key the tool reports
// demo data; a malformed key is an error.
func NewTool(apikey string, opts ...client.ClientOpt) (tool.Tool, error) {
	if ok, err := tool.CheckKey(apikey); err != nil {
		return nil, err
	} else if !ok {
		return &weather{}, nil
	}
	client, err := New(apikey, opts...)
	if err != nil {
		return nil, err
	}
	return &weather{client: client}, nil
}

///////////////////////////////////////////////////////////////////////////////
// TOOL INTERFACE

func (t *weather) Spec() schema.ToolSpec {
	description := toolDescription
	if t.client == nil {
		description += demoSuffix
	}
	return schema.ToolSpec{
		Name:        toolName,
		Description: description,
		Parameters: []schema.ToolParameter{
			schema.NewParameter("city", schema.TypeString, "City name or location (e.g., 'Tokyo', 'New York', 'London')", true),
			schema.NewParameter("country", schema.TypeString, "Country code (e.g., 'JP', 'US', 'GB') - optional", false),
		},
	}
}

func (t *weather) Execute(ctx context.Context, args schema.Args) (string, error) {
	req := NewCurrentRequest(args.String("city"), args.String("country"))
	if t.client == nil {
		return demoWeather(req.Query()).Report(), nil
	}
	response, err := t.client.Current(ctx, req)
	if err != nil {
		return "", err
	}
	return response.Report(), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func demoWeather(query string) Weather {
	return Weather{
		Query: strings.ReplaceAll(query, ",", ", "),
		Current: Current{
			TempC:      22,
			FeelsLikeC: 24,
			Condition:  Condition{Text: "Partly cloudy"},
			Humidity:   65,
			WindKph:    12,
			PressureMb: 1013,
			VisKm:      10,
		},
	}
}
