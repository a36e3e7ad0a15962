/*
tools enumerates the tools which are compiled into the chatbot
*/
package tools

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	alphavantage "github.com/mutablelogic/go-chatbot/pkg/alphavantage"
	calculator "github.com/mutablelogic/go-chatbot/pkg/calculator"
	datetime "github.com/mutablelogic/go-chatbot/pkg/datetime"
	duckduckgo "github.com/mutablelogic/go-chatbot/pkg/duckduckgo"
	fstool "github.com/mutablelogic/go-chatbot/pkg/fstool"
	newsapi "github.com/mutablelogic/go-chatbot/pkg/newsapi"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
	weatherapi "github.com/mutablelogic/go-chatbot/pkg/weatherapi"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config holds the keys and settings for the builtin tools. An empty API
// key puts the corresponding tool into demo mode.
type Config struct {
	WeatherKey    string
	NewsKey       string
	StockKey      string
	FilesRoot     string
	WebSearchLive bool
	ClientOpts    []client.ClientOpt
}

type builtin struct {
	Config
}

var _ tool.Source = (*builtin)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	sourceName = "builtin"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Builtin returns the source of compiled-in tools
func Builtin(cfg Config) tool.Source {
	if cfg.FilesRoot == "" {
		cfg.FilesRoot = "."
	}
	return &builtin{cfg}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (b *builtin) Name() string {
	return sourceName
}

func (b *builtin) Candidates(context.Context) ([]tool.Candidate, error) {
	return []tool.Candidate{
		tool.NewCandidate("calculator", func() (tool.Tool, error) {
			return calculator.New(), nil
		}),
		tool.NewCandidate("datetime", func() (tool.Tool, error) {
			return datetime.New()
		}),
		tool.NewCandidate("file_operations", func() (tool.Tool, error) {
			return fstool.New(b.FilesRoot)
		}),
		tool.NewCandidate("news", func() (tool.Tool, error) {
			return newsapi.NewTool(b.NewsKey, b.ClientOpts...)
		}),
		tool.NewCandidate("stock", func() (tool.Tool, error) {
			return alphavantage.NewTool(b.StockKey, b.ClientOpts...)
		}),
		tool.NewCandidate("weather", func() (tool.Tool, error) {
			return weatherapi.NewTool(b.WeatherKey, b.ClientOpts...)
		}),
		tool.NewCandidate("web_search", func() (tool.Tool, error) {
			return duckduckgo.NewTool(b.WebSearchLive, b.ClientOpts...)
		}),
	}, nil
}
