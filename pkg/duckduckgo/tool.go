package duckduckgo

import (
	"context"
	"fmt"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type search struct {
	client *Client
}

type demoSet struct {
	key     string
	results []Result
}

var _ tool.Tool = (*search)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	toolName        = "web_search"
	toolDescription = "Search the web for current information and real-time data."
	demoSuffix      = " Returns simulated demo data."
	defaultResults  = 5
	maxResults      = 10
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTool returns the web search tool. When live is false, the tool returns
// demo results and makes no network requests.
func NewTool(live bool, opts ...client.ClientOpt) (tool.Tool, error) {
	if !live {
		return &search{}, nil
	}
	client, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return &search{client: client}, nil
}

///////////////////////////////////////////////////////////////////////////////
// TOOL INTERFACE

func (t *search) Spec() schema.ToolSpec {
	description := toolDescription
	if t.client == nil {
		description += demoSuffix
	}
	return schema.ToolSpec{
		Name:        toolName,
		Description: description,
		Parameters: []schema.ToolParameter{
			schema.NewParameter("query", schema.TypeString, "Search query to look up on the web", true),
			schema.NewParameter("num_results", schema.TypeInteger, "Number of results to return (1-10)", false).WithDefault(defaultResults),
		},
	}
}

func (t *search) Execute(ctx context.Context, args schema.Args) (string, error) {
	query := strings.TrimSpace(args.String("query"))
	if query == "" {
		return "", chatbot.ErrBadParameter.With("missing query")
	}
	count := min(max(args.Int("num_results", defaultResults), 1), maxResults)

	// Get the results
	var results []Result
	if t.client == nil {
		results = demoResults(query)
	} else if r, err := t.client.Search(ctx, query); err != nil {
		return "", err
	} else {
		results = r
	}
	if len(results) == 0 {
		return fmt.Sprintf("No results found for: **%s**", query), nil
	}

	// Format the results
	selected := results[:min(count, len(results))]
	var buf strings.Builder
	fmt.Fprintf(&buf, "🔍 Web Search Results for: **%s**\n\n", query)
	for i, item := range selected {
		fmt.Fprintf(&buf, "%d. **%s**\n", i+1, item.Title)
		if item.URL != "" {
			fmt.Fprintf(&buf, "   🔗 %s\n", item.URL)
		}
		fmt.Fprintf(&buf, "   📝 %s\n\n", item.Snippet)
	}
	fmt.Fprintf(&buf, "*Showing %d of %d available results*", len(selected), len(results))
	return buf.String(), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// demoResults returns the first demo set whose key contains, or is
// contained in, the query
func demoResults(query string) []Result {
	lower := strings.ToLower(query)
	for _, set := range demoSets {
		if strings.Contains(lower, set.key) || strings.Contains(set.key, lower) {
			return set.results
		}
	}
	return []Result{
		{"Search Results for: " + query, "https://duckduckgo.com", "Find information about " + query + " on the web."},
		{"Wikipedia", "https://wikipedia.org", "Free encyclopedia with articles on various topics."},
		{"Google Search", "https://google.com", "Search the web for information and resources."},
		{"Bing Search", "https://bing.com", "Web search engine with news, images, and videos."},
		{"DuckDuckGo", "https://duckduckgo.com", "Privacy-focused search engine that doesn't track users."},
	}
}

var demoSets = []demoSet{
	{"python programming", []Result{
		{"Python Programming Language - Official Website", "https://www.python.org", "Python is a programming language that lets you work quickly and integrate systems more effectively."},
		{"Python Tutorial - W3Schools", "https://www.w3schools.com/python", "Learn Python programming with our comprehensive tutorial covering basics to advanced concepts."},
		{"Python Documentation", "https://docs.python.org", "Official Python documentation with tutorials, library references, and language reference."},
		{"Real Python - Tutorials", "https://realpython.com", "Learn Python programming with practical examples and real-world projects."},
		{"Python for Beginners", "https://wiki.python.org/moin/BeginnersGuide", "A comprehensive guide for beginners to start learning Python programming."},
	}},
	{"artificial intelligence", []Result{
		{"What is Artificial Intelligence (AI)?", "https://www.ibm.com/ai", "Artificial intelligence leverages computers and machines to mimic the problem-solving and decision-making capabilities of the human mind."},
		{"AI Research - OpenAI", "https://openai.com/research", "OpenAI conducts research on artificial intelligence and develops AI systems for the benefit of humanity."},
		{"Machine Learning - Google", "https://ai.google", "Google's approach to artificial intelligence and machine learning research and development."},
		{"AI Ethics and Safety", "https://futureoflife.org", "Research and advocacy for AI safety and beneficial artificial intelligence development."},
		{"Deep Learning Fundamentals", "https://deeplearning.ai", "Learn the fundamentals of deep learning and neural networks."},
	}},
	{"weather", []Result{
		{"Weather.com - Current Weather", "https://weather.com", "Get current weather conditions, forecasts, and weather maps for locations worldwide."},
		{"AccuWeather - Weather Forecast", "https://accuweather.com", "Accurate weather forecasts and current weather conditions for your location."},
		{"National Weather Service", "https://weather.gov", "Official weather forecasts and warnings from the National Weather Service."},
		{"Weather Underground", "https://wunderground.com", "Weather forecasts, reports, maps and tropical weather conditions for locations worldwide."},
		{"Weather Radar and Maps", "https://radar.weather.gov", "Interactive weather radar maps and current weather conditions."},
	}},
	{"stock market", []Result{
		{"Yahoo Finance - Stock Market", "https://finance.yahoo.com", "Get real-time stock quotes, financial news, and market data."},
		{"MarketWatch - Financial Markets", "https://marketwatch.com", "Latest stock market news, financial data, and market analysis."},
		{"Bloomberg - Markets", "https://bloomberg.com/markets", "Real-time financial market data, stock quotes, and business news."},
		{"CNBC - Stock Market News", "https://cnbc.com/markets", "Latest stock market news and financial information."},
		{"Reuters - Markets", "https://reuters.com/markets", "Financial market news, stock quotes, and economic data."},
	}},
}
