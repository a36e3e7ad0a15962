package alphavantage

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	// Packages
	humanize "github.com/dustin/go-humanize"
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type stock struct {
	client *Client
	now    func() time.Time
}

// profile is the demo data for a listed company
type profile struct {
	Name      string
	Price     float64
	Change    float64
	Percent   float64
	Volume    float64
	MarketCap float64
	PE        float64
	Sector    string
}

var _ tool.Tool = (*stock)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	toolName        = "stock"
	toolDescription = "Get real-time stock market data, prices, and financial information."
	demoSuffix      = " Returns simulated demo data."
	timeFormat      = "2006-01-02 15:04:05"
	defaultAction   = "price"
)

var (
	actions = []any{"price", "info", "chart"}
	demo    = map[string]profile{
		"AAPL":  {"Apple Inc.", 175.43, 2.15, 1.24, 45.2e6, 2.7e12, 28.5, "Technology"},
		"GOOGL": {"Alphabet Inc.", 142.56, -1.23, -0.85, 23.8e6, 1.8e12, 25.2, "Technology"},
		"MSFT":  {"Microsoft Corporation", 378.85, 5.67, 1.52, 18.9e6, 2.8e12, 32.1, "Technology"},
		"TSLA":  {"Tesla, Inc.", 248.42, -8.95, -3.48, 67.3e6, 789e9, 45.8, "Automotive"},
		"AMZN":  {"Amazon.com, Inc.", 145.24, 3.21, 2.26, 34.7e6, 1.5e12, 38.9, "Consumer Discretionary"},
	}
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTool returns the stock tool. Without an API key the tool reports demo
// data for a fixed set of symbols; a malformed key is an error.
func NewTool(apikey string, opts ...client.ClientOpt) (tool.Tool, error) {
	if ok, err := tool.CheckKey(apikey); err != nil {
		return nil, err
	} else if !ok {
		return &stock{now: time.Now}, nil
	}
	client, err := New(apikey, opts...)
	if err != nil {
		return nil, err
	}
	return &stock{client: client, now: time.Now}, nil
}

///////////////////////////////////////////////////////////////////////////////
// TOOL INTERFACE

func (t *stock) Spec() schema.ToolSpec {
	description := toolDescription
	if t.client == nil {
		description += demoSuffix
	}
	return schema.ToolSpec{
		Name:        toolName,
		Description: description,
		Parameters: []schema.ToolParameter{
			schema.NewParameter("symbol", schema.TypeString, "Stock symbol (e.g., 'AAPL', 'GOOGL', 'MSFT', 'TSLA')", true),
			schema.NewParameter("action", schema.TypeString, "Action to perform: 'price' (current price), 'info' (company info), 'chart' (price history)", false).WithEnum(actions...).WithDefault(defaultAction),
		},
	}
}

func (t *stock) Execute(ctx context.Context, args schema.Args) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(args.String("symbol")))
	action := args.String("action")
	if action == "" {
		action = defaultAction
	}
	if symbol == "" {
		return "", chatbot.ErrBadParameter.With("missing symbol")
	}

	// Live quote
	if t.client != nil {
		quote, err := t.client.Quote(ctx, symbol)
		if err != nil {
			return "", err
		}
		return t.formatQuote(quote, action)
	}

	// Demo data
	data, exists := demo[symbol]
	if !exists {
		return "", chatbot.ErrNotFound.Withf("stock symbol %q not found in demo data, available symbols: %s", symbol, strings.Join(symbols(), ", "))
	}
	return t.formatProfile(symbol, data, action)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t *stock) formatProfile(symbol string, data profile, action string) (string, error) {
	var buf strings.Builder
	switch action {
	case "price":
		fmt.Fprintf(&buf, "📈 **%s (%s)**\n", data.Name, symbol)
		fmt.Fprintf(&buf, "💰 Current Price: $%.2f\n", data.Price)
		fmt.Fprintf(&buf, "📊 Change: %+.2f (%+.2f%%)\n", data.Change, data.Percent)
		fmt.Fprintf(&buf, "📈 Volume: %s\n", abbreviate(data.Volume))
		fmt.Fprintf(&buf, "🏢 Market Cap: $%s\n", abbreviate(data.MarketCap))
		fmt.Fprintf(&buf, "⏰ Last Updated: %s", t.now().Format(timeFormat))
	case "info":
		fmt.Fprintf(&buf, "🏢 **Company Information: %s (%s)**\n", data.Name, symbol)
		fmt.Fprintf(&buf, "💰 Current Price: $%.2f\n", data.Price)
		fmt.Fprintf(&buf, "📊 P/E Ratio: %.1f\n", data.PE)
		fmt.Fprintf(&buf, "🏭 Sector: %s\n", data.Sector)
		fmt.Fprintf(&buf, "📈 Market Cap: $%s\n", abbreviate(data.MarketCap))
		fmt.Fprintf(&buf, "📊 Volume: %s\n", abbreviate(data.Volume))
		fmt.Fprintf(&buf, "📅 Last Updated: %s", t.now().Format(timeFormat))
	case "chart":
		fmt.Fprintf(&buf, "📊 **Price History: %s (%s)**\n", data.Name, symbol)
		fmt.Fprintf(&buf, "💰 Current: $%.2f\n", data.Price)
		fmt.Fprintf(&buf, "📈 52-Week High: $%.2f\n", data.Price*1.15)
		fmt.Fprintf(&buf, "📉 52-Week Low: $%.2f\n", data.Price*0.85)
		fmt.Fprintf(&buf, "📊 30-Day Avg: $%.2f\n", data.Price*1.02)
		fmt.Fprintf(&buf, "📈 90-Day Avg: $%.2f", data.Price*0.98)
	default:
		return "", chatbot.ErrBadParameter.Withf("unknown action %q, available actions: price, info, chart", action)
	}
	return buf.String(), nil
}

func (t *stock) formatQuote(quote Quote, action string) (string, error) {
	var buf strings.Builder
	switch action {
	case "price":
		fmt.Fprintf(&buf, "📈 **%s**\n", quote.Symbol)
		fmt.Fprintf(&buf, "💰 Current Price: $%.2f\n", quote.Price)
		fmt.Fprintf(&buf, "📊 Change: %+.2f (%+.2f%%)\n", quote.Change, float64(quote.ChangePercent))
		fmt.Fprintf(&buf, "📈 Volume: %s\n", humanize.Comma(quote.Volume))
		fmt.Fprintf(&buf, "⏰ Latest Trading Day: %s", quote.LatestTradingDay)
	case "info":
		fmt.Fprintf(&buf, "🏢 **Quote Summary: %s**\n", quote.Symbol)
		fmt.Fprintf(&buf, "💰 Current Price: $%.2f\n", quote.Price)
		fmt.Fprintf(&buf, "🔓 Open: $%.2f\n", quote.Open)
		fmt.Fprintf(&buf, "🔒 Previous Close: $%.2f\n", quote.PreviousClose)
		fmt.Fprintf(&buf, "📊 Volume: %s\n", humanize.Comma(quote.Volume))
		fmt.Fprintf(&buf, "📅 Latest Trading Day: %s", quote.LatestTradingDay)
	case "chart":
		fmt.Fprintf(&buf, "📊 **Day Range: %s**\n", quote.Symbol)
		fmt.Fprintf(&buf, "💰 Current: $%.2f\n", quote.Price)
		fmt.Fprintf(&buf, "📈 High: $%.2f\n", quote.High)
		fmt.Fprintf(&buf, "📉 Low: $%.2f\n", quote.Low)
		fmt.Fprintf(&buf, "🔒 Previous Close: $%.2f", quote.PreviousClose)
	default:
		return "", chatbot.ErrBadParameter.Withf("unknown action %q, available actions: price, info, chart", action)
	}
	return buf.String(), nil
}

// abbreviate renders large values as 45.2M, 789B or 2.7T
func abbreviate(v float64) string {
	value, prefix := humanize.ComputeSI(v)
	if prefix == "G" {
		prefix = "B"
	}
	return humanize.FtoaWithDigits(value, 1) + strings.ToUpper(prefix)
}

func symbols() []string {
	result := make([]string, 0, len(demo))
	for symbol := range demo {
		result = append(result, symbol)
	}
	slices.Sort(result)
	return result
}
