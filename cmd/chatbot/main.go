package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	godotenv "github.com/joho/godotenv"
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Providers
	OpenRouter `embed:"" help:"OpenRouter configuration"`
	OpenAI     `embed:"" help:"OpenAI configuration"`

	// Model, loop and tools
	Generation `embed:"" help:"Generation configuration"`
	Loop       `embed:"" help:"Tool loop configuration"`
	Keys       `embed:"" help:"Tool configuration"`

	// Context
	ctx        context.Context
	logger     *slog.Logger
	tracer     trace.Tracer
	clientopts []client.ClientOpt
}

type OpenRouter struct {
	OpenRouterKey string `name:"openrouter-api-key" env:"OPENROUTER_API_KEY" help:"OpenRouter API Key (preferred when set)"`
	Referer       string `name:"http-referer" env:"HTTP_REFERER" help:"Application URL sent to OpenRouter"`
	Title         string `name:"x-title" env:"X_TITLE" help:"Application title sent to OpenRouter"`
}

type OpenAI struct {
	OpenAIKey string `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API Key"`
	BaseURL   string `name:"base-url" env:"OPENAI_BASE_URL" help:"Override the API endpoint"`
}

type Generation struct {
	Model        string  `name:"model" env:"OPENAI_MODEL" help:"Model name (default gpt-4o-mini, or openai/gpt-4o-mini with OpenRouter)"`
	MaxTokens    uint    `name:"max-tokens" env:"MAX_TOKENS" default:"1000" help:"Maximum tokens per response"`
	Temperature  float64 `name:"temperature" env:"TEMPERATURE" default:"0.7" help:"Sampling temperature"`
	SystemPrompt string  `name:"system-prompt" env:"SYSTEM_PROMPT" help:"Replace the built-in system prompt"`
}

type Loop struct {
	MaxRounds     uint          `name:"max-rounds" env:"MAX_TOOL_ROUNDS" default:"5" help:"Maximum tool rounds per message"`
	Retries       uint          `name:"retries" env:"MODEL_RETRIES" default:"3" help:"Retries for a failed model call"`
	Timeout       time.Duration `name:"timeout" env:"MODEL_TIMEOUT" default:"60s" help:"Timeout for each model call"`
	ParallelTools uint          `name:"parallel-tools" env:"PARALLEL_TOOLS" default:"0" help:"Run up to this many tool calls at once"`
}

type Keys struct {
	WeatherKey    string `name:"weather-api-key" env:"WEATHER_API_KEY" help:"WeatherAPI API Key"`
	NewsKey       string `name:"news-api-key" env:"NEWS_API_KEY" help:"News API Key"`
	StockKey      string `name:"stock-api-key" env:"ALPHAVANTAGE_API_KEY" help:"Alpha Vantage API Key"`
	WebSearchLive bool   `name:"web-search-live" env:"WEB_SEARCH_LIVE" help:"Query DuckDuckGo instead of demo results"`
	FilesRoot     string `name:"files-root" env:"FILES_ROOT" default:"." help:"Directory the file tool is confined to"`
	ToolsDir      string `name:"tools-dir" env:"TOOLS_DIR" default:"tools" help:"Directory of tool manifests"`
	Transcripts   string `name:"transcripts" env:"TRANSCRIPT_DIR" default:"." help:"Directory for saved conversations"`
}

type CLI struct {
	Globals

	// Commands
	Chat    ChatCmd       `cmd:"" default:"1" help:"Start a chat session"`
	Tools   ListToolsCmd  `cmd:"" help:"Return a list of tools"`
	Tool    RunToolCmd    `cmd:"" help:"Run a tool with JSON arguments"`
	Models  ListModelsCmd `cmd:"" help:"Return a list of models"`
	Version VersionCmd    `cmd:"" help:"Print version information"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	minTemperature = 0.0
	maxTemperature = 2.0
	minMaxTokens   = 1
	maxMaxTokens   = 128000
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Environment from .env overrides the process environment
	if err := godotenv.Overload(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "Error reading .env:", err)
		os.Exit(1)
	}

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Chatbot command line interface"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Configuration(kong.JSON, "~/.config/chatbot.json", ".chatbot.json"),
		kong.Vars{},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx

	// Logging and tracing
	cli.Globals.logger = newLogger(cli.Debug)
	cli.Globals.tracer = noop.NewTracerProvider().Tracer(execName())
	cli.Globals.clientopts = clientOpts(&cli)

	// Validate settings which apply to every command
	cmd.FatalIfErrorf(cli.Globals.validate())

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

func clientOpts(cli *CLI) []client.ClientOpt {
	result := []client.ClientOpt{}
	if cli.Debug {
		result = append(result, client.OptTrace(os.Stderr, cli.Verbose))
	}
	return result
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (g *Globals) validate() error {
	if g.Temperature < minTemperature || g.Temperature > maxTemperature {
		return chatbot.ErrBadParameter.Withf("temperature must be between %v and %v", minTemperature, maxTemperature)
	}
	if g.MaxTokens < minMaxTokens || g.MaxTokens > maxMaxTokens {
		return chatbot.ErrBadParameter.Withf("max tokens must be between %d and %d", minMaxTokens, maxMaxTokens)
	}
	if g.MaxRounds == 0 {
		return chatbot.ErrBadParameter.With("max rounds must be at least 1")
	}
	if g.Timeout < 0 {
		return chatbot.ErrBadParameter.With("timeout cannot be negative")
	}
	return nil
}
