package main

import (
	"context"
	"strings"
	"sync"

	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
	chat "github.com/mutablelogic/go-chatbot/pkg/chat"
	openai "github.com/mutablelogic/go-chatbot/pkg/openai"
	opt "github.com/mutablelogic/go-chatbot/pkg/opt"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	store "github.com/mutablelogic/go-chatbot/pkg/store"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
	tools "github.com/mutablelogic/go-chatbot/pkg/tools"
	command "github.com/mutablelogic/go-chatbot/pkg/ui/command"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// app holds the generator, tools and session for the chat command
type app struct {
	sync.Mutex
	globals     *Globals
	config      command.Config
	generator   *openai.Client
	transcripts *store.Transcripts
	observer    chat.Observer
	session     *chat.Session
}

var _ command.Client = (*app)(nil)
var _ chat.Generator = (*openai.Client)(nil)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	openAIEndpoint   = "https://api.openai.com/v1"
	openAIModel      = "gpt-4o-mini"
	openRouterModel  = "openai/gpt-4o-mini"
	apiOpenAI        = "OpenAI"
	apiOpenRouter    = "OpenRouter"
	openRouterDomain = "openrouter.ai"
)

const defaultSystemPrompt = `You are a helpful AI assistant with access to tools and real-time data.

Available tools:
- calculator: evaluate mathematical expressions, including trigonometry and logarithms
- datetime: current time, timezone conversion, date arithmetic and differences
- file_operations: read, write and list files, get file information and check existence
- weather: current weather for a city
- news: latest headlines by category
- stock: stock quotes and company information
- web_search: search the web for current information

Use a tool whenever it gives a more accurate or more current answer, for
example for real-time data or calculations. Format responses clearly with
relevant details.`

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// newGenerator returns the model client. OpenRouter is used when its key is
// set, otherwise OpenAI.
func newGenerator(globals *Globals) (*openai.Client, command.Config, error) {
	config := command.Config{
		Model:        strings.TrimSpace(globals.Model),
		MaxTokens:    globals.MaxTokens,
		Temperature:  globals.Temperature,
		SystemPrompt: globals.SystemPrompt,
		MaxRounds:    globals.MaxRounds,
		Retries:      globals.Retries,
		Timeout:      globals.Timeout,
		Transcripts:  globals.Transcripts,
	}
	if strings.TrimSpace(config.SystemPrompt) == "" {
		config.SystemPrompt = defaultSystemPrompt
	}

	opts := append([]client.ClientOpt{}, globals.clientopts...)
	if globals.BaseURL != "" {
		opts = append(opts, client.OptEndpoint(globals.BaseURL))
	}

	var generator *openai.Client
	var err error
	switch {
	case strings.TrimSpace(globals.OpenRouterKey) != "":
		config.BaseURL = openai.OpenRouterEndpoint
		if config.Model == "" {
			config.Model = openRouterModel
		}
		generator, err = openai.NewOpenRouter(globals.OpenRouterKey, globals.Referer, globals.Title, opts...)
	case strings.TrimSpace(globals.OpenAIKey) != "":
		config.BaseURL = openAIEndpoint
		if config.Model == "" {
			config.Model = openAIModel
		}
		generator, err = openai.New(globals.OpenAIKey, opts...)
	default:
		return nil, config, chatbot.ErrBadParameter.With("set OPENROUTER_API_KEY or OPENAI_API_KEY")
	}
	if err != nil {
		return nil, config, err
	}
	if globals.BaseURL != "" {
		config.BaseURL = globals.BaseURL
	}
	config.API = apiName(config.BaseURL)

	// Return success
	return generator, config, nil
}

// newApp discovers the tools and creates the first session
func newApp(ctx context.Context, globals *Globals, observer chat.Observer) (*app, *tool.Report, error) {
	generator, config, err := newGenerator(globals)
	if err != nil {
		return nil, nil, err
	}
	transcripts, err := store.NewTranscripts(globals.Transcripts)
	if err != nil {
		return nil, nil, err
	}
	a := &app{
		globals:     globals,
		config:      config,
		generator:   generator,
		transcripts: transcripts,
		observer:    observer,
	}
	report, err := a.Reset(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a, report, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (a *app) Session() *chat.Session {
	a.Lock()
	defer a.Unlock()
	return a.session
}

func (a *app) Config() command.Config {
	return a.config
}

func (a *app) Save(context.Context) (string, error) {
	return a.transcripts.Save(schema.NewTranscript(a.Session().Conversation(), a.config.Model, a.config.API))
}

func (a *app) Transcripts() ([]store.Entry, error) {
	return a.transcripts.List()
}

// Load replaces the session with one continuing a saved conversation
func (a *app) Load(_ context.Context, name string) (*schema.Transcript, error) {
	transcript, err := a.transcripts.Load(name)
	if err != nil {
		return nil, err
	}

	a.Lock()
	defer a.Unlock()
	session, err := a.newSession(a.session.Registry(), chat.WithConversation(transcript.Conversation))
	if err != nil {
		return nil, err
	}
	a.session = session
	return transcript, nil
}

// Reset discovers the tools again and replaces the session
func (a *app) Reset(ctx context.Context) (*tool.Report, error) {
	registry, report, err := discover(ctx, a.globals)
	if err != nil {
		return nil, err
	}

	a.Lock()
	defer a.Unlock()
	session, err := a.newSession(registry)
	if err != nil {
		return nil, err
	}
	a.session = session
	return report, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (a *app) newSession(registry *tool.Registry, opts ...chat.Opt) (*chat.Session, error) {
	g := a.globals
	opts = append([]chat.Opt{
		chat.WithLogger(g.logger.With("component", "chat")),
		chat.WithTracer(g.tracer),
		chat.WithMaxRounds(g.MaxRounds),
		chat.WithRetries(g.Retries),
		chat.WithTimeout(g.Timeout),
		chat.WithParallelTools(g.ParallelTools),
		chat.WithGenerateOpts(
			opt.WithModel(a.config.Model),
			opt.WithTemperature(a.config.Temperature),
			opt.WithMaxTokens(a.config.MaxTokens),
			opt.WithSystemPrompt(a.config.SystemPrompt),
		),
	}, opts...)
	if a.observer != nil {
		opts = append(opts, chat.WithObserver(a.observer))
	}
	return chat.New(a.generator, registry, opts...)
}

// discover registers the builtin tools and any manifests in the tools
// directory
func discover(ctx context.Context, globals *Globals) (*tool.Registry, *tool.Report, error) {
	registry, err := tool.New(tool.WithLogger(globals.logger.With("component", "tools")))
	if err != nil {
		return nil, nil, err
	}
	sources := []tool.Source{
		tools.Builtin(tools.Config{
			WeatherKey:    globals.WeatherKey,
			NewsKey:       globals.NewsKey,
			StockKey:      globals.StockKey,
			FilesRoot:     globals.FilesRoot,
			WebSearchLive: globals.WebSearchLive,
			ClientOpts:    globals.clientopts,
		}),
	}
	if globals.ToolsDir != "" {
		sources = append(sources, tool.ManifestDir(globals.ToolsDir))
	}
	return registry, registry.Discover(ctx, sources...), nil
}

func apiName(baseURL string) string {
	if strings.Contains(baseURL, openRouterDomain) {
		return apiOpenRouter
	}
	return apiOpenAI
}
