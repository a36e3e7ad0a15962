// Package command implements the reserved REPL commands of the chatbot.
//
// The [Handler] processes commands such as tools, stats, save and reset
// against a [Client] and answers through the ui.Context of the event, so
// commands never pass through the chat loop.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	// Packages
	humanize "github.com/dustin/go-humanize"
	chat "github.com/mutablelogic/go-chatbot/pkg/chat"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	store "github.com/mutablelogic/go-chatbot/pkg/store"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
	ui "github.com/mutablelogic/go-chatbot/pkg/ui"
	table "github.com/mutablelogic/go-chatbot/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is the application state the commands operate on
type Client interface {
	// Session returns the current chat session
	Session() *chat.Session

	// Config returns the settings the session was created with
	Config() Config

	// Save writes a transcript of the conversation and returns its path
	Save(ctx context.Context) (string, error)

	// Transcripts lists saved transcripts, most recent first
	Transcripts() ([]store.Entry, error)

	// Load replaces the conversation with a saved transcript
	Load(ctx context.Context, name string) (*schema.Transcript, error)

	// Reset rediscovers the tools and starts a new session
	Reset(ctx context.Context) (*tool.Report, error)
}

// Config describes the model settings for display
type Config struct {
	Model        string
	API          string
	BaseURL      string
	MaxTokens    uint
	Temperature  float64
	SystemPrompt string
	MaxRounds    uint
	Retries      uint
	Timeout      time.Duration
	Transcripts  string
}

// Handler processes reserved commands
type Handler struct {
	client Client
}

type command struct {
	name, usage, description string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// ErrQuit is returned by Handle when the user asks to leave
var ErrQuit = errors.New("quit")

var commands = []command{
	{"help", "help", "Show this help"},
	{"tools", "tools", "List available tools"},
	{"tool-details", "tool-details", "Show the parameters of every tool"},
	{"clear", "clear", "Clear the conversation"},
	{"stats", "stats", "Show session statistics"},
	{"save", "save", "Save the conversation to a file"},
	{"transcripts", "transcripts", "List saved conversations"},
	{"load", "/load <name>", "Continue a saved conversation"},
	{"config", "config", "Show the model configuration"},
	{"reset", "reset", "Reload the tools and clear the conversation"},
	{"quit", "quit, exit", "Leave the chatbot"},
	{"exit", "", ""},
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a command handler for a client
func New(client Client) *Handler {
	return &Handler{client: client}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Names returns the reserved command words
func Names() []string {
	result := make([]string, 0, len(commands))
	for _, cmd := range commands {
		result = append(result, cmd.name)
	}
	return result
}

// Handle processes a command event. It returns ErrQuit for quit and exit.
func (h *Handler) Handle(ctx context.Context, evt ui.Event) error {
	switch evt.Command {
	case "help":
		return h.cmdHelp(ctx, evt)
	case "tools":
		return h.cmdTools(ctx, evt)
	case "tool-details":
		return h.cmdToolDetails(ctx, evt)
	case "clear":
		return h.cmdClear(ctx, evt)
	case "stats":
		return h.cmdStats(ctx, evt)
	case "save":
		return h.cmdSave(ctx, evt)
	case "transcripts":
		return h.cmdTranscripts(ctx, evt)
	case "load":
		return h.cmdLoad(ctx, evt)
	case "config":
		return h.cmdConfig(ctx, evt)
	case "reset":
		return h.cmdReset(ctx, evt)
	case "quit", "exit":
		return h.cmdQuit(ctx, evt)
	default:
		return fmt.Errorf("unknown command: %s (try help)", evt.Command)
	}
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (h *Handler) cmdHelp(ctx context.Context, evt ui.Event) error {
	var buf strings.Builder
	buf.WriteString("Available commands:\n\n")
	for _, cmd := range commands {
		if cmd.usage == "" {
			continue
		}
		fmt.Fprintf(&buf, "  %-16s %s\n", cmd.usage, cmd.description)
	}
	names := h.client.Session().Registry().Names()
	fmt.Fprintf(&buf, "\nAvailable tools: %s\n", strings.Join(names, ", "))
	buf.WriteString("\nAnything else is sent to the model.")
	return evt.Context.SendText(ctx, buf.String())
}

func (h *Handler) cmdTools(ctx context.Context, evt ui.Event) error {
	registry := h.client.Session().Registry()
	if registry.Len() == 0 {
		return evt.Context.SendText(ctx, "No tools available")
	}
	out := table.Render(schema.ToolTable(registry.Specs()))
	if warnings := registry.Warnings(); len(warnings) > 0 {
		out += fmt.Sprintf("\n%d tool(s) failed to load:\n", len(warnings)) + table.Render(schema.WarningTable(warnings))
	}
	return evt.Context.SendText(ctx, out)
}

func (h *Handler) cmdToolDetails(ctx context.Context, evt ui.Event) error {
	specs := h.client.Session().Registry().Specs()
	if len(specs) == 0 {
		return evt.Context.SendText(ctx, "No tools available")
	}
	var buf strings.Builder
	for i, spec := range specs {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "%s: %s\n", spec.Name, spec.Description)
		if len(spec.Parameters) == 0 {
			buf.WriteString("  (no parameters)\n")
			continue
		}
		buf.WriteString(table.Render(schema.ParameterTable(spec)))
		buf.WriteString("\n")
	}
	return evt.Context.SendText(ctx, buf.String())
}

func (h *Handler) cmdClear(ctx context.Context, evt ui.Event) error {
	h.client.Session().Reset()
	return evt.Context.SendText(ctx, "Conversation cleared")
}

func (h *Handler) cmdStats(ctx context.Context, evt ui.Event) error {
	session := h.client.Session()
	config := h.client.Config()
	conversation := session.Conversation()
	stats := session.Stats()
	registry := session.Registry().Stats()
	return evt.Context.SendText(ctx, table.Render(schema.PropertyTable{
		{Key: "Messages", Value: stats.Messages},
		{Key: "Turns", Value: conversation.Len()},
		{Key: "Model", Value: config.Model},
		{Key: "API", Value: config.API},
		{Key: "Tools", Value: fmt.Sprintf("%d (%d parameters, %d required)", registry.Tools, registry.Parameters, registry.Required)},
		{Key: "Discovery errors", Value: registry.Warnings},
		{Key: "Model calls", Value: stats.ModelCalls},
		{Key: "Retries", Value: stats.Retries},
		{Key: "Tool calls", Value: stats.ToolCalls},
		{Key: "Tool errors", Value: stats.ToolErrors},
		{Key: "Tokens", Value: humanize.Comma(int64(stats.Tokens))},
		{Key: "Started", Value: humanize.Time(conversation.Created)},
	}))
}

func (h *Handler) cmdSave(ctx context.Context, evt ui.Event) error {
	if h.client.Session().Conversation().Len() == 0 {
		return evt.Context.SendText(ctx, "Nothing to save")
	}
	path, err := h.client.Save(ctx)
	if err != nil {
		return err
	}
	return evt.Context.SendText(ctx, fmt.Sprintf("Conversation saved to %s", path))
}

func (h *Handler) cmdTranscripts(ctx context.Context, evt ui.Event) error {
	entries, err := h.client.Transcripts()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return evt.Context.SendText(ctx, "No saved conversations")
	}
	return evt.Context.SendText(ctx, table.Render(transcriptTable(entries)))
}

func (h *Handler) cmdLoad(ctx context.Context, evt ui.Event) error {
	if len(evt.Args) != 1 {
		return fmt.Errorf("usage: /load <name>")
	}
	transcript, err := h.client.Load(ctx, evt.Args[0])
	if err != nil {
		return err
	}
	return evt.Context.SendText(ctx, fmt.Sprintf("Loaded %s (%d messages, %d turns)", evt.Args[0], transcript.Metadata.MessageCount, transcript.Conversation.Len()))
}

func (h *Handler) cmdConfig(ctx context.Context, evt ui.Event) error {
	config := h.client.Config()
	timeout := "none"
	if config.Timeout > 0 {
		timeout = config.Timeout.String()
	}
	return evt.Context.SendText(ctx, table.Render(schema.PropertyTable{
		{Key: "Model", Value: config.Model},
		{Key: "API", Value: config.API},
		{Key: "Base URL", Value: config.BaseURL},
		{Key: "Max tokens", Value: config.MaxTokens},
		{Key: "Temperature", Value: fmt.Sprint(config.Temperature)},
		{Key: "System prompt", Value: fmt.Sprintf("%d characters", len(config.SystemPrompt))},
		{Key: "Tool rounds", Value: config.MaxRounds},
		{Key: "Retries", Value: fmt.Sprint(config.Retries)},
		{Key: "Timeout", Value: timeout},
		{Key: "Transcripts", Value: config.Transcripts},
	}))
}

func (h *Handler) cmdReset(ctx context.Context, evt ui.Event) error {
	report, err := h.client.Reset(ctx)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Reloaded %d tool(s), conversation cleared", len(report.Registered))
	if n := len(report.Warnings); n > 0 {
		msg += fmt.Sprintf(" (%d failed to load)", n)
	}
	return evt.Context.SendText(ctx, msg)
}

func (h *Handler) cmdQuit(ctx context.Context, evt ui.Event) error {
	if err := evt.Context.SendText(ctx, "Goodbye!"); err != nil {
		return err
	}
	return ErrQuit
}

///////////////////////////////////////////////////////////////////////////////
// TABLES

type transcriptTable []store.Entry

func (t transcriptTable) Header() []string {
	return []string{"NAME", "SAVED", "MESSAGES", "MODEL", "API"}
}

func (t transcriptTable) Len() int {
	return len(t)
}

func (t transcriptTable) Row(i int) []any {
	e := t[i]
	return []any{table.Bold{Value: e.Name}, humanize.Time(e.Meta.Timestamp), e.Meta.MessageCount, e.Meta.Model, e.Meta.API}
}
