package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	// Packages
	chat "github.com/mutablelogic/go-chatbot/pkg/chat"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	ui "github.com/mutablelogic/go-chatbot/pkg/ui"
	command "github.com/mutablelogic/go-chatbot/pkg/ui/command"
	table "github.com/mutablelogic/go-chatbot/pkg/ui/table"
	term "github.com/mutablelogic/go-chatbot/pkg/ui/term"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ChatCmd struct {
	NoMarkdown bool   `name:"no-markdown" help:"Print replies without rendering markdown"`
	Width      int    `name:"width" help:"Wrap width for replies (default is the terminal width)"`
	Prompt     string `name:"prompt" default:"You: " help:"Input prompt"`
	Load       string `name:"load" help:"Continue a saved conversation"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	maxResultWidth = 80
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *ChatCmd) Run(globals *Globals) error {
	ctx := globals.ctx

	// Create a terminal
	opts := []term.Opt{
		term.WithPrompt(cmd.Prompt),
		term.WithCommands(command.Names()...),
		term.WithMarkdown(!cmd.NoMarkdown),
	}
	if cmd.Width > 0 {
		opts = append(opts, term.WithWidth(cmd.Width))
	}
	terminal, err := term.New(opts...)
	if err != nil {
		return err
	}
	defer terminal.Close()

	// Create the application, reporting tool calls as they happen
	app, report, err := newApp(ctx, globals, observer(ctx, terminal))
	if err != nil {
		return err
	}
	handler := command.New(app)

	// Banner
	config := app.Config()
	terminal.SendText(ctx, fmt.Sprintf("Using model %s (%s) with %d tool(s). Type help for commands.", config.Model, config.API, len(report.Registered)))
	if len(report.Warnings) > 0 {
		terminal.SendText(ctx, fmt.Sprintf("%d tool(s) failed to load:\n%s", len(report.Warnings), table.Render(schema.WarningTable(report.Warnings))))
	}
	if cmd.Load != "" {
		if err := handler.Handle(ctx, ui.Event{Type: ui.EventCommand, Context: terminal, Command: "load", Args: []string{cmd.Load}}); err != nil {
			return err
		}
	}

	// Read and answer events until the input ends
	for {
		evt, err := terminal.Receive(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			terminal.SendText(context.Background(), "\nGoodbye!")
			return nil
		} else if err != nil {
			return err
		}

		switch evt.Type {
		case ui.EventCommand:
			if err := handler.Handle(ctx, evt); errors.Is(err, command.ErrQuit) {
				return nil
			} else if err != nil {
				evt.Context.SendError(ctx, err)
			}
		case ui.EventText:
			if err := send(ctx, app.Session(), evt); err != nil {
				globals.logger.Debug("chat", "error", err)
			}
		}
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// send passes a message to the session and shows the reply. A reply which
// carries an error is shown as the reply text.
func send(ctx context.Context, session *chat.Session, evt ui.Event) error {
	evt.Context.SetTyping(ctx, true)
	reply, err := session.Chat(ctx, evt.Text)
	evt.Context.SetTyping(ctx, false)
	switch {
	case reply != nil:
		if err := evt.Context.SendMarkdown(ctx, reply.Text); err != nil {
			return err
		}
	case err != nil && ctx.Err() == nil:
		evt.Context.SendError(ctx, err)
	}
	return err
}

func observer(ctx context.Context, out ui.Context) chat.Observer {
	return chat.ObserverFuncs{
		ToolCall: func(call schema.ToolCall) {
			out.SendText(ctx, fmt.Sprintf("-> %s %s", call.Name, table.Truncate(string(call.Arguments), maxResultWidth)))
		},
		ToolResult: func(call schema.ToolCall, result *schema.Turn) {
			if result.IsError {
				out.SendText(ctx, fmt.Sprintf("<- %s failed: %s", call.Name, table.Truncate(result.Text, maxResultWidth)))
			} else {
				out.SendText(ctx, fmt.Sprintf("<- %s: %s", call.Name, table.Truncate(result.Text, maxResultWidth)))
			}
		},
	}
}
