package main

import (
	"encoding/json"
	"fmt"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	table "github.com/mutablelogic/go-chatbot/pkg/ui/table"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ListToolsCmd struct {
	Details bool `name:"details" help:"Show the parameters of each tool"`
	JSON    bool `name:"json" help:"Output the tool definitions sent to the model"`
}

type RunToolCmd struct {
	Name string `arg:"" help:"Tool name"`
	Args string `arg:"" optional:"" default:"{}" help:"Arguments as a JSON object"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *ListToolsCmd) Run(globals *Globals) error {
	registry, report, err := discover(globals.ctx, globals)
	if err != nil {
		return err
	}

	// Definitions as JSON
	if cmd.JSON {
		data, err := json.MarshalIndent(registry.Schema(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	// Tables
	fmt.Println(table.Render(schema.ToolTable(registry.Specs())))
	if cmd.Details {
		for _, spec := range registry.Specs() {
			if len(spec.Parameters) == 0 {
				continue
			}
			fmt.Printf("\n%s\n", spec.Name)
			fmt.Println(table.Render(schema.ParameterTable(spec)))
		}
	}
	if len(report.Warnings) > 0 {
		fmt.Printf("\n%d tool(s) failed to load:\n", len(report.Warnings))
		fmt.Println(table.Render(schema.WarningTable(report.Warnings)))
	}
	return nil
}

func (cmd *RunToolCmd) Run(globals *Globals) error {
	registry, _, err := discover(globals.ctx, globals)
	if err != nil {
		return err
	}
	if !json.Valid([]byte(cmd.Args)) {
		return chatbot.ErrBadParameter.Withf("arguments are not valid JSON: %q", cmd.Args)
	}
	result, err := registry.Call(globals.ctx, schema.ToolCall{
		ID:        "cli",
		Name:      cmd.Name,
		Arguments: json.RawMessage(cmd.Args),
	})
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}
