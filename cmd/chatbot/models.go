package main

import (
	"fmt"

	// Packages
	openai "github.com/mutablelogic/go-chatbot/pkg/openai"
	table "github.com/mutablelogic/go-chatbot/pkg/ui/table"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ListModelsCmd struct {
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (*ListModelsCmd) Run(globals *Globals) error {
	generator, _, err := newGenerator(globals)
	if err != nil {
		return err
	}
	models, err := generator.ListModels(globals.ctx)
	if err != nil {
		return err
	}
	fmt.Println(table.Render(openai.ModelTable(models)))
	return nil
}
