package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-chatbot/pkg/version"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCmd struct {
	Short bool `name:"short" help:"Print the version only"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *VersionCmd) Run(*Globals) error {
	if cmd.Short {
		fmt.Println(version.Version())
	} else {
		fmt.Println(string(version.JSON(execName())))
	}
	return nil
}
