// Package main provides the entry point for the snakegym CLI.
package main

import (
	"context"
	"os"

	"snakegym/internal/cli"
	"snakegym/internal/logging"
)

func main() {
	app := cli.New()

	if err := app.Execute(context.Background()); err != nil {
		logging.NewEvent(logging.Get().Error()).
			Add(logging.Component("cli"), logging.ErrorField(err)).
			Msg("command failed")
		os.Exit(1)
	}
}
