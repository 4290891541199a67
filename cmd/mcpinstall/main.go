// Package main is the entry point for the mcpinstall CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	cerrors "github.com/cockroachdb/errors"

	"github.com/mcpinstall/mcpinstall/cmd/mcpinstall/commands"
	"github.com/mcpinstall/mcpinstall/internal/errors"
	"github.com/mcpinstall/mcpinstall/internal/logging"
)

func main() {
	// Anything logged before flag parsing goes through the redacting handler.
	slog.SetDefault(logging.Default())

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		code := errors.ExitSystem
		var exitErr *errors.ExitError
		if cerrors.As(err, &exitErr) {
			if exitErr.Suggestion != "" {
				fmt.Fprintln(os.Stderr, "Suggestion:", exitErr.Suggestion)
			}
			code = exitErr.Code
		}
		os.Exit(code)
	}
}
