// Package strategy implements the two mutually exclusive installation
// back-ends and the probe that selects between them at startup.
package strategy

import (
	"context"
)

// Installer registers an MCP server with a consuming Claude host.
//
// Exactly two implementations exist: ClaudeCLI registers with a running
// Claude Code process immediately, ConfigFile persists the entry for Claude
// Desktop to read on its next start. The set is closed; callers select one
// variant per process via Detect and thread it through explicitly.
type Installer interface {
	// Install registers name as a server launched by command with args.
	// env entries are KEY=VALUE assignment strings.
	Install(ctx context.Context, name, command string, args, env []string) error

	// Method returns a human-readable name of the installation back-end.
	Method() string

	// SuccessMessage returns post-install guidance for the user.
	SuccessMessage() string
}
