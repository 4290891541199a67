package strategy

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/mcpinstall/mcpinstall/internal/execx"
	"github.com/mcpinstall/mcpinstall/internal/paths"
)

// ClaudeCLI registers servers directly with a running Claude Code process
// via its `claude mcp` sub-commands. The registration is live: no restart
// of the host is needed.
type ClaudeCLI struct {
	runner execx.Runner
	bin    string
}

var _ Installer = (*ClaudeCLI)(nil)

// NewClaudeCLI creates the direct-registration back-end.
// An empty bin falls back to the default launcher name.
func NewClaudeCLI(runner execx.Runner, bin string) *ClaudeCLI {
	if bin == "" {
		bin = paths.LauncherBin
	}
	return &ClaudeCLI{runner: runner, bin: bin}
}

// Install implements Installer.
//
// Any existing registration under name is removed first so a re-install
// replaces rather than duplicates. The removal is advisory: it fails when
// the entry is absent, and that failure never blocks the add.
func (c *ClaudeCLI) Install(ctx context.Context, name, command string, args, env []string) error {
	_ = c.runner.Run(ctx, c.bin, "mcp", "remove", name)

	addArgs := []string{"mcp", "add", name, command}
	if len(args) > 0 {
		addArgs = append(addArgs, "--args")
		addArgs = append(addArgs, args...)
	}
	for _, assignment := range env {
		addArgs = append(addArgs, "--env", assignment)
	}

	if err := c.runner.Run(ctx, c.bin, addArgs...); err != nil {
		return errors.Wrapf(err, "registering %q with %s", name, c.bin)
	}
	return nil
}

// Method implements Installer.
func (c *ClaudeCLI) Method() string {
	return "claude mcp add"
}

// SuccessMessage implements Installer.
func (c *ClaudeCLI) SuccessMessage() string {
	return "The server is registered with Claude Code and available immediately."
}
