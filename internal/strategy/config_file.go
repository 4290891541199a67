package strategy

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mcpinstall/mcpinstall/internal/claudecfg"
)

// ConfigFile persists server registrations into the Claude Desktop
// configuration file. The desktop host reads the file on startup, so the
// registration takes effect after a restart.
type ConfigFile struct {
	store *claudecfg.Store
}

var _ Installer = (*ConfigFile)(nil)

// NewConfigFile creates the config-file back-end writing through store.
func NewConfigFile(store *claudecfg.Store) *ConfigFile {
	return &ConfigFile{store: store}
}

// Install implements Installer.
//
// The entry under name is replaced wholesale; unrelated keys and sibling
// entries in the file survive. A missing or corrupt file starts from an
// empty document. Write failures propagate.
func (c *ConfigFile) Install(ctx context.Context, name, command string, args, env []string) error {
	entry := claudecfg.ServerEntry{
		Command: command,
		Args:    args,
		Env:     parseAssignments(env),
	}

	if err := c.store.Set(name, entry); err != nil {
		return errors.Wrapf(err, "persisting %q", name)
	}
	return nil
}

// Method implements Installer.
func (c *ConfigFile) Method() string {
	return "configuration file"
}

// SuccessMessage implements Installer.
func (c *ConfigFile) SuccessMessage() string {
	return "The server was added to the Claude Desktop configuration. Restart Claude Desktop for it to take effect."
}

// parseAssignments converts KEY=VALUE strings into a map, splitting on the
// first "=" so values may themselves contain "=". Returns nil for an empty
// list so the env field is omitted from the persisted entry.
func parseAssignments(env []string) map[string]string {
	if len(env) == 0 {
		return nil
	}

	m := make(map[string]string, len(env))
	for _, assignment := range env {
		key, value, _ := strings.Cut(assignment, "=")
		m[key] = value
	}
	return m
}
