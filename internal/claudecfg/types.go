package claudecfg

import (
	"encoding/json"
	"sort"

	"github.com/cockroachdb/errors"
)

// ServerEntry is one server registration in the Claude Desktop configuration.
// The desktop host launches Command with Args and the Env variables applied.
type ServerEntry struct {
	// Command is the executable the desktop host launches.
	Command string `json:"command"`

	// Args are command-line arguments passed to the command.
	// Always serialized, even when empty.
	Args []string `json:"args"`

	// Env contains environment variables passed to the server process.
	// Omitted entirely when no variables were supplied; downstream consumers
	// distinguish "no env" from "empty env object".
	Env map[string]string `json:"env,omitempty"`
}

// Config represents the root of the claude_desktop_config.json document.
//
// Server entries other than the one being modified are kept as raw JSON so
// fields this tool does not know about survive a round trip. Unknown
// top-level keys are preserved the same way.
type Config struct {
	servers       map[string]json.RawMessage
	unknownFields map[string]json.RawMessage
}

// NewConfig returns an empty configuration document.
func NewConfig() *Config {
	return &Config{
		servers: make(map[string]json.RawMessage),
	}
}

// SetServer adds or replaces the entry under name.
// Other entries and unrelated top-level keys are untouched.
func (c *Config) SetServer(name string, entry ServerEntry) error {
	if entry.Args == nil {
		entry.Args = []string{}
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "marshaling server entry")
	}
	if c.servers == nil {
		c.servers = make(map[string]json.RawMessage)
	}
	c.servers[name] = data
	return nil
}

// RemoveServer deletes the entry under name.
// Removing a non-existent entry is a no-op.
func (c *Config) RemoveServer(name string) {
	delete(c.servers, name)
}

// Server returns the decoded entry under name.
// The second return value is false when no entry exists.
func (c *Config) Server(name string) (ServerEntry, bool, error) {
	raw, ok := c.servers[name]
	if !ok {
		return ServerEntry{}, false, nil
	}
	var entry ServerEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return ServerEntry{}, true, errors.Wrapf(err, "parsing server entry %q", name)
	}
	return entry, true, nil
}

// ServerNames returns all registered server names in sorted order.
func (c *Config) ServerNames() []string {
	names := make([]string, 0, len(c.servers))
	for name := range c.servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered servers.
func (c *Config) Len() int {
	return len(c.servers)
}

// MarshalJSON implements json.Marshaler to include unknown fields in output.
func (c *Config) MarshalJSON() ([]byte, error) {
	// Build a map with all fields
	result := make(map[string]any)

	// Copy unknown fields first (so known fields take precedence)
	for k, v := range c.unknownFields {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, err
		}
		result[k] = val
	}

	servers := c.servers
	if servers == nil {
		servers = map[string]json.RawMessage{}
	}
	result["mcpServers"] = servers

	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler to capture unknown fields.
func (c *Config) UnmarshalJSON(data []byte) error {
	// First, unmarshal into a generic map to capture all fields
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// Extract the known field
	if serversData, ok := raw["mcpServers"]; ok {
		if err := json.Unmarshal(serversData, &c.servers); err != nil {
			return err
		}
		delete(raw, "mcpServers")
	}
	if c.servers == nil {
		c.servers = make(map[string]json.RawMessage)
	}

	// Store remaining fields as unknown
	if len(raw) > 0 {
		c.unknownFields = raw
	}

	return nil
}
