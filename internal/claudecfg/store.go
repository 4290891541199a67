// Package claudecfg reads and writes the Claude Desktop configuration file.
package claudecfg

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/mcpinstall/mcpinstall/pkg/fileutil"
)

// Store provides read-modify-write access to a claude_desktop_config.json
// document at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for the configuration file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration from disk.
//
// A missing, unreadable, or malformed file yields an empty document rather
// than an error: the desktop host tolerates a fresh config, so install must
// never be blocked by a corrupt one.
func (s *Store) Load() *Config {
	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		return NewConfig()
	}

	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return NewConfig()
	}
	return cfg
}

// Save writes the configuration to disk atomically as pretty-printed JSON,
// creating the parent directory if needed. Write failures propagate.
func (s *Store) Save(cfg *Config) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}

	return errors.Wrap(fileutil.AtomicWriteJSON(s.path, cfg), "writing desktop config")
}

// Set adds or replaces the server entry under name and persists the document.
func (s *Store) Set(name string, entry ServerEntry) error {
	cfg := s.Load()
	if err := cfg.SetServer(name, entry); err != nil {
		return err
	}
	return s.Save(cfg)
}

// Remove deletes the server entry under name and persists the document.
// This operation is idempotent - removing a non-existent server does not error.
func (s *Store) Remove(name string) error {
	cfg := s.Load()
	cfg.RemoveServer(name)
	return s.Save(cfg)
}
