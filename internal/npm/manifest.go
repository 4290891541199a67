package npm

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	xerrors "github.com/mcpinstall/mcpinstall/internal/errors"
	"github.com/mcpinstall/mcpinstall/pkg/fileutil"
)

// ManifestName is the package manifest file name.
const ManifestName = "package.json"

// BinField holds a manifest's declared binaries. npm allows either a map of
// binary name to path or a bare string, which declares a single binary named
// after the package itself.
type BinField struct {
	entries map[string]string
	single  string
}

// UnmarshalJSON implements json.Unmarshaler for both bin forms.
func (b *BinField) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err == nil {
		b.entries = m
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.single = s
		return nil
	}

	return errors.New("bin must be a string or an object of name to path")
}

// Manifest is the subset of package.json this installer inspects.
type Manifest struct {
	// Name is the package's own name.
	Name string `json:"name"`

	// Bin declares named executables, resolved relative to the package root.
	Bin BinField `json:"bin"`

	// Main is the package's entry module, resolved relative to the package root.
	Main string `json:"main"`
}

// ReadManifest parses the package.json in dir.
// Returns ErrNoManifest if the file does not exist.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(xerrors.ErrNoManifest, "in %s", dir)
		}
		return nil, errors.Wrapf(err, "checking %s", path)
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return &m, nil
}

// ResolveEntryPoints discovers the installable entry points of the local
// package in dir, keyed by name with absolute resolved paths as values.
//
// The directory must contain a package manifest; its dependencies are
// installed first as a prerequisite. Declared binaries win over the main
// module; a package with neither yields an empty map, which callers treat as
// "nothing to install" rather than a failure.
func (c *Client) ResolveEntryPoints(ctx context.Context, dir string) (map[string]string, error) {
	// Manifest existence gates everything else; without it the layout is
	// unsupported and running npm install would be meaningless.
	if _, err := os.Stat(filepath.Join(dir, ManifestName)); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(xerrors.ErrNoManifest, "in %s", dir)
		}
		return nil, errors.Wrapf(err, "checking manifest in %s", dir)
	}

	if err := c.InstallDeps(ctx, dir); err != nil {
		return nil, errors.Wrapf(err, "installing dependencies in %s", dir)
	}

	m, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]string)

	switch {
	case len(m.Bin.entries) > 0:
		for name, rel := range m.Bin.entries {
			abs, err := resolveInDir(dir, rel)
			if err != nil {
				return nil, err
			}
			entries[name] = abs
		}

	case m.Bin.single != "":
		abs, err := resolveInDir(dir, m.Bin.single)
		if err != nil {
			return nil, err
		}
		entries[m.entryName(dir)] = abs

	case m.Main != "":
		abs, err := resolveInDir(dir, m.Main)
		if err != nil {
			return nil, err
		}
		entries[m.entryName(dir)] = abs
	}

	return entries, nil
}

// entryName returns the key for a single-entry-point package: the package's
// own name, falling back to the directory name when the manifest omits it.
func (m *Manifest) entryName(dir string) string {
	if m.Name != "" {
		return m.Name
	}
	return filepath.Base(dir)
}

func resolveInDir(dir, rel string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(dir, rel))
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s in %s", rel, dir)
	}
	return abs, nil
}
