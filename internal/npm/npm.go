// Package npm wraps the Node.js package ecosystem tooling: runtime and
// package-runner probes, registry lookups, dependency installation, and
// package manifest inspection.
package npm

import (
	"context"
	"strings"

	"github.com/mcpinstall/mcpinstall/internal/execx"
	"github.com/mcpinstall/mcpinstall/internal/paths"
)

// Tools holds the binary names of the external tools the client invokes.
// Zero values fall back to the defaults in the paths package.
type Tools struct {
	Node string
	Npm  string
	Npx  string
	Uvx  string
}

// DefaultTools returns the standard binary names.
func DefaultTools() Tools {
	return Tools{
		Node: paths.NodeBin,
		Npm:  paths.NpmBin,
		Npx:  paths.NpxBin,
		Uvx:  paths.UvxBin,
	}
}

func (t Tools) withDefaults() Tools {
	d := DefaultTools()
	if t.Node == "" {
		t.Node = d.Node
	}
	if t.Npm == "" {
		t.Npm = d.Npm
	}
	if t.Npx == "" {
		t.Npx = d.Npx
	}
	if t.Uvx == "" {
		t.Uvx = d.Uvx
	}
	return t
}

// Client probes and drives the package ecosystem tools through a Runner.
type Client struct {
	runner execx.Runner
	tools  Tools
}

// NewClient creates a client that invokes the given tools through runner.
func NewClient(runner execx.Runner, tools Tools) *Client {
	return &Client{
		runner: runner,
		tools:  tools.withDefaults(),
	}
}

// Tools returns the resolved binary names the client invokes.
func (c *Client) Tools() Tools {
	return c.tools
}

// HasNode reports whether the Node.js runtime is available.
func (c *Client) HasNode(ctx context.Context) bool {
	return c.runner.Run(ctx, c.tools.Node, "--version") == nil
}

// HasUvx reports whether the uvx package runner is available.
func (c *Client) HasUvx(ctx context.Context) bool {
	return c.runner.Run(ctx, c.tools.Uvx, "--version") == nil
}

// PackageExists reports whether name resolves as a fetchable package on the
// npm registry. Any lookup failure is treated as "not found" - the caller
// falls through to the secondary ecosystem rather than erroring.
func (c *Client) PackageExists(ctx context.Context, name string) bool {
	_, err := c.runner.Output(ctx, c.tools.Npm, "view", name, "version")
	return err == nil
}

// InstallDeps installs the dependencies of the package in dir.
// This can take substantial wall-clock time; failures propagate.
func (c *Client) InstallDeps(ctx context.Context, dir string) error {
	return c.runner.RunInDir(ctx, dir, c.tools.Npm, "install")
}

// NormalizeName derives a short server identifier from a package name.
// Scoped names like "@scope/rest" normalize to "rest"; anything else is
// returned unchanged.
func NormalizeName(name string) string {
	if !strings.HasPrefix(name, "@") {
		return name
	}
	if i := strings.Index(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
