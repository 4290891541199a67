// Package installer orchestrates server installation: it checks runtime
// preconditions, resolves what to run, and delegates registration to the
// selected back-end.
package installer

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	xerrors "github.com/mcpinstall/mcpinstall/internal/errors"
	"github.com/mcpinstall/mcpinstall/internal/npm"
	"github.com/mcpinstall/mcpinstall/internal/strategy"
)

// Result reports a completed install for rendering by the CLI and the MCP
// tool handlers.
type Result struct {
	// Servers lists the names registered, in install order.
	Servers []string

	// Message is the human-readable summary, including how the install was
	// performed and what the user must do next.
	Message string
}

// Service runs installs against a single back-end chosen at startup.
type Service struct {
	backend strategy.Installer
	npm     *npm.Client
}

// NewService creates an orchestrator delegating to backend, with client
// driving the ecosystem tools.
func NewService(backend strategy.Installer, client *npm.Client) *Service {
	return &Service{backend: backend, npm: client}
}

// InstallPackage installs a published package as an MCP server.
//
// Node.js must be present. The npm registry is consulted first; when the
// package is not fetchable there, uvx carries it instead, so both Node and
// Python ecosystem servers install through the same call. Exactly one
// ecosystem is used per call.
func (s *Service) InstallPackage(ctx context.Context, name string, args, env []string) (*Result, error) {
	if name == "" {
		return nil, errors.Wrap(xerrors.ErrMissingName, "package name is required")
	}
	if !s.npm.HasNode(ctx) {
		return nil, errors.Wrap(xerrors.ErrNodeNotFound,
			"Node.js is required; install it from https://nodejs.org/")
	}

	serverName := npm.NormalizeName(name)
	tools := s.npm.Tools()

	var command string
	if s.npm.PackageExists(ctx, name) {
		command = tools.Npx
	} else {
		if !s.npm.HasUvx(ctx) {
			return nil, errors.Wrapf(xerrors.ErrUvxNotFound,
				"%q was not found on the npm registry and uvx is unavailable; install uv from https://docs.astral.sh/uv/", name)
		}
		command = tools.Uvx
	}

	runArgs := append([]string{name}, args...)
	if err := s.backend.Install(ctx, serverName, command, runArgs, env); err != nil {
		return nil, errors.Wrapf(err, "installing %q", serverName)
	}

	return &Result{
		Servers: []string{serverName},
		Message: fmt.Sprintf("Installed %s via %s. %s",
			serverName, s.backend.Method(), s.backend.SuccessMessage()),
	}, nil
}

// InstallLocal installs every entry point of a local package clone as an MCP
// server, each launched with the Node runtime and its absolute script path.
//
// Entries install sequentially in name order. The first failure halts the
// loop and reports which entry failed and which were already registered;
// earlier registrations are not rolled back.
func (s *Service) InstallLocal(ctx context.Context, dir string, args, env []string) (*Result, error) {
	if dir == "" {
		return nil, errors.Wrap(xerrors.ErrPathNotFound, "path is required")
	}
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(xerrors.ErrPathNotFound, "%s", dir)
		}
		return nil, errors.Wrapf(err, "checking %s", dir)
	}

	entries, err := s.npm.ResolveEntryPoints(ctx, dir)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &Result{Message: fmt.Sprintf("Nothing to install: %s declares no bin or main entry point.", dir)}, nil
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	node := s.npm.Tools().Node
	var installed []string
	for _, name := range names {
		runArgs := append([]string{entries[name]}, args...)
		if err := s.backend.Install(ctx, name, node, runArgs, env); err != nil {
			if len(installed) > 0 {
				return nil, errors.Wrapf(err, "installing %q (already installed: %s)",
					name, strings.Join(installed, ", "))
			}
			return nil, errors.Wrapf(err, "installing %q", name)
		}
		installed = append(installed, name)
	}

	return &Result{
		Servers: installed,
		Message: fmt.Sprintf("Installed %s via %s. %s",
			strings.Join(installed, ", "), s.backend.Method(), s.backend.SuccessMessage()),
	}, nil
}
