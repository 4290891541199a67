// Package execx wraps external process invocation behind a small interface
// so commands can be faked in tests.
package execx

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Runner executes external commands. Every process the installer spawns
// (capability probes, registry lookups, dependency installs, CLI registration)
// goes through a Runner so tests can substitute a fake.
type Runner interface {
	// Run executes the command and discards its output.
	// A non-zero exit or spawn failure is returned as an error.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes the command and returns its trimmed stdout.
	// Stderr is folded into the error on failure.
	Output(ctx context.Context, name string, args ...string) (string, error)

	// RunInDir executes the command with the working directory set to dir.
	RunInDir(ctx context.Context, dir, name string, args ...string) error
}

// System is a Runner backed by os/exec.
type System struct{}

var _ Runner = System{}

// NewSystem returns a Runner that executes real processes.
func NewSystem() System {
	return System{}
}

// Run implements Runner.
func (System) Run(ctx context.Context, name string, args ...string) error {
	_, err := runCmd(ctx, "", name, args...)
	return err
}

// Output implements Runner.
func (System) Output(ctx context.Context, name string, args ...string) (string, error) {
	return runCmd(ctx, "", name, args...)
}

// RunInDir implements Runner.
func (System) RunInDir(ctx context.Context, dir, name string, args ...string) error {
	_, err := runCmd(ctx, dir, name, args...)
	return err
}

// runCmd executes the command and returns its trimmed stdout.
// Stderr is captured and folded into the returned error so diagnostics from
// failed tools (npm, claude) reach the caller.
func runCmd(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", errors.Wrapf(err, "running %s: %s", name, detail)
		}
		return "", errors.Wrapf(err, "running %s", name)
	}
	return strings.TrimSpace(stdout.String()), nil
}
