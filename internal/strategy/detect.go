package strategy

import (
	"context"
	"log/slog"

	"github.com/mcpinstall/mcpinstall/internal/claudecfg"
	"github.com/mcpinstall/mcpinstall/internal/execx"
	"github.com/mcpinstall/mcpinstall/internal/paths"
)

// Mode pins which install back-end to use. ModeAuto probes for the launcher
// binary and picks the CLI back-end when it responds.
type Mode string

const (
	ModeAuto       Mode = "auto"
	ModeClaudeCLI  Mode = "claude-cli"
	ModeConfigFile Mode = "config-file"
)

// Options tunes back-end selection. Zero values mean defaults: the claude
// binary from PATH and the platform desktop configuration path.
type Options struct {
	// Launcher overrides the binary probed and invoked by the CLI back-end.
	Launcher string

	// ConfigPath overrides where the config-file back-end writes.
	ConfigPath string

	// Mode skips probing when set to something other than ModeAuto.
	Mode Mode
}

// Detect selects the install back-end. The choice is made once per process
// and never fails: when the launcher probe errors for any reason, the
// config-file back-end is used.
func Detect(ctx context.Context, runner execx.Runner, opts Options) Installer {
	launcher := opts.Launcher
	if launcher == "" {
		launcher = paths.LauncherBin
	}

	switch opts.Mode {
	case ModeClaudeCLI:
		return NewClaudeCLI(runner, launcher)
	case ModeConfigFile:
		return newConfigFileBackend(opts.ConfigPath)
	}

	if err := runner.Run(ctx, launcher, "--version"); err != nil {
		slog.Debug("launcher probe failed, using configuration file",
			"launcher", launcher,
			"error", err,
		)
		return newConfigFileBackend(opts.ConfigPath)
	}

	slog.Debug("launcher detected", "launcher", launcher)
	return NewClaudeCLI(runner, launcher)
}

func newConfigFileBackend(configPath string) Installer {
	if configPath == "" {
		configPath = paths.DesktopConfigPath()
	}
	return NewConfigFile(claudecfg.NewStore(configPath))
}
