// Package commands implements the CLI commands for mcpinstall.
package commands

import (
	"context"
	"log/slog"
	"os"

	cerrors "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mcpinstall/mcpinstall/cmd"
	"github.com/mcpinstall/mcpinstall/internal/claudecfg"
	"github.com/mcpinstall/mcpinstall/internal/config"
	"github.com/mcpinstall/mcpinstall/internal/errors"
	"github.com/mcpinstall/mcpinstall/internal/execx"
	"github.com/mcpinstall/mcpinstall/internal/installer"
	"github.com/mcpinstall/mcpinstall/internal/logging"
	"github.com/mcpinstall/mcpinstall/internal/npm"
	"github.com/mcpinstall/mcpinstall/internal/paths"
	"github.com/mcpinstall/mcpinstall/internal/strategy"
)

// configFlag holds the value of the --config flag.
var configFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// cfg is the effective configuration, populated by initConfig.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"path to the mcpinstall config file")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format: text, json (default from config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("mcpinstall version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configFlag)
	if cfg == nil {
		cfg = config.Default()
	}
}

var rootCmd = &cobra.Command{
	Use:   "mcpinstall",
	Short: "Install MCP servers for Claude",
	Long: `mcpinstall installs Model Context Protocol servers for Claude.

It installs published packages (npm registry first, uvx as fallback) as
well as locally cloned server code, registering them either through the
claude CLI when it is available or by editing the Claude Desktop
configuration file directly.

It is also itself an MCP server: run 'mcpinstall serve' and an assistant
can install other servers for you on request.`,
	Example: `  # Install a published server
  mcpinstall install @modelcontextprotocol/server-filesystem

  # Install a local clone
  mcpinstall local ~/src/my-mcp-server

  # Serve the installer over MCP on stdio
  mcpinstall serve

  See Also: mcpinstall list, mcpinstall remove, mcpinstall config`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("MCPINSTALL_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format := logFormat
	if format == "" && cfg != nil {
		format = cfg.LogFormat
	}

	primary := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(format),
		Output: cmd.ErrOrStderr(),
	})

	handlers := []slog.Handler{primary.Handler()}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces configuration load and validation errors before any
// command runs.
func checkConfig(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	if verrs := config.Validate(cfg); len(verrs) > 0 {
		return errors.NewConfigError(cerrors.Join(verrs...))
	}
	return nil
}

// newService wires the install orchestrator from the effective configuration:
// a real process runner, the configured tool binaries, and the back-end
// selected once per invocation.
func newService(ctx context.Context) *installer.Service {
	runner := execx.NewSystem()
	client := npm.NewClient(runner, npm.Tools{
		Node: cfg.Tools.Node,
		Npm:  cfg.Tools.Npm,
		Npx:  cfg.Tools.Npx,
		Uvx:  cfg.Tools.Uvx,
	})

	backend := strategy.Detect(ctx, runner, strategy.Options{
		Launcher:   cfg.Launcher,
		ConfigPath: cfg.DesktopConfig,
		Mode:       strategy.Mode(cfg.Mode),
	})

	return installer.NewService(backend, client)
}

// desktopStore returns the store for the Claude Desktop config file,
// honoring the configured override.
func desktopStore() *claudecfg.Store {
	path := cfg.DesktopConfig
	if path == "" {
		path = paths.DesktopConfigPath()
	}
	return claudecfg.NewStore(path)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
