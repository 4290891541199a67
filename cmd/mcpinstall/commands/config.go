package commands

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mcpinstall/mcpinstall/internal/config"
	"github.com/mcpinstall/mcpinstall/internal/paths"
	"github.com/mcpinstall/mcpinstall/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mcpinstall configuration",
	Long: `Manage mcpinstall configuration stored in ~/.config/mcpinstall/config.yaml.

Without a subcommand, shows the effective configuration.`,
	Example: `  # Show effective configuration
  mcpinstall config

  # Create a default config file
  mcpinstall config init

  # Open config in $EDITOR
  mcpinstall config edit

  See Also: mcpinstall list`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a default configuration file to ~/.config/mcpinstall/config.yaml.

Fails if a configuration file already exists.`,
	Example: `  # Create the default config
  mcpinstall config init

  See Also: mcpinstall config edit`,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR environment variable, or falls back to vi.
If no configuration file exists, run 'mcpinstall config init' first.`,
	Example: `  # Open config in default editor
  mcpinstall config edit

  See Also: mcpinstall config init`,
	RunE: runConfigEdit,
}

// configFilePath returns the canonical config file location.
func configFilePath() string {
	return filepath.Join(paths.AppConfigDir(), "config.yaml")
}

func runConfigShow(c *cobra.Command, _ []string) error {
	return runConfigShowWithWriter(c.OutOrStdout())
}

func runConfigShowWithWriter(w io.Writer) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	_, err = w.Write(data)
	return errors.Wrap(err, "writing config")
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path := configFilePath()

	if _, err := os.Stat(path); err == nil {
		return errors.Newf("config file already exists at %s", path)
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	if err := fileutil.AtomicWriteYAML(path, config.Default()); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	fmt.Printf("Created %s\n", path)
	return nil
}

func runConfigEdit(_ *cobra.Command, _ []string) error {
	path := configFilePath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.Newf("config file not found at %s\nRun 'mcpinstall config init' to create it", path)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}

	return nil
}
