package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcpinstall/mcpinstall/internal/installer"
)

var (
	localArgs []string
	localEnv  []string
)

func init() {
	localCmd.Flags().StringArrayVar(&localArgs, "arg", nil,
		"argument passed to the server (repeatable)")
	localCmd.Flags().StringArrayVar(&localEnv, "env", nil,
		"environment variable as KEY=VALUE (repeatable)")
	rootCmd.AddCommand(localCmd)
}

var localCmd = &cobra.Command{
	Use:   "local <path>",
	Short: "Install a locally cloned MCP server",
	Long: `Install MCP server code cloned on this machine.

The directory must contain a package.json. Its dependencies are installed
with npm first, then every declared binary (or the main module when no
binaries are declared) is registered as a server launched through node.`,
	Example: `  # Install a local clone
  mcpinstall local ~/src/my-mcp-server

  # Pass arguments to the server
  mcpinstall local ~/src/my-mcp-server --arg --port --arg 9000

  See Also: mcpinstall install, mcpinstall list`,
	Args: cobra.ExactArgs(1),
	RunE: runLocal,
}

func runLocal(c *cobra.Command, args []string) error {
	svc := newService(c.Context())
	return runLocalWithService(c, args[0], svc, os.Stdout)
}

// runLocalWithService allows injecting the service and writer for testing.
func runLocalWithService(c *cobra.Command, dir string, svc *installer.Service, w io.Writer) error {
	res, err := svc.InstallLocal(c.Context(), dir, localArgs, localEnv)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, res.Message)
	return nil
}
