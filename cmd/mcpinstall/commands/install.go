package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcpinstall/mcpinstall/internal/installer"
)

var (
	installArgs []string
	installEnv  []string
)

func init() {
	installCmd.Flags().StringArrayVar(&installArgs, "arg", nil,
		"argument passed to the server (repeatable)")
	installCmd.Flags().StringArrayVar(&installEnv, "env", nil,
		"environment variable as KEY=VALUE (repeatable)")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Install a published MCP server package",
	Long: `Install a published package as an MCP server.

The npm registry is consulted first; packages not found there are run
through uvx instead, so Python ecosystem servers install the same way.
Scoped npm names like @scope/server register under the bare name.`,
	Example: `  # Install from npm
  mcpinstall install @modelcontextprotocol/server-filesystem

  # Install with arguments and environment
  mcpinstall install mcp-server-github --arg --readonly --env GITHUB_TOKEN=ghp_xxx

  See Also: mcpinstall local, mcpinstall list`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func runInstall(c *cobra.Command, args []string) error {
	svc := newService(c.Context())
	return runInstallWithService(c, args[0], svc, os.Stdout)
}

// runInstallWithService allows injecting the service and writer for testing.
func runInstallWithService(c *cobra.Command, name string, svc *installer.Service, w io.Writer) error {
	res, err := svc.InstallPackage(c.Context(), name, installArgs, installEnv)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, res.Message)
	return nil
}
