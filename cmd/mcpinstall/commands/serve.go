package commands

import (
	"github.com/spf13/cobra"

	"github.com/mcpinstall/mcpinstall/cmd"
	"github.com/mcpinstall/mcpinstall/internal/mcpserver"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the installer as an MCP server on stdio",
	Long: `Run the installer as an MCP server speaking the Model Context Protocol
over stdin/stdout.

Register this command with your assistant and it can install other MCP
servers for you. Two tools are exposed:

  install_repo_mcp_server   install a published package (npm or uvx)
  install_local_mcp_server  install a locally cloned package`,
	Example: `  # Serve on stdio
  mcpinstall serve

  See Also: mcpinstall install, mcpinstall local`,
	RunE: runServe,
}

func runServe(c *cobra.Command, _ []string) error {
	svc := newService(c.Context())
	srv := mcpserver.NewServer(svc, cmd.Version)
	return srv.Serve()
}
