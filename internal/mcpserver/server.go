// Package mcpserver exposes the installer over the Model Context Protocol so
// assistants can install servers for the user on request.
package mcpserver

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mcpinstall/mcpinstall/internal/installer"
)

// ServerName identifies this server to MCP clients.
const ServerName = "mcp-installer-go"

// Server serves the two install tools over stdio.
type Server struct {
	mcpServer *server.MCPServer
	svc       *installer.Service
}

// NewServer creates the MCP server wired to svc. Handler panics are recovered
// into tool errors, so a bad request never kills the process.
func NewServer(svc *installer.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcpServer = server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()
	return s
}

// Serve runs the stdio transport until the client disconnects.
func (s *Server) Serve() error {
	slog.Info("serving MCP on stdio", "server", ServerName)
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	repoTool := mcp.NewTool("install_repo_mcp_server",
		mcp.WithDescription("Install an MCP server via npx or uvx"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The package name of the MCP server"),
		),
		mcp.WithArray("args",
			mcp.Description("The arguments to pass along"),
		),
		mcp.WithArray("env",
			mcp.Description("The environment variables to set, delimited by ="),
		),
	)
	s.mcpServer.AddTool(repoTool, s.handleInstallRepo)

	localTool := mcp.NewTool("install_local_mcp_server",
		mcp.WithDescription("Install an MCP server whose code is cloned locally on your computer"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("The path to the MCP server code cloned on your computer"),
		),
		mcp.WithArray("args",
			mcp.Description("The arguments to pass along"),
		),
		mcp.WithArray("env",
			mcp.Description("The environment variables to set, delimited by ="),
		),
	)
	s.mcpServer.AddTool(localTool, s.handleInstallLocal)
}
