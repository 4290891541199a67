package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mcpinstall/mcpinstall/internal/logging"
	"github.com/mcpinstall/mcpinstall/internal/redact"
)

// handleInstallRepo installs a published package as an MCP server.
func (s *Server) handleInstallRepo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := logging.FromContext(ctx)

	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("required parameter 'name' is missing or invalid"), nil
	}

	args := request.GetStringSlice("args", nil)
	env := request.GetStringSlice("env", nil)

	log.Info("installing package server",
		"name", name,
		"args", args,
		"env", redact.MaskAssignments(env),
	)

	res, err := s.svc.InstallPackage(ctx, name, args, env)
	if err != nil {
		log.Error("package install failed", "name", name, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(res.Message), nil
}

// handleInstallLocal installs a locally cloned package as an MCP server.
func (s *Server) handleInstallLocal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := logging.FromContext(ctx)

	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("required parameter 'path' is missing or invalid"), nil
	}

	args := request.GetStringSlice("args", nil)
	env := request.GetStringSlice("env", nil)

	log.Info("installing local server",
		"path", path,
		"args", args,
		"env", redact.MaskAssignments(env),
	)

	res, err := s.svc.InstallLocal(ctx, path, args, env)
	if err != nil {
		log.Error("local install failed", "path", path, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(res.Message), nil
}
