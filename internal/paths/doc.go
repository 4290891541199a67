// Package paths centralizes file system path resolution for mcpinstall.
//
// It resolves the Claude Desktop configuration file location for the current
// platform, the application's own XDG config directory, and the default
// binary names of the external tools the installer drives (claude, node,
// npm, npx, uvx).
package paths
