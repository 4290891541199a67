package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Default binary names for the external tools this installer drives.
const (
	// LauncherBin is the Claude Code CLI used for direct registration.
	LauncherBin = "claude"

	// NodeBin is the Node.js runtime required for registry installs.
	NodeBin = "node"

	// NpmBin is the npm CLI used for registry lookups and dependency installs.
	NpmBin = "npm"

	// NpxBin is the npm package runner used to launch registry packages.
	NpxBin = "npx"

	// UvxBin is the Python package runner used when a package is not on npm.
	UvxBin = "uvx"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// This is a thin wrapper around os.UserHomeDir for consistency.
// Note: It returns an empty string on error for backward compatibility.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns the directory holding mcpinstall's own configuration.
// Returns: <ConfigHome>/mcpinstall/
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), "mcpinstall")
}

// DesktopConfigPath returns the Claude Desktop configuration file path for the
// current platform.
//
// Platform paths:
//   - windows: %USERPROFILE%\AppData\Roaming\Claude\claude_desktop_config.json
//   - everything else: ~/Library/Application Support/Claude/claude_desktop_config.json
//
// These are the locations the desktop host reads on startup; both live under
// the user's home directory. Returns an empty string if the home directory
// cannot be determined.
func DesktopConfigPath() string {
	return desktopConfigPath(runtime.GOOS)
}

// desktopConfigPath is the testable core of DesktopConfigPath.
func desktopConfigPath(goos string) string {
	home := Home()
	if home == "" {
		return ""
	}

	if goos == "windows" {
		return filepath.Join(home, "AppData", "Roaming", "Claude", "claude_desktop_config.json")
	}
	return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
}
