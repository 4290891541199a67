// Package config provides configuration management for mcpinstall using Viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mcpinstall/mcpinstall/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "mcpinstall"

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// Mode selects the install back-end: auto, claude-cli, or config-file.
	Mode string `mapstructure:"mode" yaml:"mode"`

	// Launcher is the Claude CLI binary probed and invoked by the
	// claude-cli back-end.
	Launcher string `mapstructure:"launcher" yaml:"launcher"`

	// DesktopConfig overrides where the config-file back-end writes.
	// Empty means the platform default location.
	DesktopConfig string `mapstructure:"desktop_config" yaml:"desktop_config"`

	// Tools overrides the runtime binaries used for package resolution
	// and install commands.
	Tools ToolOverrides `mapstructure:"tools" yaml:"tools"`

	// LogFormat selects log output: auto, text, or json.
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// ToolOverrides contains per-binary path overrides. Empty fields fall back
// to PATH lookup of the conventional name.
type ToolOverrides struct {
	Node string `mapstructure:"node" yaml:"node"`
	Npm  string `mapstructure:"npm" yaml:"npm"`
	Npx  string `mapstructure:"npx" yaml:"npx"`
	Uvx  string `mapstructure:"uvx" yaml:"uvx"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.AppConfigDir())

	viper.SetEnvPrefix("MCPINSTALL")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("mode", "auto")
	viper.SetDefault("log_format", "auto")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Default returns a Config populated with default values, used to seed a
// fresh config file.
func Default() *Config {
	return &Config{
		Version:   1,
		Mode:      "auto",
		LogFormat: "auto",
	}
}
