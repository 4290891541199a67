package config

import (
	"errors"
	"path/filepath"
	"strings"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidMode indicates an unrecognized install mode.
	ErrInvalidMode = errors.New("mode must be auto, claude-cli, or config-file")

	// ErrInvalidLogFormat indicates an unrecognized log format.
	ErrInvalidLogFormat = errors.New("log_format must be auto, text, or json")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

var validModes = map[string]bool{
	"":            true,
	"auto":        true,
	"claude-cli":  true,
	"config-file": true,
}

var validLogFormats = map[string]bool{
	"":     true,
	"auto": true,
	"text": true,
	"json": true,
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if !validModes[cfg.Mode] {
		errs = append(errs, ErrInvalidMode)
	}

	if !validLogFormats[cfg.LogFormat] {
		errs = append(errs, ErrInvalidLogFormat)
	}

	pathFields := []struct {
		field string
		value string
	}{
		{"desktop_config", cfg.DesktopConfig},
		{"launcher", cfg.Launcher},
		{"tools.node", cfg.Tools.Node},
		{"tools.npm", cfg.Tools.Npm},
		{"tools.npx", cfg.Tools.Npx},
		{"tools.uvx", cfg.Tools.Uvx},
	}
	for _, pf := range pathFields {
		if pf.value == "" {
			continue
		}
		if err := validatePath(pf.value); err != nil {
			errs = append(errs, &PathError{Field: pf.field, Path: pf.value, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
