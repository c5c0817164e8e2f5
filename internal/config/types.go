// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCargoPath is returned when the cargo setting is whitespace-only.
	ErrInvalidCargoPath = errors.New("invalid cargo path")
	// ErrInvalidServerBinary is the sentinel error wrapped by InvalidServerBinaryError.
	ErrInvalidServerBinary = errors.New("invalid server binary name")
)

type (
	// Config holds the installer settings.
	Config struct {
		// Cargo is the cargo executable used for the release build.
		Cargo string `mapstructure:"cargo"`
		// BuildArgs are extra arguments appended to `cargo build --release`.
		BuildArgs []string `mapstructure:"build_args"`
		// ServerBinary is the binary name cargo produces under target/release.
		ServerBinary string `mapstructure:"server_binary"`
		// UI holds user interface settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// UIConfig holds user interface settings.
	UIConfig struct {
		// Verbose enables debug logging and full error chains.
		Verbose bool `mapstructure:"verbose"`
	}

	// InvalidServerBinaryError reports a server_binary value that is not a
	// bare file name.
	InvalidServerBinaryError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidServerBinaryError) Error() string {
	return fmt.Sprintf("invalid server binary name %q (must be a bare file name, not a path)", e.Value)
}

// Unwrap returns ErrInvalidServerBinary so callers can use errors.Is for programmatic detection.
func (e *InvalidServerBinaryError) Unwrap() error { return ErrInvalidServerBinary }

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Cargo:        "cargo",
		BuildArgs:    nil,
		ServerBinary: "server",
		UI: UIConfig{
			Verbose: false,
		},
	}
}

// Validate checks constraints the config file format cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Cargo) == "" {
		return ErrInvalidCargoPath
	}
	if strings.ContainsAny(c.ServerBinary, `/\`) || strings.TrimSpace(c.ServerBinary) == "" {
		return &InvalidServerBinaryError{Value: c.ServerBinary}
	}
	return nil
}
