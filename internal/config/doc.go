// SPDX-License-Identifier: MPL-2.0

// Package config handles installer configuration using Viper with TOML files.
//
// Configuration is loaded from ~/.config/cargo-bsp-install/config.toml (or the
// XDG equivalent on Linux, ~/Library/Application Support/cargo-bsp-install on
// macOS, %APPDATA%\cargo-bsp-install on Windows). Everything has a sensible
// default: the installer works with no config file at all, and the file only
// exists to override the cargo executable, extra build arguments, the server
// binary name, or UI verbosity.
package config
