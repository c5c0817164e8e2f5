// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI entry point for cargo-bsp-install.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cargo-bsp-install/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the installer when called with a target directory
	rootCmd = &cobra.Command{
		Use:   "cargo-bsp-install DIRECTORY",
		Short: "Install the cargo-bsp server for a Rust project",
		Long: TitleStyle.Render("cargo-bsp-install") + SubtitleStyle.Render(" - Build Server Protocol bootstrap for cargo projects") + `

cargo-bsp-install builds the cargo-bsp server in release mode and writes a
BSP discovery file into DIRECTORY so a BSP-aware IDE can locate and launch
the server.

The discovery file is written to DIRECTORY/.bsp/cargo-bsp.json and fully
replaced on every run, so re-installing is always safe.

` + SubtitleStyle.Render("Examples:") + `
  cargo-bsp-install ~/code/my-rust-project    Install for a project
  cargo-bsp-install --verbose /tmp/proj       Install with debug output`,
		Args: cobra.ExactArgs(1),
		RunE: runInstall,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/cargo-bsp-install/config.toml)")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}

	// Help is rendered by cobra as a success, but the installer contract is
	// exit status 1 whenever no install was performed.
	if helpRequested(os.Args[1:]) {
		os.Exit(1)
	}
}

// helpRequested reports whether the invocation asked for usage output.
func helpRequested(args []string) bool {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
