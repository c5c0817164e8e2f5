// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI surface of the cargo-bsp installer.
//
// This package implements the Cobra command hierarchy: the root command that
// performs the install, shared lipgloss styles, and the ExitError used to
// propagate exit codes out of RunE handlers.
package cmd
