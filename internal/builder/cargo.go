// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const (
	// DefaultCargo is the cargo executable looked up on PATH.
	DefaultCargo = "cargo"
	// DefaultServerBinary is the name of the server binary cargo produces.
	DefaultServerBinary = "server"
)

// ErrCargoNotFound is the sentinel error wrapped by CargoNotFoundError.
var ErrCargoNotFound = errors.New("cargo not found")

type (
	// CargoBuilder compiles the server crate with `cargo build --release`.
	// The build runs in the installer's working directory, not in the target
	// project: the artifact belongs to the installer's own checkout.
	CargoBuilder struct {
		// Cargo is the cargo executable. Defaults to DefaultCargo.
		Cargo string
		// Dir is the directory the build runs in. Defaults to the process
		// working directory.
		Dir string
		// ServerBinary is the binary name under target/release.
		// Defaults to DefaultServerBinary.
		ServerBinary string
		// ExtraArgs are appended after `build --release`.
		ExtraArgs []string
		// Stdout and Stderr receive the toolchain's output.
		// Default to os.Stdout and os.Stderr.
		Stdout io.Writer
		Stderr io.Writer

		logger *log.Logger
	}

	// CargoNotFoundError reports a cargo executable that could not be resolved.
	CargoNotFoundError struct {
		Cargo string
		Cause error
	}

	// BuildError reports a failed compilation. Code is the toolchain's own
	// exit status and becomes the installer's exit status.
	BuildError struct {
		Code ExitCode
		Err  error
	}
)

// Error implements the error interface.
func (e *CargoNotFoundError) Error() string {
	return fmt.Sprintf("cargo executable %q not found: %v", e.Cargo, e.Cause)
}

// Unwrap returns ErrCargoNotFound so callers can use errors.Is for programmatic detection.
func (e *CargoNotFoundError) Unwrap() error { return ErrCargoNotFound }

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cargo build failed with exit status %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("cargo build failed with exit status %s", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *BuildError) Unwrap() error { return e.Err }

// NewCargoBuilder creates a CargoBuilder with default settings.
func NewCargoBuilder() *CargoBuilder {
	return &CargoBuilder{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "builder",
		}),
	}
}

// SetVerbose raises the builder's log level to debug when v is true.
func (b *CargoBuilder) SetVerbose(v bool) {
	if b.logger == nil {
		return
	}
	if v {
		b.logger.SetLevel(log.DebugLevel)
	} else {
		b.logger.SetLevel(log.InfoLevel)
	}
}

// ArtifactPath returns the absolute location the release build will produce.
// The path is composed from the build directory up front so it stays valid no
// matter what the working directory is later in the run.
func (b *CargoBuilder) ArtifactPath() (string, error) {
	dir := b.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve build directory: %w", err)
	}

	binary := b.ServerBinary
	if binary == "" {
		binary = DefaultServerBinary
	}

	return filepath.Join(abs, "target", "release", binary), nil
}

// Build runs `cargo build --release` and returns the artifact location.
// The artifact path is computed before the subprocess starts. A nonzero
// toolchain exit becomes a BuildError carrying the toolchain's exit code.
// Whether the binary actually exists afterwards is cargo's contract to keep;
// the installer does not re-check it.
func (b *CargoBuilder) Build(ctx context.Context) (Artifact, error) {
	artifactPath, err := b.ArtifactPath()
	if err != nil {
		return Artifact{}, err
	}

	cargo := b.Cargo
	if cargo == "" {
		cargo = DefaultCargo
	}
	resolved, err := exec.LookPath(cargo)
	if err != nil {
		return Artifact{}, &CargoNotFoundError{Cargo: cargo, Cause: err}
	}

	args := append([]string{"build", "--release"}, b.ExtraArgs...)
	cmd := exec.CommandContext(ctx, resolved, args...)
	cmd.Dir = b.Dir

	cmd.Stdout = b.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = b.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if b.logger != nil {
		b.logger.Debug("running release build", "cargo", resolved, "args", args, "artifact", artifactPath)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Artifact{}, &BuildError{Code: ExitCode(exitErr.ExitCode()), Err: nil}
		}
		return Artifact{}, &BuildError{Code: 1, Err: err}
	}

	return Artifact{Path: artifactPath}, nil
}
