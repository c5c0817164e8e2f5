// SPDX-License-Identifier: MPL-2.0

package install

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cargo-bsp-install/internal/builder"
	"cargo-bsp-install/internal/discovery"
	"cargo-bsp-install/internal/issue"

	"github.com/charmbracelet/log"
)

const (
	// StateStart is the initial state of a run.
	StateStart State = iota
	// StateDirChecked means the target directory exists.
	StateDirChecked
	// StateBuilt means the server artifact compiled successfully.
	StateBuilt
	// StateConfigWritten means the discovery document is on disk.
	StateConfigWritten
	// StateDone is the successful terminal state.
	StateDone
	// StateFailed is the failure terminal state, reachable from any
	// non-terminal state.
	StateFailed
)

// ErrDirectoryNotFound is the sentinel error wrapped by DirectoryNotFoundError.
var ErrDirectoryNotFound = errors.New("directory not found")

type (
	// State tracks how far a run progressed. There are no retries: a run
	// only ever moves forward until it reaches StateDone or StateFailed.
	State int

	// Request captures the validated installation inputs. It is immutable
	// for the lifetime of a run.
	Request struct {
		// TargetDir is the project directory that receives the discovery file.
		TargetDir string
	}

	// Result reports what a successful run produced.
	Result struct {
		// Artifact is the compiled server executable.
		Artifact builder.Artifact
		// DiscoveryFile is the path of the written connection file.
		DiscoveryFile string
	}

	// DirectoryNotFoundError reports a target directory that does not exist
	// or is not a directory.
	DirectoryNotFoundError struct {
		Path string
	}

	// Installer runs the install stages in order. The Builder field is the
	// only collaborator that touches a toolchain, so tests substitute a fake.
	Installer struct {
		// Builder compiles the server artifact.
		Builder builder.Builder
		// ServerVersion is recorded in the discovery document.
		// Empty means the discovery package's default.
		ServerVersion string

		logger *log.Logger
		state  State
	}
)

// Error implements the error interface.
func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("directory %s not found", e.Path)
}

// Unwrap returns ErrDirectoryNotFound so callers can use errors.Is for programmatic detection.
func (e *DirectoryNotFoundError) Unwrap() error { return ErrDirectoryNotFound }

// New creates an Installer that compiles with the given builder.
func New(b builder.Builder) *Installer {
	return &Installer{
		Builder: b,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "install",
		}),
	}
}

// SetVerbose raises the installer's log level to debug when v is true.
func (ins *Installer) SetVerbose(v bool) {
	if v {
		ins.logger.SetLevel(log.DebugLevel)
	} else {
		ins.logger.SetLevel(log.InfoLevel)
	}
}

// State returns how far the last Run progressed.
func (ins *Installer) State() State {
	return ins.state
}

// CheckTarget verifies the target directory exists. It runs before any build
// is triggered so a bad path never costs a compilation.
func (ins *Installer) CheckTarget(req Request) error {
	info, err := os.Stat(req.TargetDir)
	if err != nil || !info.IsDir() {
		return issue.NewErrorContext().
			WithOperation("check target directory").
			WithResource(req.TargetDir).
			WithSuggestion("Check the path for typos").
			WithSuggestion("Create the project directory before installing").
			Wrap(&DirectoryNotFoundError{Path: req.TargetDir}).
			BuildError()
	}
	return nil
}

// Run executes the install stages: directory check, release build, discovery
// write. The first failing stage aborts the run; later stages never execute.
func (ins *Installer) Run(ctx context.Context, req Request) (Result, error) {
	ins.state = StateStart

	if err := ins.CheckTarget(req); err != nil {
		ins.state = StateFailed
		return Result{}, err
	}
	ins.state = StateDirChecked
	ins.logger.Debug("target directory exists", "dir", req.TargetDir)

	artifact, err := ins.Builder.Build(ctx)
	if err != nil {
		ins.state = StateFailed
		return Result{}, err
	}
	ins.state = StateBuilt
	ins.logger.Debug("server artifact built", "path", artifact.Path)

	details := discovery.NewConnectionDetails(artifact.Path, ins.ServerVersion)
	path, err := discovery.Write(req.TargetDir, details)
	if err != nil {
		ins.state = StateFailed
		return Result{}, issue.NewErrorContext().
			WithOperation("write discovery file").
			WithResource(discovery.FilePath(req.TargetDir)).
			WithSuggestion("Check that the target directory is writable").
			WithSuggestion("Remove a conflicting .bsp file if one exists").
			Wrap(err).
			BuildError()
	}
	ins.state = StateConfigWritten
	ins.logger.Debug("discovery file written", "path", path)

	ins.state = StateDone
	return Result{Artifact: artifact, DiscoveryFile: path}, nil
}
