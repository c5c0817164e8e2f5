// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"cargo-bsp-install/internal/builder"
	"cargo-bsp-install/internal/config"
	"cargo-bsp-install/internal/install"
	"cargo-bsp-install/internal/issue"
	"cargo-bsp-install/internal/manifest"

	"github.com/spf13/cobra"
)

// newBuilder constructs the production builder from config.
// Tests substitute a fake to exercise the flow without a toolchain.
var newBuilder = func(cfg *config.Config, stdout, stderr io.Writer) builder.Builder {
	b := builder.NewCargoBuilder()
	b.Cargo = cfg.Cargo
	b.ExtraArgs = cfg.BuildArgs
	b.ServerBinary = cfg.ServerBinary
	b.Stdout = stdout
	b.Stderr = stderr
	b.SetVerbose(verbose)
	return b
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), err)
		return &ExitError{Code: 1}
	}

	// Apply verbose from config if not set via flag
	if !verbose && cfg.UI.Verbose {
		verbose = true
	}

	// The crate version and the artifact path both derive from the installer's
	// working directory, resolved before anything else runs.
	workDir, err := os.Getwd()
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), fmt.Errorf("failed to resolve working directory: %w", err))
		return &ExitError{Code: 1}
	}

	ins := install.New(newBuilder(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()))
	ins.ServerVersion = manifest.ServerVersion(workDir)
	ins.SetVerbose(verbose)

	result, err := ins.Run(ctx, install.Request{TargetDir: args[0]})
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), err)
		return &ExitError{Code: exitCodeFor(err)}
	}

	reportSuccess(cmd.OutOrStdout(), result)
	return nil
}

// exitCodeFor maps a failed run to the process exit status. A failed build
// propagates the toolchain's own exit code; everything else exits 1.
func exitCodeFor(err error) builder.ExitCode {
	var buildErr *builder.BuildError
	if errors.As(err, &buildErr) && buildErr.Code > 0 {
		return buildErr.Code
	}
	return 1
}

// classifyIssue maps a failure to its remediation card, or 0 when none applies.
func classifyIssue(err error) issue.Id {
	switch {
	case errors.Is(err, install.ErrDirectoryNotFound):
		return issue.DirectoryNotFoundId
	case errors.Is(err, builder.ErrCargoNotFound):
		return issue.CargoNotFoundId
	case isBuildError(err):
		return issue.BuildFailedId
	case errors.Is(err, os.ErrPermission):
		return issue.DiscoveryWriteFailedId
	default:
		return 0
	}
}

func isBuildError(err error) bool {
	var buildErr *builder.BuildError
	return errors.As(err, &buildErr)
}

// reportFailure prints the failing stage's message, plus a rendered
// remediation card when one is registered for the failure.
func reportFailure(w io.Writer, err error) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	if id := classifyIssue(err); id != 0 {
		if card, renderErr := issue.Get(id).Render("dark"); renderErr == nil {
			fmt.Fprintln(w, card)
		}
	}
}

// reportSuccess prints the success indication and where things ended up.
func reportSuccess(w io.Writer, result install.Result) {
	fmt.Fprintf(w, "%s Installed BSP configuration %s\n", SuccessStyle.Render("✓"), result.DiscoveryFile)
	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(w, "  1. Open the project in a BSP-aware IDE")
	fmt.Fprintln(w, "  2. The IDE will launch the server from "+CmdStyle.Render(result.Artifact.Path))
}
