// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"cargo-bsp-install/internal/testutil"
)

// writeFakeCargo writes an executable shell script that stands in for the
// cargo toolchain and returns its path.
func writeFakeCargo(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain scripts are POSIX-only")
	}

	path := filepath.Join(t.TempDir(), "cargo")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("writing fake cargo: %v", err)
	}
	return path
}

func TestCargoBuilder_ArtifactPath(t *testing.T) {
	b := &CargoBuilder{Dir: "/repo"}

	got, err := b.ArtifactPath()
	if err != nil {
		t.Fatalf("ArtifactPath() error: %v", err)
	}
	want := filepath.Join("/repo", "target", "release", "server")
	if got != want {
		t.Errorf("ArtifactPath() = %q, want %q", got, want)
	}
}

func TestCargoBuilder_ArtifactPathDefaultsToWorkingDirectory(t *testing.T) {
	restore := testutil.MustChdir(t, t.TempDir())
	defer restore()

	b := &CargoBuilder{}

	got, err := b.ArtifactPath()
	if err != nil {
		t.Fatalf("ArtifactPath() error: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	want := filepath.Join(wd, "target", "release", "server")
	if got != want {
		t.Errorf("ArtifactPath() = %q, want %q", got, want)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ArtifactPath() = %q, want an absolute path", got)
	}
}

func TestCargoBuilder_ArtifactPathCustomBinary(t *testing.T) {
	b := &CargoBuilder{Dir: "/repo", ServerBinary: "cargo-bsp-server"}

	got, err := b.ArtifactPath()
	if err != nil {
		t.Fatalf("ArtifactPath() error: %v", err)
	}
	if filepath.Base(got) != "cargo-bsp-server" {
		t.Errorf("ArtifactPath() = %q, want custom binary name", got)
	}
}

func TestCargoBuilder_BuildSuccess(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer

	b := &CargoBuilder{
		Cargo:  writeFakeCargo(t, `echo "Compiling server v0.1.0 $@"`),
		Dir:    dir,
		Stdout: &stdout,
		Stderr: &bytes.Buffer{},
	}

	artifact, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := filepath.Join(dir, "target", "release", "server")
	if artifact.Path != want {
		t.Errorf("artifact path = %q, want %q", artifact.Path, want)
	}
	if !strings.Contains(stdout.String(), "build --release") {
		t.Errorf("toolchain should receive build --release, got output %q", stdout.String())
	}
}

func TestCargoBuilder_BuildPassesExtraArgs(t *testing.T) {
	var stdout bytes.Buffer

	b := &CargoBuilder{
		Cargo:     writeFakeCargo(t, `echo "$@"`),
		Dir:       t.TempDir(),
		ExtraArgs: []string{"--locked", "--offline"},
		Stdout:    &stdout,
		Stderr:    &bytes.Buffer{},
	}

	if _, err := b.Build(context.Background()); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !strings.Contains(stdout.String(), "--locked --offline") {
		t.Errorf("extra args not forwarded, got %q", stdout.String())
	}
}

func TestCargoBuilder_BuildPropagatesToolchainExitCode(t *testing.T) {
	b := &CargoBuilder{
		Cargo:  writeFakeCargo(t, "exit 101"),
		Dir:    t.TempDir(),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	}

	_, err := b.Build(context.Background())
	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("Build() error = %v, want *BuildError", err)
	}
	if buildErr.Code != 101 {
		t.Errorf("BuildError.Code = %d, want 101", buildErr.Code)
	}
}

func TestCargoBuilder_BuildCargoMissing(t *testing.T) {
	b := &CargoBuilder{
		Cargo: "definitely-not-a-real-cargo-binary",
		Dir:   t.TempDir(),
	}

	_, err := b.Build(context.Background())
	if !errors.Is(err, ErrCargoNotFound) {
		t.Errorf("Build() error = %v, want ErrCargoNotFound", err)
	}
}

func TestCargoBuilder_BuildCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &CargoBuilder{
		Cargo:  writeFakeCargo(t, "sleep 10"),
		Dir:    t.TempDir(),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	}

	if _, err := b.Build(ctx); err == nil {
		t.Error("Build() with cancelled context should fail")
	}
}

func TestExitCode(t *testing.T) {
	if !ExitCode(0).IsSuccess() {
		t.Error("ExitCode(0).IsSuccess() = false, want true")
	}
	if ExitCode(101).IsSuccess() {
		t.Error("ExitCode(101).IsSuccess() = true, want false")
	}
	if ExitCode(101).String() != "101" {
		t.Errorf("ExitCode(101).String() = %q, want %q", ExitCode(101).String(), "101")
	}

	if ok, _ := ExitCode(255).IsValid(); !ok {
		t.Error("ExitCode(255) should be valid")
	}
	ok, errs := ExitCode(300).IsValid()
	if ok {
		t.Error("ExitCode(300) should be invalid")
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidExitCode) {
		t.Errorf("IsValid() errors = %v, want one ErrInvalidExitCode", errs)
	}
}

func TestBuildError_Error(t *testing.T) {
	err := &BuildError{Code: 101}
	if !strings.Contains(err.Error(), "101") {
		t.Errorf("BuildError.Error() = %q, want it to name the exit code", err.Error())
	}
}
