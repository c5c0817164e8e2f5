// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConnectionDetails(t *testing.T) {
	details := NewConnectionDetails("/repo/target/release/server", "0.2.0")

	if details.Name != ServerName {
		t.Errorf("Name = %q, want %q", details.Name, ServerName)
	}
	if len(details.Argv) != 1 || details.Argv[0] != "/repo/target/release/server" {
		t.Errorf("Argv = %v, want single artifact path", details.Argv)
	}
	if details.Version != "0.2.0" {
		t.Errorf("Version = %q, want %q", details.Version, "0.2.0")
	}
	if details.BSPVersion != BSPVersion {
		t.Errorf("BSPVersion = %q, want %q", details.BSPVersion, BSPVersion)
	}
	if len(details.Languages) != 1 || details.Languages[0] != LanguageRust {
		t.Errorf("Languages = %v, want [%q]", details.Languages, LanguageRust)
	}
}

func TestNewConnectionDetails_VersionFallback(t *testing.T) {
	details := NewConnectionDetails("/repo/target/release/server", "")
	if details.Version != DefaultServerVersion {
		t.Errorf("Version = %q, want fallback %q", details.Version, DefaultServerVersion)
	}
}

func TestConnectionDetails_Validate(t *testing.T) {
	valid := NewConnectionDetails("/repo/target/release/server", "")

	tests := []struct {
		name    string
		mutate  func(*ConnectionDetails)
		wantErr bool
	}{
		{name: "valid", mutate: func(*ConnectionDetails) {}, wantErr: false},
		{name: "empty name", mutate: func(d *ConnectionDetails) { d.Name = "" }, wantErr: true},
		{name: "no argv", mutate: func(d *ConnectionDetails) { d.Argv = nil }, wantErr: true},
		{name: "two argv elements", mutate: func(d *ConnectionDetails) { d.Argv = append(d.Argv, "extra") }, wantErr: true},
		{name: "relative argv", mutate: func(d *ConnectionDetails) { d.Argv = []string{"target/release/server"} }, wantErr: true},
		{name: "empty bsp version", mutate: func(d *ConnectionDetails) { d.BSPVersion = "" }, wantErr: true},
		{name: "no languages", mutate: func(d *ConnectionDetails) { d.Languages = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := valid
			details.Argv = append([]string(nil), valid.Argv...)
			details.Languages = append([]string(nil), valid.Languages...)
			tt.mutate(&details)

			err := details.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidDetails) {
				t.Errorf("Validate() error should wrap ErrInvalidDetails, got %v", err)
			}
		})
	}
}

func TestWrite_CreatesBspDirAndFile(t *testing.T) {
	targetDir := t.TempDir()

	path, err := Write(targetDir, NewConnectionDetails("/repo/target/release/server", ""))
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	want := filepath.Join(targetDir, DirName, FileName)
	if path != want {
		t.Errorf("Write() path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("written file is not valid JSON: %v", err)
	}

	for _, field := range []string{"name", "argv", "version", "bspVersion", "languages"} {
		if _, ok := doc[field]; !ok {
			t.Errorf("written document is missing field %q", field)
		}
	}
}

func TestWrite_FullyReplacesExistingFile(t *testing.T) {
	targetDir := t.TempDir()

	if _, err := Write(targetDir, NewConnectionDetails("/old/target/release/server", "0.1.0")); err != nil {
		t.Fatalf("first Write() error: %v", err)
	}
	if _, err := Write(targetDir, NewConnectionDetails("/new/target/release/server", "0.2.0")); err != nil {
		t.Fatalf("second Write() error: %v", err)
	}

	data, err := os.ReadFile(FilePath(targetDir))
	if err != nil {
		t.Fatalf("reading connection file: %v", err)
	}

	// The file must contain exactly one JSON document, never an appended pair.
	var details ConnectionDetails
	if err := json.Unmarshal(data, &details); err != nil {
		t.Fatalf("repeated writes corrupted the document: %v", err)
	}
	if strings.Contains(string(data), "/old/target/release/server") {
		t.Error("stale artifact path survived a rewrite")
	}
	if details.Argv[0] != "/new/target/release/server" {
		t.Errorf("Argv[0] = %q, want the latest artifact path", details.Argv[0])
	}
	if details.Version != "0.2.0" {
		t.Errorf("Version = %q, want %q", details.Version, "0.2.0")
	}
}

func TestWrite_PreexistingBspDirIsSuccess(t *testing.T) {
	targetDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(targetDir, DirName), 0o755); err != nil {
		t.Fatalf("creating .bsp dir: %v", err)
	}

	if _, err := Write(targetDir, NewConnectionDetails("/repo/target/release/server", "")); err != nil {
		t.Errorf("Write() with pre-existing .bsp dir should succeed, got %v", err)
	}
}

func TestWrite_RejectsInvalidDetails(t *testing.T) {
	targetDir := t.TempDir()

	details := NewConnectionDetails("/repo/target/release/server", "")
	details.Argv = nil

	if _, err := Write(targetDir, details); !errors.Is(err, ErrInvalidDetails) {
		t.Errorf("Write() with invalid details = %v, want ErrInvalidDetails", err)
	}
	if _, err := os.Stat(filepath.Join(targetDir, DirName)); !os.IsNotExist(err) {
		t.Error("Write() must not create the .bsp directory for invalid details")
	}
}

func TestRead_RoundTrip(t *testing.T) {
	targetDir := t.TempDir()
	want := NewConnectionDetails("/repo/target/release/server", "1.2.3")

	if _, err := Write(targetDir, want); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := Read(targetDir)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got.Name != want.Name || got.Version != want.Version || got.BSPVersion != want.BSPVersion {
		t.Errorf("Read() = %+v, want %+v", got, want)
	}
	if len(got.Argv) != 1 || got.Argv[0] != want.Argv[0] {
		t.Errorf("Read() Argv = %v, want %v", got.Argv, want.Argv)
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := Read(t.TempDir()); err == nil {
		t.Error("Read() on a directory without a connection file should fail")
	}
}

func TestFilePath(t *testing.T) {
	got := FilePath("/tmp/proj")
	want := filepath.Join("/tmp/proj", ".bsp", "cargo-bsp.json")
	if got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
}
