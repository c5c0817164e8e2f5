// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the server crate's Cargo.toml metadata.
//
// The installer uses the crate version for the discovery document so the IDE
// sees the version of the server it will actually launch. Parsing is
// best-effort: a missing or unreadable manifest falls back to a static
// default version rather than failing the install.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the cargo manifest file name.
const FileName = "Cargo.toml"

type (
	// CrateManifest mirrors the parts of Cargo.toml the installer cares about.
	CrateManifest struct {
		Package CratePackage `toml:"package"`
	}

	// CratePackage is the [package] section of a Cargo.toml.
	CratePackage struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	}
)

// Load reads and parses the Cargo.toml in dir.
func Load(dir string) (CrateManifest, error) {
	var m CrateManifest

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return m, nil
}

// ServerVersion returns the crate version declared in dir's Cargo.toml, or ""
// when the manifest is missing, malformed, or has no version. Callers treat
// "" as "use the default version".
func ServerVersion(dir string) string {
	m, err := Load(dir)
	if err != nil {
		return ""
	}
	return m.Package.Version
}
