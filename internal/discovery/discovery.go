// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the hidden directory BSP clients scan for connection files.
	DirName = ".bsp"
	// FileName is the fixed name of the cargo-bsp connection file.
	FileName = "cargo-bsp.json"

	// ServerName is the display name recorded in the connection file.
	ServerName = "cargo-bsp"
	// BSPVersion is the Build Server Protocol version the server speaks.
	BSPVersion = "2.0.0"
	// DefaultServerVersion is used when the server crate version is unknown.
	DefaultServerVersion = "0.1.0"
	// LanguageRust is the only language the server handles.
	LanguageRust = "rust"
)

var (
	// ErrInvalidDetails is the sentinel error wrapped by InvalidDetailsError.
	ErrInvalidDetails = errors.New("invalid connection details")
)

type (
	// ConnectionDetails is the discovery document a BSP client reads to learn
	// how to spawn the server. Argv must hold exactly one element: the absolute
	// path of the built server artifact.
	ConnectionDetails struct {
		Name       string   `json:"name"`
		Argv       []string `json:"argv"`
		Version    string   `json:"version"`
		BSPVersion string   `json:"bspVersion"`
		Languages  []string `json:"languages"`
	}

	// InvalidDetailsError reports a connection document that would be useless
	// to a BSP client.
	InvalidDetailsError struct {
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidDetailsError) Error() string {
	return fmt.Sprintf("invalid connection details: %s", e.Reason)
}

// Unwrap returns ErrInvalidDetails so callers can use errors.Is for programmatic detection.
func (e *InvalidDetailsError) Unwrap() error { return ErrInvalidDetails }

// NewConnectionDetails builds the connection document for a server artifact.
// An empty serverVersion falls back to DefaultServerVersion.
func NewConnectionDetails(artifactPath, serverVersion string) ConnectionDetails {
	if serverVersion == "" {
		serverVersion = DefaultServerVersion
	}
	return ConnectionDetails{
		Name:       ServerName,
		Argv:       []string{artifactPath},
		Version:    serverVersion,
		BSPVersion: BSPVersion,
		Languages:  []string{LanguageRust},
	}
}

// Validate checks the document invariants before it is written.
func (d ConnectionDetails) Validate() error {
	if d.Name == "" {
		return &InvalidDetailsError{Reason: "name is empty"}
	}
	if len(d.Argv) != 1 {
		return &InvalidDetailsError{Reason: fmt.Sprintf("argv must have exactly one element, got %d", len(d.Argv))}
	}
	if !filepath.IsAbs(d.Argv[0]) {
		return &InvalidDetailsError{Reason: fmt.Sprintf("argv[0] must be an absolute path, got %q", d.Argv[0])}
	}
	if d.BSPVersion == "" {
		return &InvalidDetailsError{Reason: "bspVersion is empty"}
	}
	if len(d.Languages) == 0 {
		return &InvalidDetailsError{Reason: "languages is empty"}
	}
	return nil
}

// FilePath returns where the connection file lives for a target directory.
func FilePath(targetDir string) string {
	return filepath.Join(targetDir, DirName, FileName)
}

// Write ensures the .bsp directory exists inside targetDir and writes the
// connection file, fully replacing any previous content. Appending or merging
// would corrupt the document into invalid JSON on repeated runs, so the file
// is always rewritten from scratch. It returns the path of the written file.
func Write(targetDir string, details ConnectionDetails) (string, error) {
	if err := details.Validate(); err != nil {
		return "", err
	}

	bspDir := filepath.Join(targetDir, DirName)
	// MkdirAll treats a pre-existing directory as success, which keeps
	// repeated installs idempotent.
	if err := os.MkdirAll(bspDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", DirName, err)
	}

	data, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode connection details: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(bspDir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write connection file: %w", err)
	}

	return path, nil
}

// Read loads the connection file from a target directory. It is primarily an
// inspection helper; the installer itself never merges with previous content.
func Read(targetDir string) (ConnectionDetails, error) {
	var details ConnectionDetails

	data, err := os.ReadFile(FilePath(targetDir))
	if err != nil {
		return details, fmt.Errorf("failed to read connection file: %w", err)
	}
	if err := json.Unmarshal(data, &details); err != nil {
		return details, fmt.Errorf("failed to decode connection file: %w", err)
	}

	return details, nil
}
