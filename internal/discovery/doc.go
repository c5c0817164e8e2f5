// SPDX-License-Identifier: MPL-2.0

// Package discovery creates and maintains the BSP server discovery document.
//
// A BSP client (typically an IDE) locates build servers by reading JSON
// connection files from the .bsp directory at the project root. This package
// owns that document: its shape, its fixed location (.bsp/cargo-bsp.json),
// and the full-replace write semantics that keep repeated installs idempotent.
package discovery
