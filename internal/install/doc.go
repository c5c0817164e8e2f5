// SPDX-License-Identifier: MPL-2.0

// Package install orchestrates the installation flow.
//
// A run walks a fixed sequence of gates: check the target directory, build
// the server artifact, write the discovery document. Every gate failure is
// terminal; there are no retries and no cleanup of earlier side effects
// (a created .bsp directory stays in place when a later stage fails).
package install
