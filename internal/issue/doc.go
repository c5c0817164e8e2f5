// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// It defines error types that carry remediation steps and Markdown-formatted
// guidance, so failures during installation (missing directory, failed cargo
// build, unwritable target) tell the user what to do next instead of only
// what went wrong.
package issue
