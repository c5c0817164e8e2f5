// SPDX-License-Identifier: MPL-2.0

// Package builder compiles the BSP server artifact.
//
// The Builder interface models the compilation step as a capability so the
// install flow can be exercised with a fake builder in tests. The production
// implementation shells out to cargo in release mode and reports the
// toolchain's own exit status on failure.
package builder
