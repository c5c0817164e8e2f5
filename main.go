// SPDX-License-Identifier: MPL-2.0

// cargo-bsp-install bootstraps the cargo-bsp build server for a Rust project:
// it compiles the server in release mode and writes the BSP discovery file
// into the target project directory.
package main

import cmd "cargo-bsp-install/cmd/cargo-bsp-install"

func main() {
	cmd.Execute()
}
