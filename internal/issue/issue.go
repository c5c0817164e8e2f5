// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DirectoryNotFoundId Id = iota + 1
	CargoNotFoundId
	BuildFailedId
	DiscoveryWriteFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // reference documentation for the failure
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	directoryNotFoundIssue = &Issue{
		id: DirectoryNotFoundId,
		mdMsg: `
# Target directory not found!

The directory you asked to install the BSP configuration into does not exist.

## Things you can try:
- Check the path for typos
- Create the project directory first:
~~~
$ mkdir -p /path/to/your/project
~~~
- Pass the project root, not a file inside it:
~~~
$ cargo-bsp-install /path/to/your/project
~~~`,
		extLinks: []HttpLink{
			"https://build-server-protocol.github.io/docs/overview/server-discovery",
		},
	}

	cargoNotFoundIssue = &Issue{
		id: CargoNotFoundId,
		mdMsg: `
# Cargo not found!

The installer needs the cargo toolchain to build the BSP server artifact,
but no cargo executable was found.

## Things you can try:
- Install Rust and cargo via rustup:
~~~
$ curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh
~~~
- Make sure ~/.cargo/bin is on your PATH
- Point the installer at a specific cargo binary in the config file:
~~~toml
cargo = "/opt/rust/bin/cargo"
~~~`,
		extLinks: []HttpLink{
			"https://rustup.rs",
		},
	}

	buildFailedIssue = &Issue{
		id: BuildFailedId,
		mdMsg: `
# Server build failed!

Compiling the BSP server in release mode did not succeed. The cargo output
above contains the compiler diagnostics.

## Things you can try:
- Fix the compile errors reported by cargo and re-run the installer
- Build manually for a faster edit cycle:
~~~
$ cargo build --release
~~~
- Run with verbose mode for more details:
~~~
$ cargo-bsp-install --verbose /path/to/your/project
~~~`,
	}

	discoveryWriteFailedIssue = &Issue{
		id: DiscoveryWriteFailedId,
		mdMsg: `
# Could not write the discovery file!

The server was built, but writing .bsp/cargo-bsp.json into the target
directory failed.

## Common causes:
- The target directory is not writable by your user
- A file named .bsp blocks creating the .bsp directory

## Things you can try:
- Check ownership and permissions of the target directory
- Remove a conflicting .bsp file:
~~~
$ ls -la /path/to/your/project/.bsp
~~~`,
		extLinks: []HttpLink{
			"https://build-server-protocol.github.io/docs/overview/server-discovery",
		},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the installer configuration file.

## Configuration file locations:
- Linux: ~/.config/cargo-bsp-install/config.toml
- macOS: ~/Library/Application Support/cargo-bsp-install/config.toml
- Windows: %APPDATA%\cargo-bsp-install\config.toml

## Things you can try:
- Check the TOML syntax of the file
- Remove the config file to use defaults:
~~~
$ rm ~/.config/cargo-bsp-install/config.toml
~~~

## Example configuration:
~~~toml
cargo = "cargo"
build_args = []
server_binary = "server"

[ui]
verbose = false
~~~`,
	}

	issues = map[Id]*Issue{
		directoryNotFoundIssue.Id():    directoryNotFoundIssue,
		cargoNotFoundIssue.Id():        cargoNotFoundIssue,
		buildFailedIssue.Id():          buildFailedIssue,
		discoveryWriteFailedIssue.Id(): discoveryWriteFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
