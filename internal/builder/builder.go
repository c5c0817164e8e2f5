// SPDX-License-Identifier: MPL-2.0

package builder

import "context"

type (
	// Artifact is the compiled server executable produced by the build step.
	// Path is always absolute: it is composed from the installer's working
	// directory before any build runs, never from a later working directory.
	Artifact struct {
		Path string
	}

	// Builder abstracts the compilation step. The installer only needs the
	// resulting artifact location; how it gets built is the implementation's
	// business.
	Builder interface {
		Build(ctx context.Context) (Artifact, error)
	}
)
