package ports

import (
	"context"

	"wa-resolver/internal/types"
)

// Source locates a resource within one provenance (a directory tree, a
// mounted share, a remote index). A source enumerates its own candidate
// paths and returns the first one the resource's predicate accepts;
// found=false means the source holds no match, which is not an error.
type Source interface {
	Name() string
	Locate(ctx context.Context, res types.Resource) (path string, found bool, err error)
}

// Registrar is the resolver-side registration entry point handed to
// getters during load.
type Registrar interface {
	Register(source Source, priority types.SourcePriority)
}

// Getter is the plugin contract for resource discovery. Initialize runs
// once before Register; a failure in either aborts the resolver's load
// phase. Register must call back into the registrar to add the getter's
// sources at their declared priorities.
type Getter interface {
	Name() string
	Initialize() error
	Register(r Registrar) error
}
