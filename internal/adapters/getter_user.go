package adapters

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"wa-resolver/internal/core"
	"wa-resolver/internal/ports"
	"wa-resolver/internal/shared"
	"wa-resolver/internal/types"
)

// UserDirectoryGetter serves the per-user dependencies directory, the
// usual place users drop assets for their workloads. Registers at the
// local tier.
type UserDirectoryGetter struct {
	DependenciesDir string
	matcher         core.Matcher
}

func NewUserDirectoryGetter(dependenciesDir string, matcher core.Matcher) *UserDirectoryGetter {
	return &UserDirectoryGetter{DependenciesDir: dependenciesDir, matcher: matcher}
}

func (g *UserDirectoryGetter) Name() string {
	return "user_directory"
}

// Initialize creates the dependencies directory so a fresh install can
// resolve (to nothing) without erroring and users can see where to put
// their assets.
func (g *UserDirectoryGetter) Initialize() error {
	if g.DependenciesDir == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dependencies directory is not configured")
	}
	if err := shared.EnsureDir(g.DependenciesDir); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create dependencies directory").
			WithCause(err)
	}
	return nil
}

func (g *UserDirectoryGetter) Register(r ports.Registrar) error {
	r.Register(NewDirectorySource("user:"+g.DependenciesDir, g.DependenciesDir, g.matcher), types.PriorityLocal)
	return nil
}

var _ ports.Getter = (*UserDirectoryGetter)(nil)
