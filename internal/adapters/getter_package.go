package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"wa-resolver/internal/core"
	"wa-resolver/internal/ports"
	"wa-resolver/internal/types"
)

// PackageGetter serves assets bundled with the tool itself: a directory
// shipped alongside the binary (or configured explicitly). It registers
// at the package tier, the least authoritative one, so user-provided
// copies of the same asset always win.
type PackageGetter struct {
	AssetsRoot string
	matcher    core.Matcher
	resolved   string
}

func NewPackageGetter(assetsRoot string, matcher core.Matcher) *PackageGetter {
	return &PackageGetter{AssetsRoot: assetsRoot, matcher: matcher}
}

func (g *PackageGetter) Name() string {
	return "package"
}

// Initialize resolves the assets root. Without an explicit root the
// directory "assets" next to the executable is used when present.
func (g *PackageGetter) Initialize() error {
	if g.AssetsRoot != "" {
		stat, err := os.Stat(g.AssetsRoot)
		if err != nil || !stat.IsDir() {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("configured assets root does not exist: " + g.AssetsRoot).
				WithCause(err)
		}
		g.resolved = g.AssetsRoot
		return nil
	}
	executable, err := os.Executable()
	if err != nil {
		return nil
	}
	candidate := filepath.Join(filepath.Dir(executable), "assets")
	if stat, err := os.Stat(candidate); err == nil && stat.IsDir() {
		g.resolved = candidate
	}
	return nil
}

func (g *PackageGetter) Register(r ports.Registrar) error {
	if g.resolved == "" {
		return nil
	}
	r.Register(NewDirectorySource("package:"+g.resolved, g.resolved, g.matcher), types.PriorityPackage)
	return nil
}

var _ ports.Getter = (*PackageGetter)(nil)
