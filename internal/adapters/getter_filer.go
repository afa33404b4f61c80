package adapters

import (
	"wa-resolver/internal/core"
	"wa-resolver/internal/ports"
	"wa-resolver/internal/types"
)

// FilerGetter serves a mounted network share laid out like the
// dependencies directory. Registers at the lan tier. An unconfigured
// filer path is legal and simply registers nothing.
type FilerGetter struct {
	RemotePath string
	matcher    core.Matcher
}

func NewFilerGetter(remotePath string, matcher core.Matcher) *FilerGetter {
	return &FilerGetter{RemotePath: remotePath, matcher: matcher}
}

func (g *FilerGetter) Name() string {
	return "filer"
}

func (g *FilerGetter) Initialize() error {
	return nil
}

func (g *FilerGetter) Register(r ports.Registrar) error {
	if g.RemotePath == "" {
		return nil
	}
	r.Register(NewDirectorySource("filer:"+g.RemotePath, g.RemotePath, g.matcher), types.PriorityLan)
	return nil
}

var _ ports.Getter = (*FilerGetter)(nil)
