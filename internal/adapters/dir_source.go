package adapters

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"wa-resolver/internal/core"
	"wa-resolver/internal/ports"
	"wa-resolver/internal/shared"
	"wa-resolver/internal/types"
)

// reventDirName is the conventional subdirectory for input captures.
const reventDirName = "revent_files"

// DirectorySource searches a root directory laid out per the standard
// assets convention: one subdirectory per owner holding plain files,
// executables under bin/<abi>/, revent captures under revent_files/ (or
// directly in the owner directory), and packaged jars and apks anywhere
// below it. Ownerless resources are searched from the root itself.
type DirectorySource struct {
	name    string
	root    string
	matcher core.Matcher
}

func NewDirectorySource(name string, root string, matcher core.Matcher) *DirectorySource {
	return &DirectorySource{name: name, root: root, matcher: matcher}
}

func (s *DirectorySource) Name() string {
	return s.name
}

func (s *DirectorySource) Locate(ctx context.Context, res types.Resource) (string, bool, error) {
	if s.root == "" {
		return "", false, nil
	}
	base := s.root
	if res.Owner() != types.NoOwner {
		base = filepath.Join(s.root, res.Owner())
	}
	if stat, err := os.Stat(base); err != nil || !stat.IsDir() {
		return "", false, nil
	}
	switch r := res.(type) {
	case types.File:
		candidate := filepath.Join(base, r.Path)
		if shared.FileExists(candidate) {
			return candidate, true, nil
		}
		return "", false, nil
	case types.Executable:
		candidate := filepath.Join(base, "bin", r.Abi, r.Filename)
		if shared.FileExists(candidate) && s.matcher.Matches(res, candidate) {
			return candidate, true, nil
		}
		return "", false, nil
	case types.ReventFile:
		for _, dir := range []string{filepath.Join(base, reventDirName), base} {
			path, found, err := s.scan(ctx, dir, res, func(p string) bool {
				return strings.HasSuffix(p, ".revent")
			})
			if err != nil || found {
				return path, found, err
			}
		}
		return "", false, nil
	case types.JarFile:
		return s.scan(ctx, base, res, func(p string) bool {
			return strings.ToLower(filepath.Ext(p)) == ".jar"
		})
	case types.ApkFile:
		return s.scan(ctx, base, res, core.HasApkExtension)
	default:
		return "", false, nil
	}
}

// scan walks dir lexically, so repeated scans of an unchanged tree visit
// candidates in the same order, and returns the first path that passes
// both the cheap extension pre-filter and the resource's full predicate.
func (s *DirectorySource) scan(ctx context.Context, dir string, res types.Resource, prefilter func(string) bool) (string, bool, error) {
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		return "", false, nil
	}
	var match string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if !prefilter(path) {
			return nil
		}
		if s.matcher.Matches(res, path) {
			match = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan " + dir).
			WithCause(err)
	}
	return match, match != "", nil
}

var _ ports.Source = (*DirectorySource)(nil)
