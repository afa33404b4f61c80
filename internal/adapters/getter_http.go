package adapters

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"wa-resolver/internal/core"
	"wa-resolver/internal/ports"
	"wa-resolver/internal/shared"
	"wa-resolver/internal/types"
)

// indexFileName is the asset index served at the root of a remote
// asset repository.
const indexFileName = "index.yaml"

// assetIndex lists the assets a remote repository serves, per owner,
// with paths relative to the owner's directory.
type assetIndex struct {
	Owners map[string][]assetEntry `yaml:"owners"`
	Shared []assetEntry            `yaml:"shared"`
}

type assetEntry struct {
	Path string `yaml:"path"`
}

// HTTPGetter serves a remote asset repository over plain HTTP: it
// fetches a YAML index of available assets, downloads candidates for
// the requested owner into a local cache directory and matches them
// there. Registers at the remote tier. An unconfigured URL is legal and
// registers nothing.
type HTTPGetter struct {
	URL      string
	CacheDir string
	Client   *http.Client
	matcher  core.Matcher
}

func NewHTTPGetter(rawURL string, cacheDir string, matcher core.Matcher) *HTTPGetter {
	return &HTTPGetter{
		URL:      rawURL,
		CacheDir: cacheDir,
		Client:   &http.Client{Timeout: 30 * time.Second},
		matcher:  matcher,
	}
}

func (g *HTTPGetter) Name() string {
	return "http"
}

func (g *HTTPGetter) Initialize() error {
	if g.URL == "" {
		return nil
	}
	if _, err := url.Parse(g.URL); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid remote assets url: " + g.URL).
			WithCause(err)
	}
	if err := shared.EnsureDir(g.CacheDir); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create remote asset cache directory").
			WithCause(err)
	}
	return nil
}

func (g *HTTPGetter) Register(r ports.Registrar) error {
	if g.URL == "" {
		return nil
	}
	r.Register(&httpSource{getter: g}, types.PriorityRemote)
	return nil
}

// httpSource is the probe-side of HTTPGetter. The index is fetched on
// first use and reused for the lifetime of the resolver.
type httpSource struct {
	getter *HTTPGetter
	index  *assetIndex
}

func (s *httpSource) Name() string {
	return "http:" + s.getter.URL
}

func (s *httpSource) Locate(ctx context.Context, res types.Resource) (string, bool, error) {
	index, err := s.loadIndex(ctx)
	if err != nil {
		return "", false, err
	}
	entries := index.Shared
	if res.Owner() != types.NoOwner {
		entries = index.Owners[res.Owner()]
	}
	for _, entry := range entries {
		if !candidateMatches(res, entry.Path) {
			continue
		}
		local, err := s.fetchAsset(ctx, res.Owner(), entry.Path)
		if err != nil {
			return "", false, err
		}
		if accepted(s.getter.matcher, res, local) {
			return local, true, nil
		}
	}
	return "", false, nil
}

func (s *httpSource) loadIndex(ctx context.Context) (*assetIndex, error) {
	if s.index != nil {
		return s.index, nil
	}
	data, err := s.fetch(ctx, joinURL(s.getter.URL, indexFileName))
	if err != nil {
		return nil, err
	}
	index := &assetIndex{}
	if err := yaml.Unmarshal(data, index); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid remote asset index").
			WithCause(err)
	}
	s.index = index
	log.Ctx(ctx).Debug().
		Str("url", s.getter.URL).
		Int("owners", len(index.Owners)).
		Msg("loaded remote asset index")
	return index, nil
}

// fetchAsset downloads an asset into the local cache directory unless a
// previous resolution already fetched it.
func (s *httpSource) fetchAsset(ctx context.Context, owner string, relPath string) (string, error) {
	local := filepath.Join(s.getter.CacheDir, owner, filepath.FromSlash(relPath))
	if shared.FileExists(local) {
		return local, nil
	}
	data, err := s.fetch(ctx, joinURL(s.getter.URL, path.Join(owner, relPath)))
	if err != nil {
		return "", err
	}
	if err := shared.EnsureDir(filepath.Dir(local)); err != nil {
		return "", err
	}
	if err := shared.AtomicWriteFile(local, data, 0644); err != nil {
		return "", err
	}
	log.Ctx(ctx).Debug().Str("path", local).Msg("downloaded remote asset")
	return local, nil
}

func (s *httpSource) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.getter.Client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("remote asset fetch failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("remote asset fetch failed").
			WithCause(shared.HTTPStatusError(resp.StatusCode, rawURL))
	}
	return io.ReadAll(resp.Body)
}

// candidateMatches is the index-side pre-filter: it rules a relative
// asset path in or out by kind before anything is downloaded.
func candidateMatches(res types.Resource, relPath string) bool {
	switch r := res.(type) {
	case types.File:
		return relPath == r.Path
	case types.Executable:
		return relPath == path.Join("bin", r.Abi, r.Filename)
	case types.ReventFile:
		return strings.HasSuffix(relPath, ".revent")
	case types.JarFile:
		return strings.ToLower(path.Ext(relPath)) == ".jar"
	case types.ApkFile:
		return core.HasApkExtension(relPath)
	default:
		return false
	}
}

// accepted applies the full predicate to a downloaded file. File
// resources were already matched exactly against the index, so the
// downloaded path itself is the answer.
func accepted(matcher core.Matcher, res types.Resource, local string) bool {
	if _, isFile := res.(types.File); isFile {
		return true
	}
	return matcher.Matches(res, local)
}

func joinURL(base string, suffix string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(suffix, "/")
}

var _ ports.Getter = (*HTTPGetter)(nil)
var _ ports.Source = (*httpSource)(nil)
