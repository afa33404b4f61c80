package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"wa-resolver/internal/types"
)

// SourceInfo describes one registered source for listing.
type SourceInfo struct {
	Name     string
	Priority types.SourcePriority
}

// ListSources loads the default getter catalog and returns the
// registered sources in probe order.
func (s Service) ListSources(ctx context.Context) ([]SourceInfo, error) {
	if err := s.Resolver.Load(ctx, s.Getters); err != nil {
		return nil, err
	}
	var out []SourceInfo
	for _, entry := range s.Resolver.Registrations() {
		out = append(out, SourceInfo{
			Name:     entry.Source.Name(),
			Priority: entry.Priority,
		})
	}
	return out, nil
}

// ClearCache removes the persisted apk metadata cache file. Missing
// files are fine; the next extraction recreates the cache.
func (s Service) ClearCache(ctx context.Context) error {
	path := filepath.Join(s.Config.CacheDir, apkInfoCacheFileName)
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	log.Ctx(ctx).Debug().Str("path", path).Msg("cleared apk info cache")
	return nil
}
