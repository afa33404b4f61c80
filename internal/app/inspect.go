package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"wa-resolver/internal/types"
)

// Inspect returns the metadata record for an apk file, extracting and
// caching it on first sight.
func (s Service) Inspect(ctx context.Context, path string) (types.ApkInfo, error) {
	if path == "" {
		return types.ApkInfo{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("apk path is required")
	}
	info, ok := s.Info.Info(path)
	if !ok {
		return types.ApkInfo{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no metadata could be extracted from " + path)
	}
	log.Ctx(ctx).Debug().Str("package", info.Package).Msg("inspected apk")
	return info, nil
}
