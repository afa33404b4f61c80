package adapters

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"wa-resolver/internal/ports"
	"wa-resolver/internal/types"
)

// ApkInfoService answers metadata queries through the cache, falling
// back to the extractor on a miss and storing the result. It is the
// get-or-extract entry point predicate matchers evaluate against.
type ApkInfoService struct {
	Cache     ports.ApkCachePort
	Extractor ports.ApkInfoExtractor
}

func NewApkInfoService(cache ports.ApkCachePort, extractor ports.ApkInfoExtractor) ApkInfoService {
	return ApkInfoService{Cache: cache, Extractor: extractor}
}

// IdentityKey derives the cache key for a file from its path and
// last-modified time. The mtime in the key is what invalidates an entry
// when the backing file is rewritten.
func IdentityKey(path string, mtimeNanos int64) string {
	return fmt.Sprintf("%s-%d", path, mtimeNanos)
}

// Info returns metadata for path, from cache when present. ok=false
// when the path is empty, the file is missing, or extraction failed;
// callers treat all three as "no match".
func (s ApkInfoService) Info(path string) (types.ApkInfo, bool) {
	if path == "" {
		return types.ApkInfo{}, false
	}
	stat, err := os.Stat(path)
	if err != nil {
		return types.ApkInfo{}, false
	}
	key := IdentityKey(path, stat.ModTime().UnixNano())
	if s.Cache != nil {
		info, ok, err := s.Cache.Get(key)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("apk info cache lookup failed")
		} else if ok {
			log.Debug().Str("package", info.Package).Msg("using apk info from cache")
			return info, true
		}
	}
	info, err := s.Extractor.Extract(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("apk info extraction failed")
		return types.ApkInfo{}, false
	}
	info.Path = path
	if s.Cache != nil {
		if err := s.Cache.Store(info, key, true); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to store apk info in cache")
		} else {
			log.Debug().Str("package", info.Package).Msg("storing apk info in cache")
		}
	}
	return info, true
}

var _ ports.ApkInfoProvider = ApkInfoService{}
