package ports

import "wa-resolver/internal/types"

// ApkInfoExtractor performs the expensive introspection of an apk file.
type ApkInfoExtractor interface {
	Extract(path string) (types.ApkInfo, error)
}

// ApkInfoProvider yields metadata for a candidate path, normally through
// the persistent cache. ok=false when the path is empty, the file does
// not exist, or extraction failed; predicate evaluation treats that as
// "no match" rather than an error.
type ApkInfoProvider interface {
	Info(path string) (info types.ApkInfo, ok bool)
}

// ApkCachePort is the persisted metadata table keyed by content
// identity ("<path>-<mtime>").
type ApkCachePort interface {
	Get(key string) (types.ApkInfo, bool, error)
	Store(info types.ApkInfo, key string, overwrite bool) error
}
