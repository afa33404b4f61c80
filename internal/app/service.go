package app

import (
	"path/filepath"

	"wa-resolver/internal/adapters"
	"wa-resolver/internal/core"
	"wa-resolver/internal/ports"
)

// apkInfoCacheFileName is the persisted metadata table inside the cache
// directory.
const apkInfoCacheFileName = "apk-info-cache.yaml"

// Config selects the locations the default getter catalog serves.
type Config struct {
	DependenciesDir string
	CacheDir        string
	AssetsRoot      string
	FilerPath       string
	RemoteURL       string
	AaptBinary      string
}

// Service wires the resolver to the default adapters: the persistent
// apk metadata cache, the aapt extractor and the standard getter
// catalog (package, http, filer, user directory).
type Service struct {
	Resolver *core.Resolver
	Info     ports.ApkInfoProvider
	Getters  []ports.Getter
	Config   Config
}

func NewService(cfg Config) (Service, error) {
	cache, err := adapters.NewApkInfoCacheAdapter(filepath.Join(cfg.CacheDir, apkInfoCacheFileName))
	if err != nil {
		return Service{}, err
	}
	info := adapters.NewApkInfoService(cache, adapters.NewAaptExtractor(cfg.AaptBinary))
	resolver := core.NewResolver(info)
	matcher := resolver.Matcher()
	getters := []ports.Getter{
		adapters.NewPackageGetter(cfg.AssetsRoot, matcher),
		adapters.NewHTTPGetter(cfg.RemoteURL, filepath.Join(cfg.CacheDir, "remote"), matcher),
		adapters.NewFilerGetter(cfg.FilerPath, matcher),
		adapters.NewUserDirectoryGetter(cfg.DependenciesDir, matcher),
	}
	return Service{
		Resolver: resolver,
		Info:     info,
		Getters:  getters,
		Config:   cfg,
	}, nil
}
