package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"wa-resolver/internal/ports"
	"wa-resolver/internal/shared"
	"wa-resolver/internal/types"
)

// ApkInfoCacheAdapter persists extracted apk metadata in a YAML table
// keyed by content identity ("<path>-<mtime>"). The in-memory table is
// resynced from disk whenever the cache file's own mtime or size changed
// since the last load; individual entries never go stale because the
// identity key already encodes the backing file's mtime.
type ApkInfoCacheAdapter struct {
	Path string

	mu           sync.Mutex
	cache        map[string]types.ApkInfo
	lastModified time.Time
	lastSize     int64
	synced       bool
}

func NewApkInfoCacheAdapter(path string) (*ApkInfoCacheAdapter, error) {
	if err := shared.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create cache directory").
			WithCause(err)
	}
	adapter := &ApkInfoCacheAdapter{
		Path:  path,
		cache: map[string]types.ApkInfo{},
	}
	adapter.mu.Lock()
	defer adapter.mu.Unlock()
	if err := adapter.sync(); err != nil {
		return nil, err
	}
	return adapter, nil
}

// Get resynchronizes from the persisted store if its file changed, then
// looks up the key.
func (a *ApkInfoCacheAdapter) Get(key string) (types.ApkInfo, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.sync(); err != nil {
		return types.ApkInfo{}, false, err
	}
	info, ok := a.cache[key]
	return info, ok, nil
}

// Store inserts or replaces an entry and persists the whole table
// atomically. Storing an existing key without overwrite fails with an
// already-exists error.
func (a *ApkInfoCacheAdapter) Store(info types.ApkInfo, key string, overwrite bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.sync(); err != nil {
		return err
	}
	if _, exists := a.cache[key]; exists && !overwrite {
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("apk info for %s is already in cache", info.Path))
	}
	info.SchemaVersion = types.ApkInfoSchemaVersion
	a.cache[key] = info
	data, err := yaml.Marshal(a.cache)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to serialize apk info cache").
			WithCause(err)
	}
	if err := shared.AtomicWriteFile(a.Path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to persist apk info cache").
			WithCause(err)
	}
	return a.recordStat()
}

// sync reloads the table when the cache file's mtime or size differs
// from the last load. The caller must hold the mutex.
func (a *ApkInfoCacheAdapter) sync() error {
	stat, err := os.Stat(a.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat apk info cache").
			WithCause(err)
	}
	if a.synced && stat.ModTime().Equal(a.lastModified) && stat.Size() == a.lastSize {
		return nil
	}
	log.Debug().Str("path", a.Path).Msg("updating apk info cache")
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read apk info cache").
			WithCause(err)
	}
	table := map[string]types.ApkInfo{}
	if err := yaml.Unmarshal(data, &table); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid apk info cache format").
			WithCause(err)
	}
	a.cache = table
	a.lastModified = stat.ModTime()
	a.lastSize = stat.Size()
	a.synced = true
	return nil
}

func (a *ApkInfoCacheAdapter) recordStat() error {
	stat, err := os.Stat(a.Path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat apk info cache after write").
			WithCause(err)
	}
	a.lastModified = stat.ModTime()
	a.lastSize = stat.Size()
	a.synced = true
	return nil
}

var _ ports.ApkCachePort = (*ApkInfoCacheAdapter)(nil)
