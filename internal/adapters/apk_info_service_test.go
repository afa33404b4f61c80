package adapters

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wa-resolver/internal/types"
)

// countingExtractor records how many times real extraction ran.
type countingExtractor struct {
	info  types.ApkInfo
	err   error
	calls int
}

func (e *countingExtractor) Extract(path string) (types.ApkInfo, error) {
	e.calls++
	if e.err != nil {
		return types.ApkInfo{}, e.err
	}
	info := e.info
	info.Path = path
	return info, nil
}

func writeTestApk(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.apk")
	require.NoError(t, os.WriteFile(path, []byte("not a real apk"), 0644))
	return path
}

func TestInfoEmptyPath(t *testing.T) {
	service := NewApkInfoService(nil, &countingExtractor{})
	_, ok := service.Info("")
	assert.False(t, ok)
}

func TestInfoMissingFile(t *testing.T) {
	extractor := &countingExtractor{}
	service := NewApkInfoService(nil, extractor)
	_, ok := service.Info(filepath.Join(t.TempDir(), "absent.apk"))
	assert.False(t, ok)
	assert.Equal(t, 0, extractor.calls)
}

func TestInfoExtractionFailure(t *testing.T) {
	service := NewApkInfoService(nil, &countingExtractor{err: errors.New("aapt missing")})
	_, ok := service.Info(writeTestApk(t))
	assert.False(t, ok)
}

func TestInfoCachesExtraction(t *testing.T) {
	cache, _ := newTestCache(t)
	extractor := &countingExtractor{info: types.ApkInfo{Package: "com.example.app"}}
	service := NewApkInfoService(cache, extractor)
	apk := writeTestApk(t)

	first, ok := service.Info(apk)
	require.True(t, ok)
	second, ok := service.Info(apk)
	require.True(t, ok)

	assert.Equal(t, 1, extractor.calls)
	assert.Equal(t, first.Package, second.Package)
	assert.Equal(t, apk, first.Path)
}

func TestInfoCacheSharedAcrossServices(t *testing.T) {
	cache, path := newTestCache(t)
	extractor := &countingExtractor{info: types.ApkInfo{Package: "com.example.app"}}
	apk := writeTestApk(t)

	_, ok := NewApkInfoService(cache, extractor).Info(apk)
	require.True(t, ok)

	reopened, err := NewApkInfoCacheAdapter(path)
	require.NoError(t, err)
	fresh := &countingExtractor{info: types.ApkInfo{Package: "com.other"}}
	info, ok := NewApkInfoService(reopened, fresh).Info(apk)
	require.True(t, ok)
	assert.Equal(t, 0, fresh.calls)
	assert.Equal(t, "com.example.app", info.Package)
}

func TestInfoReextractsWhenFileChanges(t *testing.T) {
	cache, _ := newTestCache(t)
	extractor := &countingExtractor{info: types.ApkInfo{Package: "com.example.app"}}
	service := NewApkInfoService(cache, extractor)
	apk := writeTestApk(t)

	_, ok := service.Info(apk)
	require.True(t, ok)

	// Rewriting the file moves its mtime, which changes the identity key.
	require.NoError(t, os.WriteFile(apk, []byte("rewritten apk body"), 0644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(apk, future, future))

	_, ok = service.Info(apk)
	require.True(t, ok)
	assert.Equal(t, 2, extractor.calls)
}

func TestIdentityKeyFormat(t *testing.T) {
	assert.Equal(t, "/deps/app.apk-42", IdentityKey("/deps/app.apk", 42))
}
