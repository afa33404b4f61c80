package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"wa-resolver/internal/types"
)

// fakeInfoProvider serves canned metadata keyed by base filename.
type fakeInfoProvider map[string]types.ApkInfo

func (f fakeInfoProvider) Info(path string) (types.ApkInfo, bool) {
	info, ok := f[filepath.Base(path)]
	return info, ok
}

func testMatcher(infos fakeInfoProvider) Matcher {
	return NewMatcher(infos)
}

// ---------------------------------------------------------------------------
// Kind dispatch
// ---------------------------------------------------------------------------

func TestMatchesFileExactPath(t *testing.T) {
	m := testMatcher(nil)
	res := types.File{OwnerName: "dhrystone", Path: "config.json"}
	assert.True(t, m.Matches(res, "config.json"))
	assert.False(t, m.Matches(res, "other/config.json"))
}

func TestMatchesExecutableBasename(t *testing.T) {
	m := testMatcher(nil)
	res := types.Executable{OwnerName: "dhrystone", Abi: "arm64", Filename: "dhrystone"}
	assert.True(t, m.Matches(res, "/assets/dhrystone/bin/arm64/dhrystone"))
	assert.False(t, m.Matches(res, "/assets/dhrystone/bin/arm64/whetstone"))
}

func TestMatchesReventWithTarget(t *testing.T) {
	m := testMatcher(nil)
	res := types.ReventFile{OwnerName: "angrybirds", Stage: "setup", Target: "pixel6"}
	assert.True(t, m.Matches(res, "/deps/angrybirds/revent_files/pixel6.setup.revent"))
	assert.False(t, m.Matches(res, "/deps/angrybirds/revent_files/mate10.setup.revent"))
	assert.False(t, m.Matches(res, "/deps/angrybirds/revent_files/pixel6.run.revent"))
}

func TestMatchesReventStageOnly(t *testing.T) {
	m := testMatcher(nil)
	res := types.ReventFile{OwnerName: "angrybirds", Stage: "setup"}
	assert.True(t, m.Matches(res, "/deps/angrybirds/setup.revent"))
	assert.False(t, m.Matches(res, "/deps/angrybirds/run.revent"))
}

func TestMatchesJarAlwaysAccepts(t *testing.T) {
	m := testMatcher(nil)
	assert.True(t, m.Matches(types.JarFile{OwnerName: "uibench"}, "/deps/uibench/anything.jar"))
}

func TestHasApkExtension(t *testing.T) {
	assert.True(t, HasApkExtension("/deps/app.apk"))
	assert.True(t, HasApkExtension("/deps/APP.APK"))
	assert.False(t, HasApkExtension("/deps/app.jar"))
}

// ---------------------------------------------------------------------------
// Apk predicates
// ---------------------------------------------------------------------------

func TestVersionMatchesExactAndLoose(t *testing.T) {
	m := testMatcher(fakeInfoProvider{
		"app.apk": {VersionName: "1.2.7", VersionCode: "127"},
	})
	assert.True(t, m.VersionMatches("app.apk", []string{"1.2.7"}))
	assert.True(t, m.VersionMatches("app.apk", []string{"127"}))
	assert.True(t, m.VersionMatches("app.apk", []string{"1.2"}))
	assert.True(t, m.VersionMatches("app.apk", []string{"9.9", "1.2"}))
	assert.False(t, m.VersionMatches("app.apk", []string{"1.3"}))
	assert.False(t, m.VersionMatches("missing.apk", []string{"1.2.7"}))
}

func TestVersionRangeMatches(t *testing.T) {
	m := testMatcher(fakeInfoProvider{
		"app.apk":   {VersionName: "2.5.1"},
		"blank.apk": {VersionName: ""},
	})
	assert.True(t, m.VersionRangeMatches("app.apk", "2.0", "3.0"))
	assert.False(t, m.VersionRangeMatches("app.apk", "2.6", ""))
	assert.False(t, m.VersionRangeMatches("blank.apk", "2.0", "3.0"))
	assert.False(t, m.VersionRangeMatches("missing.apk", "2.0", "3.0"))
}

func TestPackageMatches(t *testing.T) {
	m := testMatcher(fakeInfoProvider{
		"app.apk": {Package: "com.example.app"},
	})
	assert.True(t, m.PackageMatches("app.apk", "com.example.app"))
	assert.False(t, m.PackageMatches("app.apk", "com.example"))
	assert.False(t, m.PackageMatches("missing.apk", "com.example.app"))
}

func TestAbiMatchesNoNativeCodeAcceptsAll(t *testing.T) {
	m := testMatcher(fakeInfoProvider{
		"pure.apk": {Package: "com.example"},
	})
	assert.True(t, m.AbiMatches("pure.apk", []string{"arm64"}, false))
	assert.True(t, m.AbiMatches("pure.apk", []string{"x86"}, true))
}

func TestAbiMatchesExactChecksPrimaryOnly(t *testing.T) {
	m := testMatcher(fakeInfoProvider{
		"native.apk": {NativeCode: []string{"armeabi"}},
	})
	// Primary "arm64" is absent; "armeabi" being second is irrelevant.
	assert.False(t, m.AbiMatches("native.apk", []string{"arm64", "armeabi"}, true))
	assert.True(t, m.AbiMatches("native.apk", []string{"armeabi", "arm64"}, true))
}

func TestAbiMatchesAny(t *testing.T) {
	m := testMatcher(fakeInfoProvider{
		"native.apk": {NativeCode: []string{"armeabi"}},
	})
	assert.True(t, m.AbiMatches("native.apk", []string{"arm64", "armeabi"}, false))
	assert.False(t, m.AbiMatches("native.apk", []string{"arm64", "x86"}, false))
}

func TestUIAutoMatches(t *testing.T) {
	m := testMatcher(fakeInfoProvider{
		"uiauto.apk": {Package: "com.arm.wa.uiauto.benchmark"},
		"plain.apk":  {Package: "com.example.app"},
	})
	assert.True(t, m.UIAutoMatches("uiauto.apk", true))
	assert.False(t, m.UIAutoMatches("uiauto.apk", false))
	assert.True(t, m.UIAutoMatches("plain.apk", false))
	assert.False(t, m.UIAutoMatches("plain.apk", true))
}

func TestFileNameMatchesSubstringAndRegexp(t *testing.T) {
	assert.True(t, FileNameMatches("/deps/app-release.apk", "release"))
	assert.True(t, FileNameMatches("/deps/app-release.apk", `app-.*\.apk`))
	assert.False(t, FileNameMatches("/deps/app-release.apk", "debug"))
	// An invalid pattern that is not a substring never matches.
	assert.False(t, FileNameMatches("/deps/app-release.apk", "deb[ug"))
}

// ---------------------------------------------------------------------------
// Apk conjunction
// ---------------------------------------------------------------------------

func TestApkMatchConjunction(t *testing.T) {
	m := testMatcher(fakeInfoProvider{
		"app-release.apk": {
			Package:     "com.example.app",
			VersionName: "2.5.1",
			NativeCode:  []string{"arm64-v8a"},
		},
	})
	res := types.ApkFile{
		OwnerName:    "example",
		Variant:      "release",
		Version:      []string{"2.5"},
		MinVersion:   "2.0",
		MaxVersion:   "3.0",
		Package:      "com.example.app",
		SupportedAbi: []string{"arm64-v8a"},
	}
	assert.True(t, m.Matches(res, "/deps/example/app-release.apk"))

	wrongPackage := res
	wrongPackage.Package = "com.other"
	assert.False(t, m.Matches(wrongPackage, "/deps/example/app-release.apk"))

	wrongVersion := res
	wrongVersion.Version = []string{"3.1"}
	assert.False(t, m.Matches(wrongVersion, "/deps/example/app-release.apk"))
}

func TestApkMatchUnconstrainedAcceptsAnyKnownApk(t *testing.T) {
	m := testMatcher(fakeInfoProvider{
		"app.apk": {Package: "com.example.app"},
	})
	assert.True(t, m.Matches(types.ApkFile{OwnerName: "example"}, "app.apk"))
	// No metadata means the uiauto predicate cannot be evaluated.
	assert.False(t, m.Matches(types.ApkFile{OwnerName: "example"}, "missing.apk"))
}
