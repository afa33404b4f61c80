package core

import (
	"path/filepath"
	"regexp"
	"strings"

	"wa-resolver/internal/ports"
	"wa-resolver/internal/types"
)

// uiautoNamespace marks packages that are UI-automation test bundles.
const uiautoNamespace = "com.arm.wa.uiauto"

// ApkExtension is the file extension candidate paths must carry to be
// considered for apk resources at all.
const ApkExtension = ".apk"

// Matcher evaluates a resource's match predicate against candidate
// paths. Apk predicates consult the metadata provider; evaluation is
// total, so any failure to obtain metadata is a non-match rather than
// an error.
type Matcher struct {
	Info ports.ApkInfoProvider
}

func NewMatcher(info ports.ApkInfoProvider) Matcher {
	return Matcher{Info: info}
}

// Matches applies the kind-specific predicate of a resource to a
// candidate path.
func (m Matcher) Matches(res types.Resource, path string) bool {
	switch r := res.(type) {
	case types.File:
		return r.Path == path
	case types.Executable:
		return r.Filename == filepath.Base(path)
	case types.ReventFile:
		return reventMatches(r, path)
	case types.JarFile:
		return true
	case types.ApkFile:
		return m.apkMatches(r, path)
	default:
		return false
	}
}

// HasApkExtension is the cheap pre-filter sources apply before running
// the full apk predicate conjunction.
func HasApkExtension(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ApkExtension
}

// reventMatches splits the candidate's base filename on dots. With more
// than two parts the first two must equal (target, stage); otherwise the
// sole leading part must equal the stage.
func reventMatches(r types.ReventFile, path string) bool {
	filename := filepath.Base(path)
	parts := strings.Split(filename, ".")
	if len(parts) > 2 {
		return parts[0] == r.Target && parts[1] == r.Stage
	}
	return parts[0] == r.Stage
}

// apkMatches is the conjunction of every predicate whose parameter was
// supplied on the resource; unsupplied predicates hold trivially.
func (m Matcher) apkMatches(r types.ApkFile, path string) bool {
	nameMatches := true
	versionMatches := true
	versionRangeMatches := true
	packageMatches := true
	abiMatches := true
	uiautoMatches := m.UIAutoMatches(path, r.UIAuto)
	if len(r.Version) > 0 {
		versionMatches = m.VersionMatches(path, r.Version)
	}
	if r.MinVersion != "" || r.MaxVersion != "" {
		versionRangeMatches = m.VersionRangeMatches(path, r.MinVersion, r.MaxVersion)
	}
	if r.Variant != "" {
		nameMatches = FileNameMatches(path, r.Variant)
	}
	if r.Package != "" {
		packageMatches = m.PackageMatches(path, r.Package)
	}
	if len(r.SupportedAbi) > 0 {
		abiMatches = m.AbiMatches(path, r.SupportedAbi, r.ExactAbi)
	}
	return nameMatches && versionMatches && versionRangeMatches &&
		uiautoMatches && packageMatches && abiMatches
}

// VersionMatches accepts when the candidate's version name or version
// code equals any requested version, or when loose prefix matching
// succeeds against any of them.
func (m Matcher) VersionMatches(path string, versions []string) bool {
	info, ok := m.Info.Info(path)
	if !ok {
		return false
	}
	for _, version := range versions {
		if version == info.VersionName || version == info.VersionCode {
			return true
		}
		if LooseVersionMatches(version, info.VersionName) {
			return true
		}
	}
	return false
}

// VersionRangeMatches accepts when the candidate's version name lies
// within the requested inclusive range. A candidate without metadata or
// with an empty version name never matches a bounded range.
func (m Matcher) VersionRangeMatches(path string, minVersion string, maxVersion string) bool {
	versionName := ""
	if info, ok := m.Info.Info(path); ok {
		versionName = info.VersionName
	}
	return RangeVersionMatches(versionName, minVersion, maxVersion)
}

// PackageMatches accepts only an exact package identifier match.
func (m Matcher) PackageMatches(path string, pkg string) bool {
	info, ok := m.Info.Info(path)
	if !ok {
		return false
	}
	return info.Package == pkg
}

// AbiMatches accepts a candidate with no native code unconditionally
// (architecture independent). With exactAbi only the first requested ABI
// is checked against the native-code list; otherwise any requested ABI
// present in the list suffices.
func (m Matcher) AbiMatches(path string, supportedAbi []string, exactAbi bool) bool {
	info, ok := m.Info.Info(path)
	if !ok {
		return false
	}
	if len(info.NativeCode) == 0 {
		return true
	}
	if exactAbi {
		return containsString(info.NativeCode, supportedAbi[0])
	}
	for _, abi := range supportedAbi {
		if containsString(info.NativeCode, abi) {
			return true
		}
	}
	return false
}

// UIAutoMatches accepts when the candidate package living in the
// UI-automation namespace agrees with the requested flag.
func (m Matcher) UIAutoMatches(path string, uiauto bool) bool {
	info, ok := m.Info.Info(path)
	if !ok {
		return false
	}
	return uiauto == strings.Contains(info.Package, uiautoNamespace)
}

// FileNameMatches accepts when the pattern is a literal substring of the
// candidate's base filename, or matches it as a regular expression. An
// invalid regular expression falls back to the substring result only.
func FileNameMatches(path string, pattern string) bool {
	filename := filepath.Base(path)
	if strings.Contains(filename, pattern) {
		return true
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(filename)
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
