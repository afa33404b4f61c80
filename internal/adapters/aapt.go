package adapters

import (
	"bufio"
	"os/exec"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"wa-resolver/internal/ports"
	"wa-resolver/internal/shared"
	"wa-resolver/internal/types"
)

// AaptExtractor introspects apk files by running `aapt dump badging`
// and parsing its line-oriented output.
type AaptExtractor struct {
	Binary string
}

func NewAaptExtractor(binary string) AaptExtractor {
	if binary == "" {
		binary = "aapt"
	}
	return AaptExtractor{Binary: binary}
}

func (e AaptExtractor) Extract(path string) (types.ApkInfo, error) {
	output, err := exec.Command(e.Binary, "dump", "badging", path).CombinedOutput()
	if err != nil {
		return types.ApkInfo{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("aapt dump badging failed").
			WithCause(shared.CommandError(output, err))
	}
	info := ParseBadging(string(output))
	info.Path = path
	info.SchemaVersion = types.ApkInfoSchemaVersion
	return info, nil
}

var badgingAttr = regexp.MustCompile(`([\w-]+)='([^']*)'`)
var badgingQuoted = regexp.MustCompile(`'([^']*)'`)

// ParseBadging parses the output of `aapt dump badging`. Lines that do
// not carry metadata of interest are ignored.
func ParseBadging(dump string) types.ApkInfo {
	info := types.ApkInfo{SchemaVersion: types.ApkInfoSchemaVersion}
	scanner := bufio.NewScanner(strings.NewReader(dump))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "package:"):
			attrs := badgingAttrs(line)
			info.Package = attrs["name"]
			info.VersionCode = attrs["versionCode"]
			info.VersionName = attrs["versionName"]
		case strings.HasPrefix(line, "launchable-activity:"):
			attrs := badgingAttrs(line)
			info.Activity = attrs["name"]
			if info.Label == "" {
				info.Label = attrs["label"]
			}
		case strings.HasPrefix(line, "application-label:"):
			if match := badgingQuoted.FindStringSubmatch(line); match != nil {
				info.Label = match[1]
			}
		case strings.HasPrefix(line, "native-code:"):
			for _, match := range badgingQuoted.FindAllStringSubmatch(line, -1) {
				info.NativeCode = append(info.NativeCode, match[1])
			}
		case strings.HasPrefix(line, "uses-permission:"):
			attrs := badgingAttrs(line)
			if attrs["name"] != "" {
				info.Permissions = append(info.Permissions, attrs["name"])
			}
		}
	}
	return info
}

func badgingAttrs(line string) map[string]string {
	attrs := map[string]string{}
	for _, match := range badgingAttr.FindAllStringSubmatch(line, -1) {
		attrs[match[1]] = match[2]
	}
	return attrs
}

var _ ports.ApkInfoExtractor = AaptExtractor{}
