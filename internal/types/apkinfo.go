package types

// ApkInfoSchemaVersion is embedded in every persisted cache entry so the
// metadata shape can be migrated forward.
const ApkInfoSchemaVersion = 1

// ApkInfo is the introspected metadata of an apk file. Extraction is
// expensive, so records are cached keyed on the file's content identity
// (path plus mtime).
type ApkInfo struct {
	SchemaVersion int      `yaml:"schema_version"`
	Path          string   `yaml:"path"`
	Package       string   `yaml:"package"`
	Activity      string   `yaml:"activity"`
	Label         string   `yaml:"label"`
	VersionName   string   `yaml:"version_name"`
	VersionCode   string   `yaml:"version_code"`
	NativeCode    []string `yaml:"native_code"`
	Permissions   []string `yaml:"permissions"`
}
