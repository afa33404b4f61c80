package types

import "fmt"

// ResourceKind discriminates the closed set of resource variants the
// resolver knows how to match.
type ResourceKind string

const (
	KindFile       ResourceKind = "file"
	KindExecutable ResourceKind = "executable"
	KindRevent     ResourceKind = "revent"
	KindJar        ResourceKind = "jar"
	KindApk        ResourceKind = "apk"
)

// NoOwner is the owner value for resources not requested on behalf of a
// particular workload or instrument. Sources treat it as "search the
// shared locations only".
const NoOwner = ""

// Resource is an abstract request for a file some component needs. A
// resource is built immediately before a resolve call, is never mutated
// afterwards, and is never persisted. The variant set is closed: sources
// and matchers dispatch exhaustively on the concrete type.
type Resource interface {
	fmt.Stringer
	Kind() ResourceKind
	Owner() string
	sealed()
}

// File requests a file at an exact path relative to the owner's assets.
type File struct {
	OwnerName string
	Path      string
}

func (File) Kind() ResourceKind { return KindFile }
func (r File) Owner() string    { return r.OwnerName }
func (File) sealed()            {}

func (r File) String() string {
	return fmt.Sprintf("<%s's file %s>", ownerLabel(r.OwnerName), r.Path)
}

// Executable requests a binary built for a particular ABI. The ABI
// steers which subdirectory sources look in; the match predicate itself
// only compares base filenames.
type Executable struct {
	OwnerName string
	Abi       string
	Filename  string
}

func (Executable) Kind() ResourceKind { return KindExecutable }
func (r Executable) Owner() string    { return r.OwnerName }
func (Executable) sealed()            {}

func (r Executable) String() string {
	return fmt.Sprintf("<%s's %s executable %s>", ownerLabel(r.OwnerName), r.Abi, r.Filename)
}

// ReventFile requests a recorded input capture for a workload stage,
// optionally narrowed to a specific target.
type ReventFile struct {
	OwnerName string
	Stage     string
	Target    string
}

func (ReventFile) Kind() ResourceKind { return KindRevent }
func (r ReventFile) Owner() string    { return r.OwnerName }
func (ReventFile) sealed()            {}

func (r ReventFile) String() string {
	return fmt.Sprintf("<%s's revent %s>", ownerLabel(r.OwnerName), r.Stage)
}

// JarFile requests the owner's jar. An owner is assumed to have at most
// one jar file, so any candidate a source presents is accepted; when a
// search directory holds several jars, whichever the source enumerates
// first wins. That is a policy choice, not a correctness guarantee.
type JarFile struct {
	OwnerName string
}

func (JarFile) Kind() ResourceKind { return KindJar }
func (r JarFile) Owner() string    { return r.OwnerName }
func (JarFile) sealed()            {}

func (r JarFile) String() string {
	return fmt.Sprintf("<%s's jar>", ownerLabel(r.OwnerName))
}

// ApkFile requests an apk narrowed by any combination of variant name,
// version (exact list, loose prefix, or min/max range), package id, ABI
// and uiauto flag. Unset fields do not constrain the match.
type ApkFile struct {
	OwnerName    string
	Variant      string
	Version      []string
	MinVersion   string
	MaxVersion   string
	Package      string
	UIAuto       bool
	ExactAbi     bool
	SupportedAbi []string
}

func (ApkFile) Kind() ResourceKind { return KindApk }
func (r ApkFile) Owner() string    { return r.OwnerName }
func (ApkFile) sealed()            {}

func (r ApkFile) String() string {
	text := fmt.Sprintf("<%s's apk", ownerLabel(r.OwnerName))
	if r.Variant != "" {
		text += " " + r.Variant
	}
	if len(r.Version) > 0 {
		text += fmt.Sprintf(" %v", r.Version)
	}
	if r.UIAuto {
		text += " uiauto"
	}
	return text + ">"
}

func ownerLabel(owner string) string {
	if owner == NoOwner {
		return "no-one"
	}
	return owner
}
