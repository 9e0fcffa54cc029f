package config

import "strings"

// TargetKind selects the link-flag fragment and the output extension.
type TargetKind string

const (
	TargetExecutable     TargetKind = "executable"
	TargetDynamicLibrary TargetKind = "dynamicLibrary"
	TargetStaticLibrary  TargetKind = "staticLibrary"
	TargetObjectFile     TargetKind = "objectFile"
	TargetAssembly       TargetKind = "assembly"
)

var targetKinds = []TargetKind{
	TargetExecutable,
	TargetDynamicLibrary,
	TargetStaticLibrary,
	TargetObjectFile,
	TargetAssembly,
}

// ParseTargetKind maps a target name onto a known TargetKind, ignoring case.
// Unknown names are returned lowercased with ok set to false.
func ParseTargetKind(s string) (TargetKind, bool) {
	for _, k := range targetKinds {
		if strings.EqualFold(s, string(k)) {
			return k, true
		}
	}

	return TargetKind(strings.ToLower(s)), false
}

// FileKind returns the file kind whose extension names this target's output.
func (k TargetKind) FileKind() FileKind {
	switch k {
	case TargetExecutable:
		return KindExecutable
	case TargetDynamicLibrary:
		return KindDynamicLibrary
	case TargetStaticLibrary:
		return KindStaticLibrary
	case TargetObjectFile:
		return KindObject
	case TargetAssembly:
		return KindAssembly
	}

	return FileKind(k)
}

// FileKind selects which extension {EXT} resolves to.
type FileKind string

const (
	KindSource         FileKind = "source"
	KindHeader         FileKind = "header"
	KindObject         FileKind = "object"
	KindAssembly       FileKind = "assembly"
	KindDynamicLibrary FileKind = "dynamicLibrary"
	KindStaticLibrary  FileKind = "staticLibrary"
	KindExecutable     FileKind = "executable"
)

// Fallback extensions for kinds a profile may omit
const (
	DefaultSourceExtension   = "cpp"
	DefaultHeaderExtension   = "h"
	DefaultObjectExtension   = "obj"
	DefaultAssemblyExtension = "s"
)

// PlatformProfile holds the file extensions used on one platform.
type PlatformProfile struct {
	SourceExtension   string
	HeaderExtension   string
	ObjectExtension   string
	AssemblyExtension string

	// Required: no fallback exists for these
	DynamicLibraryExtension string
	StaticLibraryExtension  string
	ExecutableExtension     string
}

// Extension returns the extension for kind. Source, header, object and
// assembly fall back to fixed defaults; the library and executable kinds
// report false when the profile omits them.
func (p PlatformProfile) Extension(kind FileKind) (string, bool) {
	switch kind {
	case KindSource:
		return orDefault(p.SourceExtension, DefaultSourceExtension), true
	case KindHeader:
		return orDefault(p.HeaderExtension, DefaultHeaderExtension), true
	case KindObject:
		return orDefault(p.ObjectExtension, DefaultObjectExtension), true
	case KindAssembly:
		return orDefault(p.AssemblyExtension, DefaultAssemblyExtension), true
	case KindDynamicLibrary:
		return p.DynamicLibraryExtension, p.DynamicLibraryExtension != ""
	case KindStaticLibrary:
		return p.StaticLibraryExtension, p.StaticLibraryExtension != ""
	case KindExecutable:
		return p.ExecutableExtension, p.ExecutableExtension != ""
	}

	return "", false
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}

	return v
}
