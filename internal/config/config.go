package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Default configuration values
const (
	DefaultCompiler     = "g++"
	DefaultTarget       = TargetExecutable
	DefaultPlatform     = "win-x64"
	DefaultOutputFile   = "{OS-ARCH}/program.{EXT}"
	DefaultTestCommand  = "node {PROJ-DIR}/tests/test.mjs"
	DefaultParallelJobs = 1
	DefaultConfigPath   = "./scripts/buildConfig.json"
)

// DefaultSourceFiles is used when the document lists no source files.
func DefaultSourceFiles() []string {
	return []string{"main.{EXT}"}
}

// DefaultTargetFlags returns the flag fragment for each target kind.
func DefaultTargetFlags() map[TargetKind]string {
	return map[TargetKind]string{
		TargetExecutable:     "",
		TargetDynamicLibrary: "-shared",
		TargetStaticLibrary:  "-static",
		TargetObjectFile:     "-c",
		TargetAssembly:       "-S",
	}
}

// DefaultPlatforms returns the built-in platform profiles.
func DefaultPlatforms() map[string]PlatformProfile {
	windows := PlatformProfile{
		DynamicLibraryExtension: "dll",
		StaticLibraryExtension:  "lib",
		ExecutableExtension:     "exe",
	}
	linux := PlatformProfile{
		DynamicLibraryExtension: "so",
		StaticLibraryExtension:  "a",
		ExecutableExtension:     "out",
	}

	return map[string]PlatformProfile{
		"win-x64":   windows,
		"win-x86":   windows,
		"linux-x64": linux,
		"linux-x86": linux,
	}
}

// BuildConfiguration holds everything one build invocation needs.
// It is constructed once and must not be modified afterwards.
type BuildConfiguration struct {
	// Compiler executable name or path
	Compiler string

	// Root for all path templates ({PROJ-DIR})
	ProjectDirectory string

	// Flag fragment per target kind
	TargetFlags map[TargetKind]string
	// Extension profile per platform id
	Platforms map[string]PlatformProfile

	// Selected target kind and platform id ({OS-ARCH})
	Target   TargetKind
	Platform string

	// Raw flags appended to every compiler invocation
	AdditionalFlags string

	CleanBuild    bool
	RunWhenBuilt  bool
	TestWhenBuilt bool

	// Input entries, in link order
	SourceFiles         []string
	ExternalSourceFiles []string
	ObjectFiles         []string
	DynamicLibraryFiles []string
	StaticLibraryFiles  []string

	// Template for the final artifact, relative to bin/
	OutputFile string

	AdditionalIncludePaths []string

	// Template for the test-runner invocation
	TestCommand string

	// Maximum number of concurrent object compiles; 1 is strictly sequential
	ParallelJobs int

	// Skip the build journal
	JournalDisabled bool
}

// Default returns the configuration used when no document could be read.
func Default() *BuildConfiguration {
	cfg := &BuildConfiguration{}
	cfg.applyDefaults()
	return cfg
}

// TargetFlag returns the flag fragment for the selected target kind.
func (c *BuildConfiguration) TargetFlag() (string, bool) {
	flag, ok := c.TargetFlags[c.Target]
	return flag, ok
}

// Profile returns the extension profile for the selected platform.
func (c *BuildConfiguration) Profile() (PlatformProfile, bool) {
	p, ok := c.Platforms[c.Platform]
	return p, ok
}

func (c *BuildConfiguration) applyDefaults() {
	if c.Compiler == "" {
		c.Compiler = DefaultCompiler
	}

	if c.ProjectDirectory == "" {
		if wd, err := os.Getwd(); err == nil {
			c.ProjectDirectory = filepath.ToSlash(wd)
		}
	}

	if len(c.TargetFlags) == 0 {
		c.TargetFlags = DefaultTargetFlags()
	}

	if len(c.Platforms) == 0 {
		c.Platforms = DefaultPlatforms()
	}

	if c.Target == "" {
		c.Target = DefaultTarget
	}

	if c.Platform == "" {
		c.Platform = DefaultPlatform
	}

	if len(c.SourceFiles) == 0 {
		c.SourceFiles = DefaultSourceFiles()
	}

	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}

	if c.TestCommand == "" {
		c.TestCommand = DefaultTestCommand
	}

	if c.ParallelJobs == 0 {
		c.ParallelJobs = DefaultParallelJobs
	}
}

// Validate checks the configuration. Unknown target kinds and platform ids
// are not errors: they are returned as warnings and resolve to empty
// extensions and flag fragments.
func (c *BuildConfiguration) Validate() ([]string, error) {
	if c.ParallelJobs < 0 {
		return nil, fmt.Errorf("invalid parallelJobs: %d", c.ParallelJobs)
	}

	var warnings []string

	if _, ok := c.TargetFlag(); !ok {
		warnings = append(warnings, fmt.Sprintf("compilation target %q has no flag fragment (known: %s)",
			c.Target, strings.Join(targetKeys(c.TargetFlags), ", ")))
	}

	if _, ok := c.Profile(); !ok {
		warnings = append(warnings, fmt.Sprintf("compilation platform %q has no extension profile (known: %s)",
			c.Platform, strings.Join(platformKeys(c.Platforms), ", ")))
	}

	return warnings, nil
}

func targetKeys(m map[TargetKind]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}

	sort.Strings(keys)
	return keys
}

func platformKeys(m map[string]PlatformProfile) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}
