package config

import "strings"

// document mirrors the keys of the build configuration file. Field names
// follow the file's camelCase keys; viper matches them case-insensitively
// and lowercases map keys, so platform ids are compared lowercased.
type document struct {
	Compiler                string                     `mapstructure:"compiler"`
	ProjectDirectory        string                     `mapstructure:"projectDirectory"`
	CompilationTargetFlags  map[string]string          `mapstructure:"compilationTargetFlags"`
	CompilationPlatformOpts map[string]profileDocument `mapstructure:"compilationPlatformOpts"`
	CompilationTarget       string                     `mapstructure:"compilationTarget"`
	CompilationPlatform     string                     `mapstructure:"compilationPlatform"`
	AdditionalFlags         string                     `mapstructure:"additionalFlags"`
	CleanBuild              bool                       `mapstructure:"cleanBuild"`
	RunWhenBuilt            bool                       `mapstructure:"runWhenBuilt"`
	TestWhenBuilt           bool                       `mapstructure:"testWhenBuilt"`
	SourceFiles             []string                   `mapstructure:"sourceFiles"`
	ExternalSourceFiles     []string                   `mapstructure:"externalSourceFiles"`
	ObjectFiles             []string                   `mapstructure:"objectFiles"`
	DynamicLibraryFiles     []string                   `mapstructure:"dynamicLibraryFiles"`
	StaticLibraryFiles      []string                   `mapstructure:"staticLibraryFiles"`
	OutputFile              string                     `mapstructure:"outputFile"`
	AdditionalIncludePaths  []string                   `mapstructure:"additionalIncludePaths"`
	TestCommand             string                     `mapstructure:"testCommand"`
	ParallelJobs            int                        `mapstructure:"parallelJobs"`
	JournalDisabled         bool                       `mapstructure:"journalDisabled"`
}

// profileDocument accepts both the historical "Extention" spelling and
// the corrected one; the historical key wins when both are present.
type profileDocument struct {
	SourceFileExtention     string `mapstructure:"sourceFileExtention"`
	SourceFileExtension     string `mapstructure:"sourceFileExtension"`
	HeaderFileExtention     string `mapstructure:"headerFileExtention"`
	HeaderFileExtension     string `mapstructure:"headerFileExtension"`
	ObjectFileExtention     string `mapstructure:"objectFileExtention"`
	ObjectFileExtension     string `mapstructure:"objectFileExtension"`
	AssemblyExtention       string `mapstructure:"assemblyExtention"`
	AssemblyExtension       string `mapstructure:"assemblyExtension"`
	DynamicLibraryExtention string `mapstructure:"dynamicLibraryExtention"`
	DynamicLibraryExtension string `mapstructure:"dynamicLibraryExtension"`
	StaticLibraryExtention  string `mapstructure:"staticLibraryExtention"`
	StaticLibraryExtension  string `mapstructure:"staticLibraryExtension"`
	ExecutableExtention     string `mapstructure:"executableExtention"`
	ExecutableExtension     string `mapstructure:"executableExtension"`
}

func (p profileDocument) profile() PlatformProfile {
	return PlatformProfile{
		SourceExtension:         orDefault(p.SourceFileExtention, p.SourceFileExtension),
		HeaderExtension:         orDefault(p.HeaderFileExtention, p.HeaderFileExtension),
		ObjectExtension:         orDefault(p.ObjectFileExtention, p.ObjectFileExtension),
		AssemblyExtension:       orDefault(p.AssemblyExtention, p.AssemblyExtension),
		DynamicLibraryExtension: orDefault(p.DynamicLibraryExtention, p.DynamicLibraryExtension),
		StaticLibraryExtension:  orDefault(p.StaticLibraryExtention, p.StaticLibraryExtension),
		ExecutableExtension:     orDefault(p.ExecutableExtention, p.ExecutableExtension),
	}
}

func (d *document) configuration() *BuildConfiguration {
	cfg := &BuildConfiguration{
		Compiler:               d.Compiler,
		ProjectDirectory:       d.ProjectDirectory,
		Platform:               strings.ToLower(d.CompilationPlatform),
		AdditionalFlags:        d.AdditionalFlags,
		CleanBuild:             d.CleanBuild,
		RunWhenBuilt:           d.RunWhenBuilt,
		TestWhenBuilt:          d.TestWhenBuilt,
		SourceFiles:            d.SourceFiles,
		ExternalSourceFiles:    d.ExternalSourceFiles,
		ObjectFiles:            d.ObjectFiles,
		DynamicLibraryFiles:    d.DynamicLibraryFiles,
		StaticLibraryFiles:     d.StaticLibraryFiles,
		OutputFile:             d.OutputFile,
		AdditionalIncludePaths: d.AdditionalIncludePaths,
		TestCommand:            d.TestCommand,
		ParallelJobs:           d.ParallelJobs,
		JournalDisabled:        d.JournalDisabled,
	}

	if d.CompilationTarget != "" {
		cfg.Target, _ = ParseTargetKind(d.CompilationTarget)
	}

	if len(d.CompilationTargetFlags) > 0 {
		cfg.TargetFlags = make(map[TargetKind]string, len(d.CompilationTargetFlags))
		for name, flag := range d.CompilationTargetFlags {
			kind, _ := ParseTargetKind(name)
			cfg.TargetFlags[kind] = flag
		}
	}

	if len(d.CompilationPlatformOpts) > 0 {
		cfg.Platforms = make(map[string]PlatformProfile, len(d.CompilationPlatformOpts))
		for id, p := range d.CompilationPlatformOpts {
			cfg.Platforms[strings.ToLower(id)] = p.profile()
		}
	}

	return cfg
}
