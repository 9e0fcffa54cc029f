package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultCompiler, cfg.Compiler)
	assert.Equal(t, TargetExecutable, cfg.Target)
	assert.Equal(t, DefaultPlatform, cfg.Platform)
	assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	assert.Equal(t, DefaultTestCommand, cfg.TestCommand)
	assert.Equal(t, []string{"main.{EXT}"}, cfg.SourceFiles)
	assert.Equal(t, 1, cfg.ParallelJobs)
	assert.NotEmpty(t, cfg.ProjectDirectory)
	assert.False(t, cfg.CleanBuild)
	assert.False(t, cfg.RunWhenBuilt)
	assert.False(t, cfg.TestWhenBuilt)

	flag, ok := cfg.TargetFlag()
	assert.True(t, ok)
	assert.Equal(t, "", flag)

	profile, ok := cfg.Profile()
	require.True(t, ok)
	assert.Equal(t, "exe", profile.ExecutableExtension)
}

func TestParseTargetKind(t *testing.T) {
	tests := []struct {
		in     string
		want   TargetKind
		wantOK bool
	}{
		{"executable", TargetExecutable, true},
		{"dynamicLibrary", TargetDynamicLibrary, true},
		{"dynamiclibrary", TargetDynamicLibrary, true},
		{"STATICLIBRARY", TargetStaticLibrary, true},
		{"objectFile", TargetObjectFile, true},
		{"assembly", TargetAssembly, true},
		{"Plugin", TargetKind("plugin"), false},
		{"", TargetKind(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTargetKind(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestTargetKind_FileKind(t *testing.T) {
	assert.Equal(t, KindExecutable, TargetExecutable.FileKind())
	assert.Equal(t, KindDynamicLibrary, TargetDynamicLibrary.FileKind())
	assert.Equal(t, KindStaticLibrary, TargetStaticLibrary.FileKind())
	assert.Equal(t, KindObject, TargetObjectFile.FileKind())
	assert.Equal(t, KindAssembly, TargetAssembly.FileKind())
}

func TestPlatformProfile_Extension(t *testing.T) {
	empty := PlatformProfile{}

	tests := []struct {
		name    string
		profile PlatformProfile
		kind    FileKind
		want    string
		wantOK  bool
	}{
		{"source fallback", empty, KindSource, "cpp", true},
		{"header fallback", empty, KindHeader, "h", true},
		{"object fallback", empty, KindObject, "obj", true},
		{"assembly fallback", empty, KindAssembly, "s", true},
		{"dynamic library required", empty, KindDynamicLibrary, "", false},
		{"static library required", empty, KindStaticLibrary, "", false},
		{"executable required", empty, KindExecutable, "", false},
		{"unknown kind", empty, FileKind("bogus"), "", false},
		{"source override", PlatformProfile{SourceExtension: "cc"}, KindSource, "cc", true},
		{"header does not follow source", PlatformProfile{SourceExtension: "cc"}, KindHeader, "h", true},
		{"executable present", PlatformProfile{ExecutableExtension: "out"}, KindExecutable, "out", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.profile.Extension(tt.kind)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*BuildConfiguration)
		wantWarnings int
		wantErr      bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(*BuildConfiguration) {},
		},
		{
			name:         "unknown target",
			mutate:       func(c *BuildConfiguration) { c.Target = "plugin" },
			wantWarnings: 1,
		},
		{
			name:         "unknown platform",
			mutate:       func(c *BuildConfiguration) { c.Platform = "plan9-arm" },
			wantWarnings: 1,
		},
		{
			name: "unknown target and platform",
			mutate: func(c *BuildConfiguration) {
				c.Target = "plugin"
				c.Platform = "plan9-arm"
			},
			wantWarnings: 2,
		},
		{
			name:    "negative parallel jobs",
			mutate:  func(c *BuildConfiguration) { c.ParallelJobs = -2 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			warnings, err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, warnings, tt.wantWarnings)
		})
	}
}

func TestValidate_ListsKnownPlatforms(t *testing.T) {
	cfg := Default()
	cfg.Platform = "plan9-arm"

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "linux-x64, linux-x86, win-x64, win-x86")
}

func TestLoad(t *testing.T) {
	t.Run("supplied maps replace defaults", func(t *testing.T) {
		viper.Reset()
		viper.Set("compiler", "clang++")
		viper.Set("projectDirectory", "/work/proj")
		viper.Set("compilationTarget", "DynamicLibrary")
		viper.Set("compilationPlatform", "Custom-ARM")
		viper.Set("compilationTargetFlags", map[string]any{
			"dynamicLibrary": "-shared -fPIC",
		})
		viper.Set("compilationPlatformOpts", map[string]any{
			"Custom-ARM": map[string]any{
				"sourceFileExtention":     "cc",
				"headerFileExtension":     "hpp",
				"dynamicLibraryExtention": "so",
				"staticLibraryExtension":  "a",
				"executableExtention":     "elf",
			},
		})

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "clang++", cfg.Compiler)
		assert.Equal(t, "/work/proj", cfg.ProjectDirectory)
		assert.Equal(t, TargetDynamicLibrary, cfg.Target)
		assert.Equal(t, "custom-arm", cfg.Platform)

		want := map[string]PlatformProfile{
			"custom-arm": {
				SourceExtension:         "cc",
				HeaderExtension:         "hpp",
				DynamicLibraryExtension: "so",
				StaticLibraryExtension:  "a",
				ExecutableExtension:     "elf",
			},
		}
		if diff := cmp.Diff(want, cfg.Platforms); diff != "" {
			t.Errorf("platforms (-want +got):\n%s", diff)
		}

		if diff := cmp.Diff(map[TargetKind]string{TargetDynamicLibrary: "-shared -fPIC"}, cfg.TargetFlags); diff != "" {
			t.Errorf("target flags (-want +got):\n%s", diff)
		}
	})

	t.Run("historical spelling wins", func(t *testing.T) {
		viper.Reset()
		viper.Set("compilationPlatformOpts", map[string]any{
			"x": map[string]any{
				"objectFileExtention": "o",
				"objectFileExtension": "obj2",
			},
		})

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "o", cfg.Platforms["x"].ObjectExtension)
	})

	t.Run("empty document gets defaults", func(t *testing.T) {
		viper.Reset()

		cfg, err := Load()
		require.NoError(t, err)

		if diff := cmp.Diff(DefaultPlatforms(), cfg.Platforms); diff != "" {
			t.Errorf("platforms (-want +got):\n%s", diff)
		}
		assert.Equal(t, DefaultTargetFlags(), cfg.TargetFlags)
		assert.Equal(t, DefaultSourceFiles(), cfg.SourceFiles)
	})

	t.Run("wrong type fails to decode", func(t *testing.T) {
		viper.Reset()
		viper.Set("parallelJobs", "many")

		_, err := Load()
		assert.Error(t, err)
	})
}
