package utils

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPattern(t *testing.T) {
	tests := []struct {
		entry string
		want  bool
	}{
		{"main.cpp", false},
		{"main.{EXT}", false},
		{"*.cpp", true},
		{"util/?.cpp", true},
		{"[ab].cpp", true},
		{"**/*.cpp", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPattern(tt.entry), "IsPattern(%q)", tt.entry)
	}
}

func TestExpandGlob(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, f := range []string{
		"/p/src/main.cpp",
		"/p/src/b.cpp",
		"/p/src/a.cpp",
		"/p/src/a.h",
		"/p/src/util/str.cpp",
		"/p/src/util/deep/io.cpp",
	} {
		require.NoError(t, afero.WriteFile(fs, f, []byte("x"), 0o644))
	}

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"top level only", "*.cpp", []string{"a.cpp", "b.cpp", "main.cpp"}},
		{"single directory", "util/*.cpp", []string{"util/str.cpp"}},
		{"recursive", "**.cpp", []string{"a.cpp", "b.cpp", "main.cpp", "util/deep/io.cpp", "util/str.cpp"}},
		{"single character", "?.cpp", []string{"a.cpp", "b.cpp"}},
		{"no matches", "*.c", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandGlob(fs, "/p/src", tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandGlob_MissingRoot(t *testing.T) {
	_, err := ExpandGlob(afero.NewMemMapFs(), "/nowhere", "*.cpp")
	assert.Error(t, err)
}
