package cache

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint("g++", []string{"-c", "main.cpp"})
	b := Fingerprint("g++", []string{"-c", "main.cpp"})
	assert.Equal(t, a, b, "Fingerprint should be consistent")
	assert.Len(t, a, 64)

	assert.NotEqual(t, a, Fingerprint("clang++", []string{"-c", "main.cpp"}))
	assert.NotEqual(t, a, Fingerprint("g++", []string{"-c main.cpp"}), "argument boundaries must matter")
	assert.NotEqual(t, a, Fingerprint("g++", []string{"main.cpp", "-c"}), "argument order must matter")
}

func TestHashFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.cpp", []byte("int main() {}"), 0o644))

	h1, err := HashFile(fs, "/a.cpp")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "/a.cpp", []byte("int main() { return 1; }"), 0o644))
	h2, err := HashFile(fs, "/a.cpp")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	_, err = HashFile(fs, "/missing.cpp")
	assert.Error(t, err)
}
