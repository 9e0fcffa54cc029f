package cache

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAt(t *testing.T, fs afero.Fs, path string, mtime time.Time) {
	t.Helper()

	require.NoError(t, afero.WriteFile(fs, path, []byte("x"), 0o644))
	require.NoError(t, fs.Chtimes(path, mtime, mtime))
}

func TestTracker_NeedsRebuild(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		srcTime   time.Time
		objTime   time.Time
		hasSource bool
		hasObject bool
		want      bool
	}{
		{"source newer than object", base.Add(time.Minute), base, true, true, true},
		{"object newer than source", base, base.Add(time.Minute), true, true, false},
		{"equal mtimes are fresh", base, base, true, true, false},
		{"missing object", base, time.Time{}, true, false, true},
		{"missing source", time.Time{}, base, false, true, true},
		{"both missing", time.Time{}, time.Time{}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.hasSource {
				writeAt(t, fs, "/p/src/main.cpp", tt.srcTime)
			}

			if tt.hasObject {
				writeAt(t, fs, "/p/build/src/main.cpp.obj", tt.objTime)
			}

			tracker := NewTracker(fs)
			got := tracker.NeedsRebuild("/p/src/main.cpp", "/p/build/src/main.cpp.obj")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTracker_ContentBlind(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	writeAt(t, fs, "/p/a.cpp", base)
	writeAt(t, fs, "/p/a.obj", base.Add(time.Second))

	// Rewriting the source without moving its mtime forward is not noticed.
	require.NoError(t, afero.WriteFile(fs, "/p/a.cpp", []byte("changed"), 0o644))
	require.NoError(t, fs.Chtimes("/p/a.cpp", base, base))

	assert.False(t, NewTracker(fs).NeedsRebuild("/p/a.cpp", "/p/a.obj"))
}
