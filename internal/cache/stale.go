package cache

import (
	"github.com/spf13/afero"
)

// Tracker decides whether an object file is out of date with its source.
// It compares modification times only; included headers are not considered.
type Tracker struct {
	fs afero.Fs
}

// NewTracker creates a tracker reading metadata from fs.
func NewTracker(fs afero.Fs) *Tracker {
	return &Tracker{fs: fs}
}

// NeedsRebuild reports whether source is newer than object. When either
// file cannot be stat'ed the object is treated as stale.
func (t *Tracker) NeedsRebuild(source, object string) bool {
	srcInfo, err := t.fs.Stat(source)
	if err != nil {
		return true
	}

	objInfo, err := t.fs.Stat(object)
	if err != nil {
		return true
	}

	return srcInfo.ModTime().After(objInfo.ModTime())
}
