package builder

import (
	"path/filepath"

	"github.com/Norgate-AV/daemonic/internal/config"
	"github.com/Norgate-AV/daemonic/internal/filename"
)

// Directories below the project root
const (
	SourceDir   = "src"
	ExternalDir = "external"
	BuildDir    = "build"
	LibDir      = "lib"
	BinDir      = "bin"
)

func (b *Builder) path(template string, kind config.FileKind) string {
	return filepath.Clean(filepath.FromSlash(b.engine.Resolve(template, kind)))
}

// OutputPath returns the resolved path of the final artifact.
func (b *Builder) OutputPath() string {
	return b.path("{PROJ-DIR}/"+BinDir+"/"+b.cfg.OutputFile, b.cfg.Target.FileKind())
}

// BuildRoot returns the directory holding objects and the journal.
func BuildRoot(cfg *config.BuildConfiguration) string {
	return filepath.Clean(filepath.FromSlash(filename.Resolve("{PROJ-DIR}/"+BuildDir, config.KindObject, cfg)))
}

// ObjectDirs returns the directories holding objects compiled from the
// project and external source groups. Precompiled objects live directly
// under build/ and are not included.
func ObjectDirs(cfg *config.BuildConfiguration) []string {
	root := BuildRoot(cfg)
	return []string{
		filepath.Join(root, SourceDir),
		filepath.Join(root, ExternalDir),
	}
}
