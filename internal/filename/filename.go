// Package filename resolves path templates against a build configuration.
//
// A template may contain any of the placeholders {PROJ-DIR}, {OS-ARCH} and
// {EXT}. {EXT} depends on the kind of file being named and on the extension
// profile of the selected platform. Resolution never touches the filesystem.
package filename

import (
	"strings"

	"github.com/Norgate-AV/daemonic/internal/config"
)

// Placeholders understood by Resolve
const (
	ProjectDir = "{PROJ-DIR}"
	OSArch     = "{OS-ARCH}"
	Ext        = "{EXT}"
)

// Placeholder is one entry of the resolution table.
type Placeholder struct {
	Name  string
	Value string
}

// Engine resolves templates for one configuration.
type Engine struct {
	projectDir string
	platform   string
	profile    config.PlatformProfile
}

// New creates an engine for cfg. A platform missing from cfg.Platforms
// yields an empty profile, so library and executable kinds resolve {EXT}
// to the empty string.
func New(cfg *config.BuildConfiguration) *Engine {
	profile, _ := cfg.Profile()

	return &Engine{
		projectDir: cfg.ProjectDirectory,
		platform:   cfg.Platform,
		profile:    profile,
	}
}

// Resolve substitutes every placeholder in template.
func Resolve(template string, kind config.FileKind, cfg *config.BuildConfiguration) string {
	return New(cfg).Resolve(template, kind)
}

// Placeholders returns the resolution table for kind, in substitution order.
func (e *Engine) Placeholders(kind config.FileKind) []Placeholder {
	ext, _ := e.profile.Extension(kind)

	return []Placeholder{
		{Name: ProjectDir, Value: e.projectDir},
		{Name: OSArch, Value: e.platform},
		{Name: Ext, Value: ext},
	}
}

// Resolve substitutes every placeholder in template in a single pass.
func (e *Engine) Resolve(template string, kind config.FileKind) string {
	table := e.Placeholders(kind)

	pairs := make([]string, 0, 2*len(table))
	for _, p := range table {
		pairs = append(pairs, p.Name, p.Value)
	}

	return strings.NewReplacer(pairs...).Replace(template)
}

// Extension reports the extension {EXT} resolves to for kind.
func (e *Engine) Extension(kind config.FileKind) (string, bool) {
	return e.profile.Extension(kind)
}

// HasPlaceholder reports whether s still contains a known placeholder.
func HasPlaceholder(s string) bool {
	return strings.Contains(s, ProjectDir) || strings.Contains(s, OSArch) || strings.Contains(s, Ext)
}
