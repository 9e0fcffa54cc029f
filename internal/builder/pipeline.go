package builder

import (
	"context"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"zombiezen.com/go/log"

	"github.com/Norgate-AV/daemonic/internal/cache"
	"github.com/Norgate-AV/daemonic/internal/compiler"
	"github.com/Norgate-AV/daemonic/internal/config"
	"github.com/Norgate-AV/daemonic/internal/filename"
	"github.com/Norgate-AV/daemonic/internal/utils"
)

// TranslationUnit is one source entry with its own compile-or-reuse decision.
type TranslationUnit struct {
	// Entry relative to its group directory, after template resolution
	Entry  string
	Source string
	Object string
	Stale  bool
}

type outcome int

const (
	outcomeReused outcome = iota
	outcomeCompiled
	outcomeFellBack
)

// Pipeline resolves every configured entry into the ordered list of link
// inputs: project sources, external sources, precompiled objects, dynamic
// libraries, static libraries. Stale sources are compiled to objects first
// unless the configuration asks for a clean build.
func (b *Builder) Pipeline(ctx context.Context) (*Report, error) {
	log.Infof(ctx, "Pre building...")

	if filename.HasPlaceholder(b.cfg.ProjectDirectory) {
		log.Warnf(ctx, "Project directory %s contains a placeholder; it is used literally", b.cfg.ProjectDirectory)
	}

	report := &Report{}

	for _, group := range b.groups() {
		units := b.units(ctx, group.dir, group.entries)

		if b.cfg.CleanBuild {
			for _, u := range units {
				report.Inputs = append(report.Inputs, u.Source)
			}
			report.Units = append(report.Units, units...)
			continue
		}

		inputs, outcomes, err := b.compileUnits(ctx, units)
		if err != nil {
			return nil, err
		}

		for _, o := range outcomes {
			switch o {
			case outcomeReused:
				report.Reused++
			case outcomeCompiled:
				report.Compiled++
			case outcomeFellBack:
				report.FellBack++
			}
		}

		report.Inputs = append(report.Inputs, inputs...)
		report.Units = append(report.Units, units...)
	}

	for _, entry := range b.cfg.ObjectFiles {
		report.Inputs = append(report.Inputs, b.path("{PROJ-DIR}/"+BuildDir+"/"+entry, config.KindObject))
	}

	for _, entry := range b.cfg.DynamicLibraryFiles {
		report.Inputs = append(report.Inputs, b.path("{PROJ-DIR}/"+LibDir+"/"+entry, config.KindDynamicLibrary))
	}

	for _, entry := range b.cfg.StaticLibraryFiles {
		report.Inputs = append(report.Inputs, b.path("{PROJ-DIR}/"+LibDir+"/"+entry, config.KindStaticLibrary))
	}

	b.warnDuplicateObjects(ctx, report.Units)

	log.Infof(ctx, "Pre build done: %d compiled, %d reused, %d fell back to source", report.Compiled, report.Reused, report.FellBack)
	return report, nil
}

type sourceGroup struct {
	dir     string
	entries []string
}

func (b *Builder) groups() []sourceGroup {
	return []sourceGroup{
		{SourceDir, b.cfg.SourceFiles},
		{ExternalDir, b.cfg.ExternalSourceFiles},
	}
}

// Units resolves the translation units of the project and external source
// groups without deciding staleness or compiling anything.
func (b *Builder) Units(ctx context.Context) []TranslationUnit {
	var units []TranslationUnit
	for _, group := range b.groups() {
		units = append(units, b.units(ctx, group.dir, group.entries)...)
	}

	return units
}

// units resolves the entries of one source group. Entries that are glob
// patterns after resolution expand to every matching file in the group
// directory, in lexical order.
func (b *Builder) units(ctx context.Context, dir string, entries []string) []TranslationUnit {
	var units []TranslationUnit

	for _, entry := range entries {
		resolved := b.engine.Resolve(entry, config.KindSource)
		if !utils.IsPattern(resolved) {
			units = append(units, b.unit(dir, resolved))
			continue
		}

		root := b.path("{PROJ-DIR}/"+dir, config.KindSource)
		matches, err := utils.ExpandGlob(b.fs, root, resolved)
		if err != nil {
			log.Warnf(ctx, "Skipping %s: %v", entry, err)
			continue
		}

		if len(matches) == 0 {
			log.Warnf(ctx, "No files in %s match %s", root, resolved)
		}

		for _, m := range matches {
			units = append(units, b.unit(dir, m))
		}
	}

	return units
}

func (b *Builder) unit(dir, entry string) TranslationUnit {
	return TranslationUnit{
		Entry:  entry,
		Source: b.path("{PROJ-DIR}/"+dir+"/"+entry, config.KindSource),
		Object: b.path("{PROJ-DIR}/"+BuildDir+"/"+dir+"/"+entry+".{EXT}", config.KindObject),
	}
}

// compileUnits decides each unit in order and returns the link input for
// each. With ParallelJobs above one, stale units compile concurrently;
// the returned order is still the declared order.
func (b *Builder) compileUnits(ctx context.Context, units []TranslationUnit) ([]string, []outcome, error) {
	inputs := make([]string, len(units))
	outcomes := make([]outcome, len(units))

	if b.cfg.ParallelJobs <= 1 {
		for i := range units {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}

			inputs[i], outcomes[i] = b.compileUnit(ctx, &units[i])
		}

		return inputs, outcomes, ctx.Err()
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(b.cfg.ParallelJobs)

	for i := range units {
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}

			inputs[i], outcomes[i] = b.compileUnit(grpCtx, &units[i])
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, nil, err
	}

	return inputs, outcomes, ctx.Err()
}

// compileUnit reuses a fresh object, or compiles a stale one. A failed
// compile falls back to the raw source path.
func (b *Builder) compileUnit(ctx context.Context, u *TranslationUnit) (string, outcome) {
	u.Stale = b.tracker.NeedsRebuild(u.Source, u.Object)
	if !u.Stale {
		log.Infof(ctx, "Using pre-built object file for %s", u.Source)
		return u.Object, outcomeReused
	}

	if err := utils.EnsureParentDir(b.fs, u.Object); err != nil {
		log.Errorf(ctx, "%s: %v; using source file as fallback", u.Source, err)
		return u.Source, outcomeFellBack
	}

	cmd, err := compiler.ObjectCommand(b.cfg, b.engine, u.Source, u.Object)
	if err != nil {
		log.Errorf(ctx, "%s: %v; using source file as fallback", u.Source, err)
		return u.Source, outcomeFellBack
	}

	log.Debugf(ctx, "Compiling %s", cmd)

	start := time.Now()
	res := b.runner.Run(ctx, cmd)
	b.recordCompile(ctx, u, cmd, res, time.Since(start))

	if !res.Success() {
		log.Errorf(ctx, "%s: error compiling to object file; using source file as fallback\n%s", u.Source, res.Diagnostic())
		return u.Source, outcomeFellBack
	}

	return u.Object, outcomeCompiled
}

func (b *Builder) recordCompile(ctx context.Context, u *TranslationUnit, cmd *compiler.ShellCommand, res compiler.Result, d time.Duration) {
	if b.journal == nil {
		return
	}

	sum, err := cache.HashFile(b.fs, u.Source)
	if err != nil {
		log.Debugf(ctx, "Unable to hash %s: %v", u.Source, err)
	}

	b.record(ctx, false, cache.Entry{
		Source:      u.Source,
		Output:      u.Object,
		Fingerprint: cache.Fingerprint(cmd.Path, cmd.Args),
		SourceHash:  sum,
		ExitCode:    res.ExitCode,
		Success:     res.Success(),
		Duration:    d,
	})
}

// warnDuplicateObjects reports distinct entries sharing an object path;
// the later compile would overwrite the earlier one.
func (b *Builder) warnDuplicateObjects(ctx context.Context, units []TranslationUnit) {
	seen := make(map[string]string, len(units))

	for _, u := range units {
		key := filepath.Clean(u.Object)
		if prev, ok := seen[key]; ok && prev != u.Source {
			log.Warnf(ctx, "%s and %s both compile to %s", prev, u.Source, u.Object)
			continue
		}

		seen[key] = u.Source
	}
}
