// Package builder decides what to recompile and drives the compiler.
//
// A build runs in fixed stages: the compilation pipeline turns the
// configured entries into an ordered list of link inputs, compiling stale
// translation units to objects on the way; the link stage runs the single
// final invocation and records whether it failed; the execution hooks then
// optionally test and run the produced executable.
//
// Builders targeting the same project directory must not run concurrently:
// nothing guards the build/ and bin/ trees against a second process.
package builder

import (
	"context"
	"io"
	"os"

	"github.com/spf13/afero"
	"zombiezen.com/go/log"

	"github.com/Norgate-AV/daemonic/internal/cache"
	"github.com/Norgate-AV/daemonic/internal/compiler"
	"github.com/Norgate-AV/daemonic/internal/config"
	"github.com/Norgate-AV/daemonic/internal/filename"
)

// BuildResult carries the link outcome to the execution hooks.
type BuildResult struct {
	LastBuildFailed bool
}

// Report summarises one Build.
type Report struct {
	Result *BuildResult

	// Translation units of the project and external source groups
	Units []TranslationUnit
	// Link inputs in link order
	Inputs []string
	// Resolved path of the final artifact
	Output string

	Compiled int
	Reused   int
	FellBack int
}

// Builder runs builds for one configuration.
type Builder struct {
	cfg     *config.BuildConfiguration
	engine  *filename.Engine
	fs      afero.Fs
	runner  compiler.Runner
	tracker *cache.Tracker
	journal *cache.Journal
	out     io.Writer
}

// Option configures a Builder
type Option func(*Builder)

// WithRunner replaces the process runner.
func WithRunner(r compiler.Runner) Option {
	return func(b *Builder) { b.runner = r }
}

// WithFs replaces the filesystem used for stat and directory creation.
func WithFs(fs afero.Fs) Option {
	return func(b *Builder) { b.fs = fs }
}

// WithJournal records compiles and links in j.
func WithJournal(j *cache.Journal) Option {
	return func(b *Builder) { b.journal = j }
}

// WithOutput sets where captured compiler and program output is printed.
func WithOutput(w io.Writer) Option {
	return func(b *Builder) { b.out = w }
}

// New creates a builder for cfg.
func New(cfg *config.BuildConfiguration, opts ...Option) *Builder {
	b := &Builder{
		cfg:    cfg,
		engine: filename.New(cfg),
		fs:     afero.NewOsFs(),
		runner: compiler.NewExecRunner(),
		out:    os.Stdout,
	}

	for _, opt := range opts {
		opt(b)
	}

	b.tracker = cache.NewTracker(b.fs)
	return b
}

// Build runs the pipeline, the link stage and the enabled hooks.
// A failed build is reported through Report.Result; the error is only
// non-nil when ctx is done.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	report, err := b.Pipeline(ctx)
	if err != nil {
		return nil, err
	}

	report.Result = &BuildResult{}
	report.Output = b.Link(ctx, report.Inputs, report.Result)
	if err := ctx.Err(); err != nil {
		return report, err
	}

	if b.cfg.TestWhenBuilt {
		b.Test(ctx, report.Result)
	}

	if b.cfg.RunWhenBuilt {
		b.Run(ctx, report.Result)
	}

	return report, ctx.Err()
}

func (b *Builder) record(ctx context.Context, link bool, e cache.Entry) {
	if b.journal == nil {
		return
	}

	var err error
	if link {
		err = b.journal.RecordLink(e)
	} else {
		err = b.journal.RecordCompile(e)
	}

	if err != nil {
		log.Warnf(ctx, "Journal: %v", err)
	}
}
