package cmd

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
	"zombiezen.com/go/log"

	"github.com/Norgate-AV/daemonic/internal/builder"
	"github.com/Norgate-AV/daemonic/internal/cache"
	"github.com/Norgate-AV/daemonic/internal/config"
)

// errBuildFailed is only returned with --strict; by default a failed
// build still exits with status 0.
var errBuildFailed = errors.New("build failed")

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, diagnostics, err := config.NewLoader().LoadForBuild(cmd, args)
	if err != nil {
		return err
	}

	for _, d := range diagnostics {
		log.Warnf(ctx, "%s", d)
	}

	log.Debugf(ctx, "Compiler: %s\nProject: %s\nTarget: %s\nPlatform: %s\nClean: %t",
		cfg.Compiler, cfg.ProjectDirectory, cfg.Target, cfg.Platform, cfg.CleanBuild)

	opts := []builder.Option{builder.WithOutput(cmd.OutOrStdout())}

	if !cfg.JournalDisabled {
		j, err := openJournal(cfg)
		if err != nil {
			log.Warnf(ctx, "Build journal unavailable: %v", err)
		} else {
			defer j.Close()
			opts = append(opts, builder.WithJournal(j))
		}
	}

	report, err := builder.New(cfg, opts...).Build(ctx)
	if err != nil {
		return err
	}

	strict, _ := cmd.Flags().GetBool("strict")
	if strict && report.Result.LastBuildFailed {
		return errBuildFailed
	}

	return nil
}

func openJournal(cfg *config.BuildConfiguration) (*cache.Journal, error) {
	return cache.Open(filepath.Join(builder.BuildRoot(cfg), cache.DefaultJournalDir))
}
