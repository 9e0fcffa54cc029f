package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"zombiezen.com/go/log"

	"github.com/Norgate-AV/daemonic/internal/builder"
	"github.com/Norgate-AV/daemonic/internal/codes"
	"github.com/Norgate-AV/daemonic/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset incremental build state",
}

var cacheStatsCmd = &cobra.Command{
	Use:          "stats [config]",
	Short:        "Show build journal statistics",
	Args:         cobra.MaximumNArgs(1),
	RunE:         runCacheStats,
	SilenceUsage: true,
}

var cacheClearCmd = &cobra.Command{
	Use:          "clear [config]",
	Short:        "Remove compiled objects and the build journal",
	Args:         cobra.MaximumNArgs(1),
	RunE:         runCacheClear,
	SilenceUsage: true,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func loadQuiet(cmd *cobra.Command, args []string) (*config.BuildConfiguration, error) {
	cfg, diagnostics, err := config.NewLoader().LoadForBuild(cmd, args)
	if err != nil {
		return nil, err
	}

	for _, d := range diagnostics {
		log.Debugf(cmd.Context(), "%s", d)
	}

	return cfg, nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadQuiet(cmd, args)
	if err != nil {
		return err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	st, err := j.Stats(afero.NewOsFs(), builder.BuildRoot(cfg))
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Journal: %s\nUnits: %d (%d failed)\nLinks: %d\nBuild tree: %d files, %d bytes\n",
		j.Dir(), st.Units, st.Failed, st.Links, st.TreeFiles, st.TreeSize)

	last, err := j.LastLink()
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	for _, u := range builder.New(cfg).Units(cmd.Context()) {
		e, err := j.Get(u.Object)
		if err != nil {
			return fmt.Errorf("failed to read journal: %w", err)
		}

		if e != nil && !e.Success {
			fmt.Fprintf(out, "Failed: %s (%s) at %s\n", u.Source, codes.Describe(e.ExitCode), e.Timestamp.Format("2006-01-02 15:04:05"))
		}
	}

	if last != nil {
		status := "succeeded"
		if !last.Success {
			status = "failed"
		}

		fmt.Fprintf(out, "Last link: %s %s at %s\n", last.Output, status, last.Timestamp.Format("2006-01-02 15:04:05"))
	}

	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadQuiet(cmd, args)
	if err != nil {
		return err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.Clear(); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}

	fs := afero.NewOsFs()
	for _, dir := range builder.ObjectDirs(cfg) {
		if err := fs.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dir, err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
	return nil
}
