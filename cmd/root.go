package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"
	"zombiezen.com/go/bass/sigterm"
	"zombiezen.com/go/log"

	"github.com/Norgate-AV/daemonic/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "daemonic [config]",
	Short: "Incremental C/C++ builder",
	Long: `Build a native project from a declarative configuration file,
recompiling only the sources that changed since the last build.

The configuration defaults to ./scripts/buildConfig.json.`,
	RunE:          runBuild,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MaximumNArgs(1),
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), sigterm.Signals()...)
	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		initLogging(false)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)
	rootCmd.PersistentFlags().Bool("debug", false, "Show debugging output")
	rootCmd.Flags().Bool("no-journal", false, "Do not record compiles in the build journal")
	rootCmd.Flags().Bool("strict", false, "Exit with a non-zero status when the build fails")
	rootCmd.Flags().IntP("jobs", "j", 0, "Compile up to `n` translation units at once")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		initLogging(debug)
		return nil
	}

	rootCmd.AddCommand(cacheCmd)
}

var initLogOnce sync.Once

func initLogging(showDebug bool) {
	initLogOnce.Do(func() {
		minLogLevel := log.Info
		if showDebug {
			minLogLevel = log.Debug
		}

		log.SetDefault(&log.LevelFilter{
			Min:    minLogLevel,
			Output: log.New(os.Stderr, "daemonic: ", log.StdFlags, nil),
		})
	})
}
