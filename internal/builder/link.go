package builder

import (
	"context"
	"fmt"
	"time"

	"zombiezen.com/go/log"

	"github.com/Norgate-AV/daemonic/internal/cache"
	"github.com/Norgate-AV/daemonic/internal/compiler"
	"github.com/Norgate-AV/daemonic/internal/utils"
)

// Link runs the final invocation over inputs and records its outcome in
// result. It returns the resolved output path.
func (b *Builder) Link(ctx context.Context, inputs []string, result *BuildResult) string {
	output := b.OutputPath()

	if err := utils.EnsureParentDir(b.fs, output); err != nil {
		log.Errorf(ctx, "Link: %v", err)
		result.LastBuildFailed = true
		return output
	}

	cmd, err := compiler.LinkCommand(b.cfg, b.engine, inputs, output)
	if err != nil {
		log.Errorf(ctx, "Link: %v", err)
		result.LastBuildFailed = true
		return output
	}

	log.Infof(ctx, "Building with -> %s", cmd)

	start := time.Now()
	res := b.runner.Run(ctx, cmd)
	result.LastBuildFailed = !res.Success()

	b.record(ctx, true, cache.Entry{
		Output:      output,
		Fingerprint: cache.Fingerprint(cmd.Path, cmd.Args),
		ExitCode:    res.ExitCode,
		Success:     res.Success(),
		Duration:    time.Since(start),
	})

	if result.LastBuildFailed {
		log.Errorf(ctx, "Build failed\n%s", res.Diagnostic())
		return output
	}

	b.print(res.Stdout)
	log.Infof(ctx, "Built %s", output)
	return output
}

func (b *Builder) print(s string) {
	if s == "" {
		return
	}

	fmt.Fprint(b.out, s)
}
