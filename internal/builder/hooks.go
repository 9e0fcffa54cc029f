package builder

import (
	"context"

	"zombiezen.com/go/log"

	"github.com/Norgate-AV/daemonic/internal/compiler"
	"github.com/Norgate-AV/daemonic/internal/config"
)

// canExecute reports whether the build produced something runnable.
func (b *Builder) canExecute(result *BuildResult) bool {
	return b.cfg.Target == config.TargetExecutable && !result.LastBuildFailed
}

// Test runs the project's test runner. It does nothing unless the target
// is an executable that linked successfully, and never changes result.
func (b *Builder) Test(ctx context.Context, result *BuildResult) {
	if !b.canExecute(result) {
		return
	}

	// Split first: a resolved {PROJ-DIR} may contain spaces
	cmd, err := compiler.ParseCommand(b.cfg.TestCommand)
	if err != nil {
		log.Errorf(ctx, "Test: %v", err)
		return
	}

	cmd.Path = b.engine.Resolve(cmd.Path, config.KindSource)
	for i, arg := range cmd.Args {
		cmd.Args[i] = b.engine.Resolve(arg, config.KindSource)
	}

	log.Infof(ctx, "Testing -> %s", b.OutputPath())
	b.execute(ctx, "Test", cmd)
}

// Run executes the built program under the same conditions as Test.
func (b *Builder) Run(ctx context.Context, result *BuildResult) {
	if !b.canExecute(result) {
		return
	}

	output := b.OutputPath()
	log.Infof(ctx, "Running -> %s", output)
	b.execute(ctx, "Run", &compiler.ShellCommand{Path: output})
}

func (b *Builder) execute(ctx context.Context, step string, cmd *compiler.ShellCommand) {
	res := b.runner.Run(ctx, cmd)
	b.print(res.Stdout)

	if !res.Success() {
		log.Errorf(ctx, "%s failed\n%s", step, res.Diagnostic())
	}
}
