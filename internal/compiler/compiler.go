// Package compiler assembles compiler invocations and runs them.
package compiler

import (
	"fmt"

	"al.essio.dev/pkg/shellescape"
	"github.com/caarlos0/go-shellwords"

	"github.com/Norgate-AV/daemonic/internal/config"
	"github.com/Norgate-AV/daemonic/internal/filename"
)

// ShellCommand is one external invocation.
type ShellCommand struct {
	Path string
	Args []string
}

// String renders the command as a shell-quoted line for logs.
func (c *ShellCommand) String() string {
	return shellescape.QuoteCommand(c.Argv())
}

// Argv returns the program followed by its arguments.
func (c *ShellCommand) Argv() []string {
	return append([]string{c.Path}, c.Args...)
}

// SplitFlags splits a flag fragment the way a shell would.
func SplitFlags(raw string) ([]string, error) {
	words, err := shellwords.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid flags %q: %w", raw, err)
	}

	return words, nil
}

// ParseCommand splits a full command line into a ShellCommand.
func ParseCommand(line string) (*ShellCommand, error) {
	words, err := SplitFlags(line)
	if err != nil {
		return nil, err
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	return &ShellCommand{Path: words[0], Args: words[1:]}, nil
}

// IncludeFlags returns the -I flags for the project include, lib and
// external directories followed by every additional include path.
func IncludeFlags(cfg *config.BuildConfiguration, engine *filename.Engine) []string {
	paths := []string{
		"{PROJ-DIR}/include/",
		"{PROJ-DIR}/lib/",
		"{PROJ-DIR}/external/",
	}
	paths = append(paths, cfg.AdditionalIncludePaths...)

	flags := make([]string, 0, 2*len(paths))
	for _, p := range paths {
		flags = append(flags, "-I", engine.Resolve(p, config.KindHeader))
	}

	return flags
}

// ObjectCommand builds the invocation compiling source into object.
func ObjectCommand(cfg *config.BuildConfiguration, engine *filename.Engine, source, object string) (*ShellCommand, error) {
	return command(cfg, engine, cfg.TargetFlags[config.TargetObjectFile], []string{source}, object)
}

// LinkCommand builds the final invocation producing output from inputs.
// An unknown target contributes no flag fragment.
func LinkCommand(cfg *config.BuildConfiguration, engine *filename.Engine, inputs []string, output string) (*ShellCommand, error) {
	fragment, _ := cfg.TargetFlag()
	return command(cfg, engine, fragment, inputs, output)
}

func command(cfg *config.BuildConfiguration, engine *filename.Engine, fragment string, inputs []string, output string) (*ShellCommand, error) {
	targetFlags, err := SplitFlags(fragment)
	if err != nil {
		return nil, err
	}

	extraFlags, err := SplitFlags(cfg.AdditionalFlags)
	if err != nil {
		return nil, err
	}

	var cmdArgs []string
	cmdArgs = append(cmdArgs, targetFlags...)
	cmdArgs = append(cmdArgs, extraFlags...)
	cmdArgs = append(cmdArgs, inputs...)
	cmdArgs = append(cmdArgs, IncludeFlags(cfg, engine)...)
	cmdArgs = append(cmdArgs, "-o", output)

	return &ShellCommand{
		Path: cfg.Compiler,
		Args: cmdArgs,
	}, nil
}
