package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Norgate-AV/daemonic/internal/codes"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// Result is the captured outcome of one invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Success reports whether the process ran and exited with status 0.
func (r Result) Success() bool {
	return r.Err == nil && codes.IsSuccess(r.ExitCode)
}

// Diagnostic describes a failed invocation for logs.
func (r Result) Diagnostic() string {
	var sb strings.Builder

	if stderr := strings.TrimSpace(r.Stderr); stderr != "" {
		sb.WriteString(stderr)
		sb.WriteString("\n")
	}

	if r.ExitCode >= 0 {
		fmt.Fprintf(&sb, "exit code %d: %s", r.ExitCode, codes.Describe(r.ExitCode))
	} else if r.Err != nil {
		sb.WriteString(r.Err.Error())
	}

	return sb.String()
}

// Runner runs external invocations. Implementations must be safe for
// concurrent use when parallel compilation is enabled.
type Runner interface {
	Run(ctx context.Context, cmd *ShellCommand) Result
}

// ExecRunner runs commands as child processes
type ExecRunner struct {
	execCommand func(ctx context.Context, name string, args ...string) Commander
}

// NewExecRunner creates a runner backed by os/exec
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		execCommand: func(ctx context.Context, name string, args ...string) Commander {
			return exec.CommandContext(ctx, name, args...)
		},
	}
}

// Run starts cmd, waits for it, and captures its output.
// A non-zero exit status is reported through Result, never as a panic.
func (r *ExecRunner) Run(ctx context.Context, cmd *ShellCommand) Result {
	var stdout, stderr bytes.Buffer

	c := r.execCommand(ctx, cmd.Path, cmd.Args...)
	if ec, ok := c.(*exec.Cmd); ok {
		ec.Stdout = &stdout
		ec.Stderr = &stderr
	}

	err := c.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		res.Err = fmt.Errorf("%s: %w", cmd.Path, err)
		return res
	}

	res.ExitCode = -1
	res.Err = fmt.Errorf("failed to run %s: %w", cmd.Path, err)
	return res
}
