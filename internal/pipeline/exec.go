package pipeline

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Executor runs a single stage to completion.
type Executor interface {
	Execute(ctx context.Context, stage Stage) error
}

// ExecExecutor spawns the stage's external command directly (no shell),
// blocks until it finishes, and returns its failure as-is. Cancelling the
// context kills the child.
type ExecExecutor struct {
	// Env is the child environment. Nil inherits the process environment.
	Env []string

	// Dir is the working directory for stages. Empty means inherit.
	Dir string

	// Stdout and Stderr receive the child's output. Nil wires the
	// orchestrator's own streams through so external tool output stays
	// visible.
	Stdout io.Writer
	Stderr io.Writer
}

func (e *ExecExecutor) Execute(ctx context.Context, stage Stage) error {
	cmd := exec.CommandContext(ctx, stage.Command, stage.Args...)
	cmd.Env = e.Env
	cmd.Dir = e.Dir

	cmd.Stdout = e.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	return cmd.Run()
}
