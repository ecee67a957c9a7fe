package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/ports"
)

// LocalExecutor runs commands on the host shell.
type LocalExecutor struct {
	shell string
	dir   string
}

// NewLocalExecutor builds a new executor. The shell defaults to $SHELL, then /bin/sh.
// dir is the working directory children inherit; empty means the process cwd.
func NewLocalExecutor(shell, dir string) *LocalExecutor {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &LocalExecutor{shell: shell, dir: dir}
}

// Shell returns the interpreter used for commands.
func (e *LocalExecutor) Shell() string {
	return e.shell
}

// Execute implements ports.CommandExecutor. Output is buffered until the child exits.
// Stdin is not connected, so commands cannot prompt the user.
func (e *LocalExecutor) Execute(ctx context.Context, command string) (domain.ExecutionResult, error) {
	c := exec.CommandContext(ctx, e.shell, "-c", command)
	c.Dir = e.dir
	c.Env = os.Environ()
	c.Stdin = nil
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()

	result := domain.ExecutionResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	default:
		return domain.ExecutionResult{}, fmt.Errorf("%w: %s: %v", domain.ErrSpawnFailed, e.shell, err)
	}
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
