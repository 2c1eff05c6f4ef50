package shell

import (
	"context"
	goerrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/logging"
	"github.com/arthur-debert/deptool/pkg/paths"
	"github.com/arthur-debert/deptool/pkg/recipe"
	"github.com/arthur-debert/deptool/pkg/style"
)

// DefaultShell interprets command lines when none is configured.
const DefaultShell = "/bin/sh"

// Detail keys on COMMAND_FAILED errors
const (
	DetailCommand  = "command"
	DetailExitCode = "exitCode"
)

// Options control how a sequence runs.
type Options struct {
	// Env is the complete environment of every command. A nil Env
	// inherits the environment of the running process.
	Env paths.Env

	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// Runner executes command sequences.
type Runner interface {
	Run(ctx context.Context, commands []string, opts Options) error
}

// ShellRunner runs each command through "<Shell> -c".
type ShellRunner struct {
	Shell    string
	Stdout   io.Writer
	Stderr   io.Writer
	Progress *style.Progress
}

// NewRunner returns a runner using shell, or DefaultShell when empty, with
// command output going to the process stdout and stderr.
func NewRunner(shell string, progress *style.Progress) *ShellRunner {
	return &ShellRunner{
		Shell:    shell,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Progress: progress,
	}
}

// Run executes commands in order and stops at the first failure.
func (r *ShellRunner) Run(ctx context.Context, commands []string, opts Options) error {
	logger := logging.GetLogger("shell")

	sh := r.Shell
	if sh == "" {
		sh = DefaultShell
	}

	var environ []string
	if opts.Env != nil {
		environ = opts.Env.Environ()
	}

	for _, line := range commands {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.Progress.Command(line)
		logging.LogCommand(sh, []string{"-c", line})

		cmd := exec.CommandContext(ctx, sh, "-c", line)
		cmd.Dir = opts.Dir
		cmd.Env = environ
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr

		if err := cmd.Run(); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			code := exitCodeOf(err)
			logger.Debug().Str("command", line).Int("exitCode", code).Str("dir", opts.Dir).Msg("Command failed")
			return errors.Wrapf(err, errors.ErrCommandFailed, "Command '%s' returned with code '%d'", line, code).
				WithDetails(map[string]interface{}{
					DetailCommand:  line,
					DetailExitCode: code,
				})
		}
	}
	return nil
}

func exitCodeOf(err error) int {
	var exitErr *exec.ExitError
	if goerrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// ExitCode returns the exit code recorded on a COMMAND_FAILED error: 0 for
// nil, -1 when err carries no exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if cmdErr, ok := errors.FindError(err, errors.ErrCommandFailed); ok {
		if code, ok := cmdErr.Details[DetailExitCode].(int); ok {
			return code
		}
	}
	return -1
}

// Commands normalizes a scalar or a sequence of command lines.
func Commands(v interface{}) []string {
	return recipe.StringList(v)
}
