package deps

import (
	"context"
	goerrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/logging"
	"github.com/arthur-debert/deptool/pkg/paths"
	"github.com/arthur-debert/deptool/pkg/shell"
)

// SelfInvoker installs a dependency by running a deptool process:
//
//	<Executable> <RootArgs...> <ref>
//
// from Dir with Env as its complete environment. Exit status 0 is success.
type SelfInvoker struct {
	Executable string
	RootArgs   []string
	Dir        string
	Env        paths.Env
	Stdout     io.Writer
	Stderr     io.Writer
}

// NewSelfInvoker returns an invoker running the current executable with its
// output going to the process stdout and stderr.
func NewSelfInvoker(rootArgs []string, dir string, env paths.Env) (*SelfInvoker, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to locate the deptool executable")
	}
	return &SelfInvoker{
		Executable: exe,
		RootArgs:   rootArgs,
		Dir:        dir,
		Env:        env,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}, nil
}

// Args returns the command line used for ref, without the executable.
func (s *SelfInvoker) Args(ref string) []string {
	args := make([]string, 0, len(s.RootArgs)+1)
	args = append(args, s.RootArgs...)
	return append(args, ref)
}

func (s *SelfInvoker) Invoke(ctx context.Context, ref string) error {
	args := s.Args(ref)
	logging.LogCommand(s.Executable, args)

	cmd := exec.CommandContext(ctx, s.Executable, args...)
	cmd.Dir = s.Dir
	if s.Env != nil {
		cmd.Env = s.Env.Environ()
	}
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if goerrors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return errors.Wrapf(err, errors.ErrCommandFailed, "deptool exited with code '%d' for '%s'", code, ref).
			WithDetails(map[string]interface{}{
				shell.DetailCommand:  s.Executable,
				shell.DetailExitCode: code,
			})
	}
	return nil
}
