package executor

import (
	"context"

	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/logging"
	"github.com/arthur-debert/deptool/pkg/recipe"
	"github.com/arthur-debert/deptool/pkg/shell"
	"github.com/arthur-debert/deptool/pkg/style"
	"github.com/rs/zerolog"
)

// State of a recipe run
type State int

const (
	StateChecking State = iota
	StateSatisfied
	StateInstalling
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateSatisfied:
		return "satisfied"
	case StateInstalling:
		return "installing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CheckResult is the outcome of a recipe's check commands.
type CheckResult int

const (
	NotSatisfied CheckResult = iota
	Satisfied
)

func (c CheckResult) String() string {
	if c == Satisfied {
		return "satisfied"
	}
	return "not satisfied"
}

// Detail keys on RECIPE_FAILED errors
const (
	DetailName    = "name"
	DetailVersion = "version"
)

// Options contains configuration for the executor
type Options struct {
	Runner   shell.Runner
	Progress *style.Progress
	Logger   zerolog.Logger
}

// Executor drives one recipe through check and install.
type Executor struct {
	runner   shell.Runner
	progress *style.Progress
	logger   zerolog.Logger
}

// New creates a new executor. Without a Runner, commands run through
// /bin/sh.
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}

	runner := opts.Runner
	if runner == nil {
		runner = shell.NewRunner(shell.DefaultShell, opts.Progress)
	}

	return &Executor{
		runner:   runner,
		progress: opts.Progress,
		logger:   logger,
	}
}

// Check runs the recipe's check commands. A failing command means the
// recipe is not satisfied; only unexpected failures are returned as errors.
// A recipe without check commands is always satisfied.
func (e *Executor) Check(ctx context.Context, r *recipe.Recipe, opts shell.Options) (CheckResult, error) {
	e.progress.Checking(r.Name, r.Version)
	e.logger.Debug().
		Str("recipe", r.Name).
		Str("version", r.Version).
		Int("commands", len(r.Check)).
		Msg("Running check commands")

	err := e.runner.Run(ctx, r.Check, opts)
	switch {
	case err == nil:
		e.progress.Satisfied(r.Name, r.Version)
		e.logger.Info().Str("recipe", r.Name).Str("version", r.Version).Msg("Already installed")
		return Satisfied, nil
	case errors.IsErrorCode(err, errors.ErrCommandFailed):
		e.progress.NotSatisfied(r.Name, r.Version)
		e.logger.Info().
			Str("recipe", r.Name).
			Str("version", r.Version).
			Int("exitCode", shell.ExitCode(err)).
			Msg("Not installed")
		return NotSatisfied, nil
	default:
		return NotSatisfied, err
	}
}

// Install runs the recipe's install commands. A failing command is returned
// as RECIPE_FAILED wrapping the COMMAND_FAILED error.
func (e *Executor) Install(ctx context.Context, r *recipe.Recipe, opts shell.Options) error {
	e.progress.Installing(r.Name, r.Version)
	done := logging.LogOperationStart(e.logger, "install "+r.Name)
	defer done()

	if err := e.runner.Run(ctx, r.Install, opts); err != nil {
		if !errors.IsErrorCode(err, errors.ErrCommandFailed) {
			return err
		}
		e.progress.InstallFailed(r.Name, r.Version)
		e.progress.RecipeFailed(r.Name, r.Version)
		e.logger.Error().
			Err(err).
			Str("recipe", r.Name).
			Str("version", r.Version).
			Msg("Install failed")
		return errors.Wrapf(err, errors.ErrRecipeFailed, "Recipe for '%s' '%s' failed", r.Name, r.Version).
			WithDetails(map[string]interface{}{
				DetailName:    r.Name,
				DetailVersion: r.Version,
			})
	}

	e.progress.Installed(r.Name, r.Version)
	e.logger.Info().Str("recipe", r.Name).Str("version", r.Version).Msg("Installed")
	return nil
}

// RunRecipe checks the recipe and installs it when needed, returning the
// final state.
func (e *Executor) RunRecipe(ctx context.Context, r *recipe.Recipe, opts shell.Options) (State, error) {
	e.trace(r, StateChecking)

	result, err := e.Check(ctx, r, opts)
	if err != nil {
		return e.trace(r, StateFailed), err
	}
	if result == Satisfied {
		return e.trace(r, StateSatisfied), nil
	}

	e.trace(r, StateInstalling)
	if err := e.Install(ctx, r, opts); err != nil {
		return e.trace(r, StateFailed), err
	}
	return e.trace(r, StateDone), nil
}

func (e *Executor) trace(r *recipe.Recipe, s State) State {
	e.logger.Trace().Str("recipe", r.Name).Stringer("state", s).Msg("State")
	return s
}
