package check

import (
	"context"

	"github.com/spf13/afero"

	"github.com/arthur-debert/deptool/pkg/commands/internal"
	"github.com/arthur-debert/deptool/pkg/config"
	"github.com/arthur-debert/deptool/pkg/download"
	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/executor"
	"github.com/arthur-debert/deptool/pkg/filesystem"
	"github.com/arthur-debert/deptool/pkg/logging"
	"github.com/arthur-debert/deptool/pkg/paths"
	"github.com/arthur-debert/deptool/pkg/recipe"
	"github.com/arthur-debert/deptool/pkg/shell"
	"github.com/arthur-debert/deptool/pkg/style"
)

// Options defines the options for the Run command.
type Options struct {
	Recipe   string
	Config   *config.Config
	FS       afero.Fs
	Fetcher  download.Fetcher
	Runner   shell.Runner
	Progress *style.Progress
	Env      paths.Env
}

// Result reports whether the recipe is already installed.
type Result struct {
	Status executor.CheckResult
	Recipe *recipe.Recipe
	Paths  *paths.Paths
}

// Satisfied reports whether every check command passed.
func (r *Result) Satisfied() bool {
	return r.Status == executor.Satisfied
}

// Run loads the recipe and runs only its check commands. Dependencies are
// not looked at and nothing is installed.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("commands.check")
	log.Debug().Str("command", "Check").Str("recipe", opts.Recipe).Msg("Executing command")

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInternal, "no configuration")
	}
	fs := filesystem.OrOS(opts.FS)
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = download.NewHTTPFetcher(fs, opts.Config.HTTP.UserAgent)
	}
	runner := opts.Runner
	if runner == nil {
		runner = shell.NewRunner(opts.Config.Shell, opts.Progress)
	}

	prep, err := internal.Prepare(ctx, internal.PrepareOptions{
		Ref:     opts.Recipe,
		Config:  opts.Config,
		FS:      fs,
		Fetcher: fetcher,
		BaseEnv: opts.Env,
	})
	if err != nil {
		return nil, err
	}

	ex := executor.New(executor.Options{Runner: runner, Progress: opts.Progress})
	status, err := ex.Check(ctx, prep.Recipe, shell.Options{Env: prep.Env, Dir: prep.Paths.PkgDir})
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "Check").Str("recipe", prep.Recipe.Name).Stringer("status", status).Msg("Command finished")
	return &Result{Status: status, Recipe: prep.Recipe, Paths: prep.Paths}, nil
}
