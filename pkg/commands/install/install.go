package install

import (
	"context"

	"github.com/spf13/afero"

	"github.com/arthur-debert/deptool/pkg/commands/internal"
	"github.com/arthur-debert/deptool/pkg/config"
	"github.com/arthur-debert/deptool/pkg/deps"
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

// Outcome of a successful run
type Outcome int

const (
	// OutcomeSatisfied means the check commands passed and nothing ran.
	OutcomeSatisfied Outcome = iota
	// OutcomeInstalled means dependencies, downloads and install ran.
	OutcomeInstalled
)

func (o Outcome) String() string {
	if o == OutcomeInstalled {
		return "installed"
	}
	return "satisfied"
}

// Options defines the options for the Run command.
type Options struct {
	// Recipe is a recipe file path or an http(s) URL.
	Recipe string
	Config *config.Config

	// Collaborators. Nil values get the production implementation.
	FS       afero.Fs
	Fetcher  download.Fetcher
	Runner   shell.Runner
	Invoker  deps.Invoker
	Progress *style.Progress

	// Env is the base environment for commands and dependencies. Nil
	// means the environment of the running process.
	Env paths.Env
}

// Result describes a successful run.
type Result struct {
	Outcome   Outcome
	Recipe    *recipe.Recipe
	Paths     *paths.Paths
	Downloads []download.Spec
}

// Run ensures the recipe is installed: check, then dependencies, downloads
// and install commands. Check is not repeated after installing.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("commands.install")
	log.Debug().Str("command", "Install").Str("recipe", opts.Recipe).Msg("Executing command")

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

	// load, create directories, bind environment
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
	r, p := prep.Recipe, prep.Paths
	result := &Result{Recipe: r, Paths: p}
	inPkgDir := shell.Options{Env: prep.Env, Dir: p.PkgDir}

	ex := executor.New(executor.Options{Runner: runner, Progress: opts.Progress})

	// check gate
	checked, err := ex.Check(ctx, r, inPkgDir)
	if err != nil {
		return nil, err
	}
	if checked == executor.Satisfied {
		result.Outcome = OutcomeSatisfied
		log.Info().Str("recipe", r.Name).Str("version", r.Version).Msg("Already satisfied")
		return result, nil
	}

	// dependencies
	if len(r.Dependencies) > 0 {
		invoker := opts.Invoker
		if invoker == nil {
			self, err := deps.NewSelfInvoker(p.RootArgs(), opts.Config.WorkDir, dependencyEnv(prep.Env, p))
			if err != nil {
				return nil, err
			}
			invoker = self
		}

		opts.Progress.InstallingDependencies(r.Name, r.Version)
		if err := deps.NewInstaller(invoker, opts.Progress).InstallAll(ctx, r.Dependencies); err != nil {
			if !errors.IsErrorCode(err, errors.ErrRecipeFailed) {
				return nil, err
			}
			opts.Progress.DependenciesFailed(r.Name, r.Version)
			return nil, errors.Wrapf(err, errors.ErrRecipeFailed,
				"Recipe for '%s' '%s' failed, can't satisfy some dependencies", r.Name, r.Version).
				WithDetails(map[string]interface{}{
					executor.DetailName:    r.Name,
					executor.DetailVersion: r.Version,
				})
		}
	}

	// downloads
	stager := &download.Stager{FS: fs, Fetcher: fetcher, Lookup: prep.Env.Lookup, Progress: opts.Progress}
	staged, err := stager.Stage(ctx, r.Download, p.TmpDir)
	result.Downloads = staged
	if err != nil {
		return nil, err
	}

	// install
	if err := ex.Install(ctx, r, inPkgDir); err != nil {
		return nil, err
	}

	result.Outcome = OutcomeInstalled
	log.Info().Str("command", "Install").Str("recipe", r.Name).Msg("Command finished")
	return result, nil
}

// dependencyEnv is the environment of dependency processes: the bound
// environment, the parent's staging directory, and no package directory
// override, which only applies to the recipe it was given for.
func dependencyEnv(env paths.Env, p *paths.Paths) paths.Env {
	child := env.Clone()
	child[config.EnvTmpDir] = p.TmpDir
	child[config.EnvPkgDir] = ""
	return child
}
