package internal

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/arthur-debert/deptool/pkg/config"
	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/filesystem"
	"github.com/arthur-debert/deptool/pkg/logging"
	"github.com/arthur-debert/deptool/pkg/paths"
	"github.com/arthur-debert/deptool/pkg/recipe"
)

// PrepareOptions is what every recipe command needs before running
// anything.
type PrepareOptions struct {
	// Ref is a recipe file path or an http(s) URL.
	Ref     string
	Config  *config.Config
	FS      afero.Fs
	Fetcher recipe.Fetcher

	// BaseEnv is extended with the recipe variables. Nil means the
	// environment of the running process.
	BaseEnv paths.Env
}

// Prepared holds a loaded recipe and everything derived from it.
type Prepared struct {
	Recipe *recipe.Recipe
	// File is the local recipe file, the cache copy for remote recipes.
	File  string
	Paths *paths.Paths
	Env   paths.Env
}

// Prepare loads the recipe, derives and creates its directories, and binds
// the command environment.
func Prepare(ctx context.Context, opts PrepareOptions) (*Prepared, error) {
	logger := logging.GetLogger("commands.prepare")

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInternal, "no configuration")
	}
	if opts.Ref == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no recipe given")
	}
	cfg := opts.Config
	fs := filesystem.OrOS(opts.FS)

	roots, err := paths.Roots(cfg)
	if err != nil {
		return nil, err
	}

	loader := &recipe.Loader{FS: fs, Fetcher: opts.Fetcher, CacheDir: roots.CacheDir}
	r, file, err := loader.Load(ctx, resolveRef(opts.Ref, cfg.WorkDir))
	if err != nil {
		return nil, err
	}

	p, err := paths.New(cfg, r)
	if err != nil {
		return nil, err
	}
	if err := filesystem.EnsureDirs(fs, p.Dirs()...); err != nil {
		return nil, err
	}

	base := opts.BaseEnv
	if base == nil {
		base = paths.Current()
	}
	env := paths.Bind(base, p, r)
	if cfg.File != "" {
		env[config.EnvConfigFile] = cfg.File
	}

	logger.Debug().
		Str("recipe", r.Name).
		Str("version", r.Version).
		Str("file", file).
		Str("prefix", p.Prefix).
		Str("pkgDir", p.PkgDir).
		Msg("Recipe prepared")

	return &Prepared{Recipe: r, File: file, Paths: p, Env: env}, nil
}

// resolveRef makes a local reference absolute against workDir.
func resolveRef(ref, workDir string) string {
	if recipe.IsRemote(ref) {
		return ref
	}
	ref = paths.ExpandHome(ref)
	if filepath.IsAbs(ref) || workDir == "" {
		return ref
	}
	return filepath.Join(workDir, ref)
}
