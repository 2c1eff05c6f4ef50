package paths

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/deptool/pkg/config"
	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/recipe"
)

// Directory names under the prefix and project roots
const (
	BuildDirName   = "build"
	SrcDirName     = "src"
	BinDirName     = "bin"
	LibDirName     = "lib"
	IncDirName     = "include"
	AppDirName     = "deptool"
	ProjectDotDir  = ".deptool"
	CacheDirName   = "cache"
	PrefixCacheDir = "var/cache/deptool"
)

// Root flags understood by the deptool command line
const (
	FlagPrefix     = "--prefix"
	FlagProjectDir = "--projectdir"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// varRef matches $NAME and ${NAME}.
var varRef = regexp.MustCompile(`\$(\w+|\{[^}]*\})`)

// Paths is the directory set for one recipe execution.
type Paths struct {
	Layout     string
	ProjectDir string // project layout only
	Prefix     string
	SrcDir     string
	BinDir     string
	LibDir     string
	IncDir     string
	TmpDir     string
	CacheDir   string
	PkgDir     string
}

// New derives the directories for r from cfg. Relative configured paths are
// resolved against cfg.WorkDir.
func New(cfg *config.Config, r *recipe.Recipe) (*Paths, error) {
	base, err := Roots(cfg)
	if err != nil {
		return nil, err
	}
	p := *base

	if cfg.PkgDir != "" {
		pkgDir, err := absolute(cfg.WorkDir, cfg.PkgDir)
		if err != nil {
			return nil, err
		}
		p.PkgDir = pkgDir
	} else {
		p.PkgDir = filepath.Join(p.SrcDir, r.Name, r.Version)
	}

	return &p, nil
}

// Roots derives every directory that does not depend on a recipe. The
// returned PkgDir is empty.
func Roots(cfg *config.Config) (*Paths, error) {
	workDir := cfg.WorkDir
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		workDir = cwd
	}

	p := &Paths{Layout: cfg.Layout}

	var defaultPrefix, defaultCache string
	if cfg.IsProject() {
		projectDir := workDir
		if cfg.ProjectDir != "" {
			dir, err := absolute(workDir, cfg.ProjectDir)
			if err != nil {
				return nil, err
			}
			projectDir = dir
		}
		p.ProjectDir = projectDir
		defaultPrefix = filepath.Join(projectDir, BuildDirName)
		defaultCache = filepath.Join(projectDir, ProjectDotDir, CacheDirName)
	} else {
		defaultPrefix = filepath.Join(workDir, BuildDirName)
	}

	prefix, err := orDefault(workDir, cfg.Prefix, defaultPrefix)
	if err != nil {
		return nil, err
	}
	p.Prefix = prefix

	if defaultCache == "" {
		defaultCache = filepath.Join(p.Prefix, PrefixCacheDir)
	}
	if p.CacheDir, err = orDefault(workDir, cfg.CacheDir, defaultCache); err != nil {
		return nil, err
	}
	if p.TmpDir, err = orDefault(workDir, cfg.TmpDir, filepath.Join(os.TempDir(), AppDirName)); err != nil {
		return nil, err
	}

	p.SrcDir = filepath.Join(p.Prefix, SrcDirName)
	p.BinDir = filepath.Join(p.Prefix, BinDirName)
	p.LibDir = filepath.Join(p.Prefix, LibDirName)
	p.IncDir = filepath.Join(p.Prefix, IncDirName)

	return p, nil
}

// Dirs lists the directories that must exist before a recipe runs, in
// creation order. The cache directory is created on demand.
func (p *Paths) Dirs() []string {
	return []string{p.Prefix, p.SrcDir, p.BinDir, p.LibDir, p.IncDir, p.TmpDir, p.PkgDir}
}

// RootArgs returns the command-line arguments that reproduce this root
// configuration in a child deptool process.
func (p *Paths) RootArgs() []string {
	if p.Layout == config.LayoutProject {
		return []string{FlagProjectDir, p.ProjectDir}
	}
	return []string{FlagPrefix, p.Prefix}
}

func orDefault(workDir, value, def string) (string, error) {
	if value == "" {
		return def, nil
	}
	return absolute(workDir, value)
}

func absolute(workDir, path string) (string, error) {
	expanded := ExpandHome(path)
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	if workDir == "" {
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
		}
		return abs, nil
	}
	return filepath.Join(workDir, expanded), nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// concatenated rather than joined so a trailing separator survives
	if path[1] == '/' || path[1] == filepath.Separator {
		return homeDir + path[1:]
	}

	// ~user is left alone
	return path
}

// ExpandPath expands $VAR and ${VAR} using lookup, then a leading ~.
// References to unset variables are left as written. A nil lookup means
// os.LookupEnv.
func ExpandPath(path string, lookup func(string) (string, bool)) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	expanded := varRef.ReplaceAllStringFunc(path, func(ref string) string {
		name := strings.Trim(ref[1:], "{}")
		if value, ok := lookup(name); ok {
			return value
		}
		return ref
	})
	return ExpandHome(expanded)
}
