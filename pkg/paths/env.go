package paths

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/deptool/pkg/recipe"
)

// Variables exported to every recipe command
const (
	EnvName       = "NAME"
	EnvPkgName    = "PKGNAME"
	EnvVersion    = "VERSION"
	EnvPrefix     = "PREFIX"
	EnvSrcDir     = "SRCDIR"
	EnvBinDir     = "BINDIR"
	EnvLibDir     = "LIBDIR"
	EnvIncDir     = "INCDIR"
	EnvPkgDir     = "PKGDIR"
	EnvTmpDir     = "TMPDIR"
	EnvProjectDir = "PROJECTDIR"
	EnvPath       = "PATH"
)

// Env is an explicit process environment.
type Env map[string]string

// FromEnviron builds an Env from KEY=VALUE pairs such as os.Environ().
func FromEnviron(environ []string) Env {
	env := make(Env, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// Current returns the environment of the running process.
func Current() Env {
	return FromEnviron(os.Environ())
}

// Get returns the value of key, or "" when unset.
func (e Env) Get(key string) string {
	return e[key]
}

// Lookup returns the value of key and whether it is set.
func (e Env) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Environ renders the environment as sorted KEY=VALUE pairs.
func (e Env) Environ() []string {
	out := make([]string, 0, len(e))
	for k, v := range e {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (e Env) Clone() Env {
	out := make(Env, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Bind returns base extended with the recipe variables for p and r, with
// BinDir prepended to PATH unless already present. base is not modified.
func Bind(base Env, p *Paths, r *recipe.Recipe) Env {
	env := base.Clone()

	env[EnvName] = r.Name
	env[EnvPkgName] = r.Name
	env[EnvVersion] = r.Version
	env[EnvPrefix] = p.Prefix
	env[EnvSrcDir] = p.SrcDir
	env[EnvBinDir] = p.BinDir
	env[EnvLibDir] = p.LibDir
	env[EnvIncDir] = p.IncDir
	env[EnvPkgDir] = p.PkgDir
	env[EnvTmpDir] = p.TmpDir
	if p.ProjectDir != "" {
		env[EnvProjectDir] = p.ProjectDir
	}

	env[EnvPath] = PrependPath(env[EnvPath], p.BinDir)
	return env
}

// PrependPath puts dir in front of a PATH-style list unless it is already
// one of its entries.
func PrependPath(pathList, dir string) string {
	if pathList == "" {
		return dir
	}
	for _, entry := range filepath.SplitList(pathList) {
		if entry == dir {
			return pathList
		}
	}
	return dir + string(os.PathListSeparator) + pathList
}
