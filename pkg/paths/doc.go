// Package paths derives deptool's directory layout for a recipe and the
// environment handed to every check, install and dependency process.
//
// # Layout
//
// Under the install root (the prefix):
//
//   - src/<name>/<version>: the package directory, where check and install
//     commands run (overridable with pkg_dir)
//   - bin, lib, include: install targets exported as BINDIR, LIBDIR, INCDIR
//   - var/cache/deptool: remote recipe cache (prefix layout)
//
// Downloads are staged in <system temp>/deptool unless tmp_dir is set.
//
// The project layout roots everything at a project directory instead:
// the prefix becomes <projectdir>/build, the cache <projectdir>/.deptool/cache
// and PROJECTDIR is exported as well.
//
// # Environment
//
// Bind never touches the process environment. It returns a new Env built
// from a base (normally os.Environ()) so each recipe execution carries its
// own variables explicitly.
package paths
