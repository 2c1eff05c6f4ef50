package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/deptool/pkg/config"
	"github.com/arthur-debert/deptool/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecipe() *recipe.Recipe {
	return &recipe.Recipe{Name: "zlib", Version: "1.2.11"}
}

func TestNew_PrefixLayoutDefaults(t *testing.T) {
	cfg := &config.Config{Layout: config.LayoutPrefix, WorkDir: "/work"}

	p, err := New(cfg, testRecipe())
	require.NoError(t, err)

	assert.Equal(t, "/work/build", p.Prefix)
	assert.Equal(t, "/work/build/src", p.SrcDir)
	assert.Equal(t, "/work/build/bin", p.BinDir)
	assert.Equal(t, "/work/build/lib", p.LibDir)
	assert.Equal(t, "/work/build/include", p.IncDir)
	assert.Equal(t, "/work/build/var/cache/deptool", p.CacheDir)
	assert.Equal(t, "/work/build/src/zlib/1.2.11", p.PkgDir)
	assert.Equal(t, filepath.Join(os.TempDir(), "deptool"), p.TmpDir)
	assert.Empty(t, p.ProjectDir)
}

func TestNew_ExplicitPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"absolute", "/opt/deps", "/opt/deps"},
		{"relative to work dir", "out/deps", "/work/out/deps"},
		{"cleaned", "/opt//deps/", "/opt/deps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Layout: config.LayoutPrefix, WorkDir: "/work", Prefix: tt.prefix}
			p, err := New(cfg, testRecipe())
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Prefix)
			assert.Equal(t, filepath.Join(tt.want, "src", "zlib", "1.2.11"), p.PkgDir)
		})
	}
}

func TestNew_HomePrefix(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &config.Config{Layout: config.LayoutPrefix, WorkDir: "/work", Prefix: "~/deps"}
	p, err := New(cfg, testRecipe())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "deps"), p.Prefix)
}

func TestNew_ProjectLayout(t *testing.T) {
	cfg := &config.Config{Layout: config.LayoutProject, WorkDir: "/work", ProjectDir: "/srv/app"}

	p, err := New(cfg, testRecipe())
	require.NoError(t, err)

	assert.Equal(t, "/srv/app", p.ProjectDir)
	assert.Equal(t, "/srv/app/build", p.Prefix)
	assert.Equal(t, "/srv/app/.deptool/cache", p.CacheDir)
	assert.Equal(t, "/srv/app/build/src/zlib/1.2.11", p.PkgDir)
}

func TestNew_ProjectLayoutDefaultsToWorkDir(t *testing.T) {
	cfg := &config.Config{Layout: config.LayoutProject, WorkDir: "/work"}

	p, err := New(cfg, testRecipe())
	require.NoError(t, err)
	assert.Equal(t, "/work", p.ProjectDir)
	assert.Equal(t, "/work/build", p.Prefix)
}

func TestNew_Overrides(t *testing.T) {
	cfg := &config.Config{
		Layout:   config.LayoutPrefix,
		WorkDir:  "/work",
		PkgDir:   "checkout",
		TmpDir:   "/scratch",
		CacheDir: "/var/cache/recipes",
	}

	p, err := New(cfg, testRecipe())
	require.NoError(t, err)
	assert.Equal(t, "/work/checkout", p.PkgDir)
	assert.Equal(t, "/scratch", p.TmpDir)
	assert.Equal(t, "/var/cache/recipes", p.CacheDir)
}

func TestDirs(t *testing.T) {
	cfg := &config.Config{Layout: config.LayoutPrefix, WorkDir: "/work", TmpDir: "/scratch"}
	p, err := New(cfg, testRecipe())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/work/build",
		"/work/build/src",
		"/work/build/bin",
		"/work/build/lib",
		"/work/build/include",
		"/scratch",
		"/work/build/src/zlib/1.2.11",
	}, p.Dirs())
}

func TestRootArgs(t *testing.T) {
	prefixPaths, err := New(&config.Config{Layout: config.LayoutPrefix, WorkDir: "/work"}, testRecipe())
	require.NoError(t, err)
	assert.Equal(t, []string{"--prefix", "/work/build"}, prefixPaths.RootArgs())

	projectPaths, err := New(&config.Config{Layout: config.LayoutProject, WorkDir: "/work"}, testRecipe())
	require.NoError(t, err)
	assert.Equal(t, []string{"--projectdir", "/work"}, projectPaths.RootArgs())
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, "", ExpandHome(""))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, home+"/dl/x.tgz", ExpandHome("~/dl/x.tgz"))
	assert.Equal(t, home+"/dl/", ExpandHome("~/dl/"))
	assert.Equal(t, "~other/x", ExpandHome("~other/x"))
	assert.Equal(t, "/abs/~/x", ExpandHome("/abs/~/x"))
}

func TestExpandPath(t *testing.T) {
	env := Env{"MYDIR": "/tmp/mydir"}

	assert.Equal(t, "/tmp/mydir/myfile.tgz", ExpandPath("${MYDIR}/myfile.tgz", env.Lookup))
	assert.Equal(t, "/tmp/mydir/x", ExpandPath("$MYDIR/x", env.Lookup))
	assert.Equal(t, "/tmp/mydir/y", ExpandPath("$MYDIR/y", env.Lookup))
}

func TestExpandPath_UnsetVariablesKept(t *testing.T) {
	env := Env{"EMPTY": "", "MYDIR": "/tmp/mydir"}

	assert.Equal(t, "$UNSET/x", ExpandPath("$UNSET/x", env.Lookup))
	assert.Equal(t, "${UNSET}/x", ExpandPath("${UNSET}/x", env.Lookup))
	assert.Equal(t, "/x", ExpandPath("$EMPTY/x", env.Lookup))
	assert.Equal(t, "/tmp/mydir/$TYPO", ExpandPath("$MYDIR/$TYPO", env.Lookup))
	assert.Equal(t, "cost$", ExpandPath("cost$", env.Lookup))
}

func TestExpandPath_ProcessEnvironment(t *testing.T) {
	t.Setenv("DEPTOOL_TEST_DIR", "/from/env")

	assert.Equal(t, "/from/env/f", ExpandPath("$DEPTOOL_TEST_DIR/f", nil))
}
