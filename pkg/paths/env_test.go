package paths

import (
	"strings"
	"testing"

	"github.com/arthur-debert/deptool/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boundPaths(t *testing.T, layout string) *Paths {
	t.Helper()
	p, err := New(&config.Config{Layout: layout, WorkDir: "/work", TmpDir: "/scratch"}, testRecipe())
	require.NoError(t, err)
	return p
}

func TestBind_SetsRecipeVariables(t *testing.T) {
	p := boundPaths(t, config.LayoutPrefix)
	base := Env{"PATH": "/usr/bin:/bin", "HOME": "/home/u"}

	env := Bind(base, p, testRecipe())

	assert.Equal(t, "zlib", env[EnvName])
	assert.Equal(t, "zlib", env[EnvPkgName])
	assert.Equal(t, "1.2.11", env[EnvVersion])
	assert.Equal(t, "/work/build", env[EnvPrefix])
	assert.Equal(t, "/work/build/src", env[EnvSrcDir])
	assert.Equal(t, "/work/build/bin", env[EnvBinDir])
	assert.Equal(t, "/work/build/lib", env[EnvLibDir])
	assert.Equal(t, "/work/build/include", env[EnvIncDir])
	assert.Equal(t, "/work/build/src/zlib/1.2.11", env[EnvPkgDir])
	assert.Equal(t, "/scratch", env[EnvTmpDir])
	assert.Equal(t, "/home/u", env["HOME"])
	assert.Equal(t, "/work/build/bin:/usr/bin:/bin", env[EnvPath])

	_, hasProject := env.Lookup(EnvProjectDir)
	assert.False(t, hasProject)
}

func TestBind_ProjectLayoutExportsProjectDir(t *testing.T) {
	p := boundPaths(t, config.LayoutProject)

	env := Bind(Env{}, p, testRecipe())
	assert.Equal(t, "/work", env[EnvProjectDir])
}

func TestBind_DoesNotModifyBase(t *testing.T) {
	p := boundPaths(t, config.LayoutPrefix)
	base := Env{"PATH": "/usr/bin"}

	_ = Bind(base, p, testRecipe())

	assert.Equal(t, Env{"PATH": "/usr/bin"}, base)
}

func TestBind_BinDirNeverDuplicated(t *testing.T) {
	p := boundPaths(t, config.LayoutPrefix)
	env := Env{"PATH": "/usr/bin"}

	for i := 0; i < 3; i++ {
		env = Bind(env, p, testRecipe())
	}

	assert.Equal(t, 1, strings.Count(env[EnvPath], "/work/build/bin"))
	assert.Equal(t, "/work/build/bin:/usr/bin", env[EnvPath])
}

func TestPrependPath(t *testing.T) {
	assert.Equal(t, "/b", PrependPath("", "/b"))
	assert.Equal(t, "/b:/usr/bin", PrependPath("/usr/bin", "/b"))
	assert.Equal(t, "/usr/bin:/b", PrependPath("/usr/bin:/b", "/b"))
	assert.Equal(t, "/b/x:/usr/bin", PrependPath("/usr/bin", "/b/x"))
	// prefix match is not membership
	assert.Equal(t, "/b:/b/x", PrependPath("/b/x", "/b"))
}

func TestFromEnvironAndEnviron(t *testing.T) {
	env := FromEnviron([]string{"B=2", "A=1", "EMPTY=", "JUNK", "=nokey", "EQ=a=b"})

	assert.Equal(t, Env{"A": "1", "B": "2", "EMPTY": "", "EQ": "a=b"}, env)
	assert.Equal(t, []string{"A=1", "B=2", "EMPTY=", "EQ=a=b"}, env.Environ())
}

func TestCurrent(t *testing.T) {
	t.Setenv("DEPTOOL_TEST_MARKER", "present")
	assert.Equal(t, "present", Current().Get("DEPTOOL_TEST_MARKER"))
}
