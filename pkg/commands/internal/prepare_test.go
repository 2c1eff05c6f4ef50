package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/deptool/pkg/config"
	"github.com/arthur-debert/deptool/pkg/download"
	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/filesystem"
	"github.com/arthur-debert/deptool/pkg/paths"
	"github.com/arthur-debert/deptool/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zlibRecipe = `
name: zlib
version: 1.2.11
check:
- test -f $LIBDIR/libz.a
`

func TestPrepare_LocalRecipe(t *testing.T) {
	work := t.TempDir()
	testutil.WriteRecipe(t, work, "recipes/zlib.yaml", zlibRecipe)
	cfg := &config.Config{Layout: config.LayoutPrefix, WorkDir: work, TmpDir: filepath.Join(work, "tmp"), Shell: "/bin/sh"}

	prep, err := Prepare(context.Background(), PrepareOptions{
		Ref:     "recipes/zlib.yaml",
		Config:  cfg,
		BaseEnv: paths.Env{"PATH": "/usr/bin"},
	})
	require.NoError(t, err)

	assert.Equal(t, "zlib", prep.Recipe.Name)
	assert.Equal(t, filepath.Join(work, "recipes/zlib.yaml"), prep.File)
	assert.Equal(t, filepath.Join(work, "build"), prep.Paths.Prefix)
	for _, dir := range prep.Paths.Dirs() {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
	assert.Equal(t, prep.Paths.BinDir+":/usr/bin", prep.Env["PATH"])
	assert.Equal(t, prep.Paths.PkgDir, prep.Env[paths.EnvPkgDir])
	_, hasConfig := prep.Env.Lookup(config.EnvConfigFile)
	assert.False(t, hasConfig)
}

func TestPrepare_ForwardsConfigFile(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, writeMem(fs, "/work/r.yaml", "name: a\n"))
	cfg := &config.Config{Layout: config.LayoutPrefix, WorkDir: "/work", TmpDir: "/tmp/deptool", File: "/etc/deptool.toml"}

	prep, err := Prepare(context.Background(), PrepareOptions{Ref: "r.yaml", Config: cfg, FS: fs, BaseEnv: paths.Env{}})
	require.NoError(t, err)
	assert.Equal(t, "/etc/deptool.toml", prep.Env[config.EnvConfigFile])
	assert.Equal(t, "/work/build/src/a/0", prep.Paths.PkgDir)
}

func TestPrepare_RemoteRecipe(t *testing.T) {
	srv := testutil.NewFileServer(t, map[string]string{"/recipes/zlib.yaml": testutil.Dedent(zlibRecipe)})
	fs := filesystem.NewMemory()
	cfg := &config.Config{Layout: config.LayoutPrefix, WorkDir: "/work", TmpDir: "/tmp/deptool"}

	prep, err := Prepare(context.Background(), PrepareOptions{
		Ref:     srv.URL + "/recipes/zlib.yaml",
		Config:  cfg,
		FS:      fs,
		Fetcher: download.NewHTTPFetcher(fs, "test"),
		BaseEnv: paths.Env{},
	})
	require.NoError(t, err)

	assert.Equal(t, "zlib", prep.Recipe.Name)
	assert.Contains(t, prep.File, "/work/build/var/cache/deptool/127.0.0.1")
	assert.Contains(t, prep.File, "/recipes/zlib.yaml/recipe.yaml")
	assert.Equal(t, 1, srv.Hits["/recipes/zlib.yaml"])
}

func TestPrepare_Errors(t *testing.T) {
	cfg := &config.Config{Layout: config.LayoutPrefix, WorkDir: "/work"}

	_, err := Prepare(context.Background(), PrepareOptions{Ref: "r.yaml"})
	assert.Equal(t, errors.ErrInternal, errors.GetErrorCode(err))

	_, err = Prepare(context.Background(), PrepareOptions{Config: cfg})
	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))

	_, err = Prepare(context.Background(), PrepareOptions{Ref: "missing.yaml", Config: cfg, FS: filesystem.NewMemory()})
	assert.Equal(t, errors.ErrRecipeLoad, errors.GetErrorCode(err))

	fs := filesystem.NewMemory()
	require.NoError(t, writeMem(fs, "/work/bad.yaml", "version: 1\n"))
	_, err = Prepare(context.Background(), PrepareOptions{Ref: "bad.yaml", Config: cfg, FS: fs})
	assert.Equal(t, errors.ErrInvalidName, errors.GetErrorCode(err))
}

func TestResolveRef(t *testing.T) {
	assert.Equal(t, "http://h/r.yaml", resolveRef("http://h/r.yaml", "/work"))
	assert.Equal(t, "/abs/r.yaml", resolveRef("/abs/r.yaml", "/work"))
	assert.Equal(t, "/work/deps/r.yaml", resolveRef("deps/r.yaml", "/work"))
	assert.Equal(t, "r.yaml", resolveRef("r.yaml", ""))
}
