package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	workDir := t.TempDir()

	cfg, err := Load(LoadOptions{WorkDir: workDir})
	require.NoError(t, err)

	assert.Equal(t, LayoutPrefix, cfg.Layout)
	assert.Equal(t, "", cfg.Prefix)
	assert.Equal(t, "/bin/sh", cfg.Shell)
	assert.Equal(t, "deptool", cfg.HTTP.UserAgent)
	assert.Equal(t, workDir, cfg.WorkDir)
	assert.False(t, cfg.IsProject())
	assert.Empty(t, cfg.File)
}

func TestLoad_ConfigFileInWorkDir(t *testing.T) {
	workDir := t.TempDir()
	content := `
layout = "project"
project_dir = "/srv/app"

[http]
user_agent = "ci-bot"
`
	require.NoError(t, os.WriteFile(filepath.Join(workDir, DefaultConfigFile), []byte(content), 0644))

	cfg, err := Load(LoadOptions{WorkDir: workDir})
	require.NoError(t, err)

	assert.Equal(t, LayoutProject, cfg.Layout)
	assert.Equal(t, "/srv/app", cfg.ProjectDir)
	assert.Equal(t, "ci-bot", cfg.HTTP.UserAgent)
	assert.True(t, cfg.IsProject())
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "custom.toml"), []byte(`prefix = "/opt/tools"`), 0644))

	cfg, err := Load(LoadOptions{WorkDir: workDir, ConfigFile: "custom.toml"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/tools", cfg.Prefix)
	assert.Equal(t, filepath.Join(workDir, "custom.toml"), cfg.File)
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	confDir := t.TempDir()
	path := filepath.Join(confDir, "parent.toml")
	require.NoError(t, os.WriteFile(path, []byte(`prefix = "/from/parent"`), 0644))
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load(LoadOptions{WorkDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "/from/parent", cfg.Prefix)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	_, err := Load(LoadOptions{WorkDir: t.TempDir(), ConfigFile: "absent.toml"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, DefaultConfigFile), []byte("prefix = ["), 0644))

	_, err := Load(LoadOptions{WorkDir: workDir})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, DefaultConfigFile), []byte(`prefix = "/from/file"`), 0644))
	t.Setenv("DEPTOOL_PREFIX", "/from/env")
	t.Setenv("DEPTOOL_TMP_DIR", "/scratch")
	t.Setenv("DEPTOOL_HTTP_USER_AGENT", "env-agent")

	cfg, err := Load(LoadOptions{WorkDir: workDir})
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Prefix)
	assert.Equal(t, "/scratch", cfg.TmpDir)
	assert.Equal(t, "env-agent", cfg.HTTP.UserAgent)
}

func TestLoad_EmptyEnvResetsFileValue(t *testing.T) {
	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, DefaultConfigFile), []byte(`pkg_dir = "/shared/pkg"`), 0644))
	t.Setenv(EnvPkgDir, "")

	cfg, err := Load(LoadOptions{WorkDir: workDir})
	require.NoError(t, err)
	assert.Equal(t, "", cfg.PkgDir)
}

func TestLoad_OverridesWin(t *testing.T) {
	t.Setenv("DEPTOOL_PREFIX", "/from/env")

	cfg, err := Load(LoadOptions{
		WorkDir: t.TempDir(),
		Overrides: map[string]interface{}{
			"prefix":      "/from/flag",
			"project_dir": "",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.Prefix)
	assert.Equal(t, "", cfg.ProjectDir)
}

func TestLoad_InvalidLayout(t *testing.T) {
	t.Setenv("DEPTOOL_LAYOUT", "flat")

	_, err := Load(LoadOptions{WorkDir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "prefix", envKey("DEPTOOL_PREFIX"))
	assert.Equal(t, "project_dir", envKey("DEPTOOL_PROJECT_DIR"))
	assert.Equal(t, "http.user_agent", envKey("DEPTOOL_HTTP_USER_AGENT"))
	assert.Equal(t, "", envKey(EnvConfigFile))
}

func TestConfigTOML(t *testing.T) {
	cfg := &Config{
		Layout: LayoutPrefix,
		Prefix: "/opt/build",
		Shell:  "/bin/bash",
		HTTP:   HTTPConfig{UserAgent: "deptool"},
	}

	out, err := cfg.TOML()
	require.NoError(t, err)
	assert.Regexp(t, `layout = ['"]prefix['"]`, out)
	assert.Regexp(t, `prefix = ['"]/opt/build['"]`, out)
	assert.Contains(t, out, "[http]")
	assert.NotContains(t, out, "WorkDir")
}

func TestGetDefaultsContent(t *testing.T) {
	assert.Contains(t, GetDefaultsContent(), `layout = "prefix"`)
}
