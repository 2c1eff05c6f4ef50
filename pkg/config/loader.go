package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/deptool/pkg/errors"
)

const (
	// EnvPrefix prefixes every configuration environment variable.
	EnvPrefix = "DEPTOOL_"

	// DefaultConfigFile is looked up in the working directory.
	DefaultConfigFile = "deptool.toml"

	// EnvConfigFile names a config file when --config is not given. It is
	// how dependency processes find their parent's configuration.
	EnvConfigFile = EnvPrefix + "CONFIG"

	// EnvTmpDir overrides tmp_dir. Dependency processes get their parent's
	// staging directory through it.
	EnvTmpDir = EnvPrefix + "TMP_DIR"

	// EnvPkgDir overrides pkg_dir. An empty value resets a pkg_dir set in
	// the config file.
	EnvPkgDir = EnvPrefix + "PKG_DIR"
)

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFile is an explicit config file; it must exist when set.
	// Empty falls back to $DEPTOOL_CONFIG, then ./deptool.toml.
	ConfigFile string

	// WorkDir defaults to the current working directory.
	WorkDir string

	// Overrides are applied last, keyed like the TOML file ("prefix",
	// "http.user_agent"). Empty string values are ignored.
	Overrides map[string]interface{}
}

// Load merges, in increasing priority: embedded defaults, the config file,
// DEPTOOL_* environment variables and explicit overrides.
func Load(opts LoadOptions) (*Config, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		workDir = cwd
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file
	configPath, err := resolveConfigFile(opts.ConfigFile, workDir)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configPath).
				WithDetail("path", configPath)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if overrides := nonEmpty(opts.Overrides); len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.WorkDir = workDir
	cfg.File = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveConfigFile(explicit, workDir string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvConfigFile)
	}
	if explicit != "" {
		path := explicit
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", explicit).
				WithDetail("path", path)
		}
		return path, nil
	}

	path := filepath.Join(workDir, DefaultConfigFile)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", nil
}

// envKey maps DEPTOOL_PROJECT_DIR to project_dir and DEPTOOL_HTTP_USER_AGENT
// to http.user_agent.
func envKey(s string) string {
	if s == EnvConfigFile {
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "http_"); ok {
		return "http." + rest
	}
	return key
}

func nonEmpty(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[k] = v
	}
	return out
}
