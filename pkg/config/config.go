package config

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/deptool/pkg/errors"
)

// Layout names
const (
	LayoutPrefix  = "prefix"
	LayoutProject = "project"
)

// Config is the effective deptool configuration.
type Config struct {
	Layout     string     `koanf:"layout" toml:"layout"`
	Prefix     string     `koanf:"prefix" toml:"prefix"`
	ProjectDir string     `koanf:"project_dir" toml:"project_dir"`
	TmpDir     string     `koanf:"tmp_dir" toml:"tmp_dir"`
	CacheDir   string     `koanf:"cache_dir" toml:"cache_dir"`
	PkgDir     string     `koanf:"pkg_dir" toml:"pkg_dir"`
	Shell      string     `koanf:"shell" toml:"shell"`
	HTTP       HTTPConfig `koanf:"http" toml:"http"`

	// WorkDir is the directory deptool was invoked from. Relative paths in
	// the configuration and dependency references resolve against it.
	WorkDir string `koanf:"-" toml:"-"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-" toml:"-"`
}

// HTTPConfig configures recipe and artifact downloads.
type HTTPConfig struct {
	UserAgent string `koanf:"user_agent" toml:"user_agent"`
}

// IsProject reports whether the project layout is selected.
func (c *Config) IsProject() bool {
	return c.Layout == LayoutProject
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Layout {
	case LayoutPrefix, LayoutProject:
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown layout %q (want %q or %q)", c.Layout, LayoutPrefix, LayoutProject).
			WithDetail("layout", c.Layout)
	}
	if c.Shell == "" {
		return errors.New(errors.ErrConfigValid, "shell must not be empty")
	}
	return nil
}

// TOML renders the configuration as a TOML document.
func (c *Config) TOML() (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return string(out), nil
}
