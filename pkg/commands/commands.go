// Package commands provides the recipe commands behind the deptool CLI.
//
// Each command is implemented in its own subdirectory:
//   - install/  - Install: check, dependencies, downloads, install
//   - check/    - Check: the check gate on its own
//   - internal/ - recipe loading, directory creation and environment binding
//     shared by both
package commands

import (
	"context"

	"github.com/arthur-debert/deptool/pkg/commands/check"
	"github.com/arthur-debert/deptool/pkg/commands/install"
)

type InstallOptions = install.Options

// Install ensures a recipe is installed.
func Install(ctx context.Context, opts InstallOptions) (*install.Result, error) {
	return install.Run(ctx, opts)
}

type CheckOptions = check.Options

// Check reports whether a recipe is already installed.
func Check(ctx context.Context, opts CheckOptions) (*check.Result, error) {
	return check.Run(ctx, opts)
}
