package deps

import (
	"context"

	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/logging"
	"github.com/arthur-debert/deptool/pkg/style"
	"github.com/rs/zerolog"
)

// DetailDependency names the failing reference on RECIPE_FAILED errors.
const DetailDependency = "dependency"

// Invoker installs one dependency reference.
type Invoker interface {
	Invoke(ctx context.Context, ref string) error
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, ref string) error

func (f InvokerFunc) Invoke(ctx context.Context, ref string) error {
	return f(ctx, ref)
}

// Installer installs dependency lists.
type Installer struct {
	invoker  Invoker
	progress *style.Progress
	logger   zerolog.Logger
}

// NewInstaller creates an installer. progress may be nil.
func NewInstaller(invoker Invoker, progress *style.Progress) *Installer {
	return &Installer{
		invoker:  invoker,
		progress: progress,
		logger:   logging.GetLogger("deps"),
	}
}

// InstallAll invokes each reference in order and stops at the first
// failure, returning RECIPE_FAILED naming it.
func (i *Installer) InstallAll(ctx context.Context, refs []string) error {
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}

		i.progress.Dependency(ref)
		i.logger.Info().Str("dependency", ref).Msg("Installing dependency")

		if err := i.invoker.Invoke(ctx, ref); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			i.logger.Error().Err(err).Str("dependency", ref).Msg("Dependency failed")
			return errors.Wrapf(err, errors.ErrRecipeFailed, "Failed to run dependency recipe '%s'", ref).
				WithDetail(DetailDependency, ref)
		}

		i.progress.DependencyDone(ref)
	}
	return nil
}
