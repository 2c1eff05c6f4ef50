package download

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/filesystem"
	"github.com/arthur-debert/deptool/pkg/logging"
	"github.com/arthur-debert/deptool/pkg/style"
	"github.com/spf13/afero"
)

// Stager places a recipe's downloads into a staging directory.
type Stager struct {
	FS       afero.Fs
	Fetcher  Fetcher
	Lookup   func(string) (string, bool)
	Progress *style.Progress
}

// Stage resolves every entry and fetches the ones whose destination does not
// exist yet. Relative destinations are taken relative to dir. It stops at the
// first failure and returns the specs resolved so far, each with an absolute
// destination.
func (s *Stager) Stage(ctx context.Context, entries []string, dir string) ([]Spec, error) {
	logger := logging.GetLogger("download.stage")
	fs := filesystem.OrOS(s.FS)

	staged := make([]Spec, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return staged, err
		}

		spec, err := Resolve(entry, s.Lookup)
		if err != nil {
			return staged, err
		}
		if !filepath.IsAbs(spec.Dest) {
			spec.Dest = filepath.Join(dir, spec.Dest)
		}

		if err := filesystem.EnsureDirs(fs, filepath.Dir(spec.Dest)); err != nil {
			return staged, err
		}

		exists, err := filesystem.Exists(fs, spec.Dest)
		if err != nil {
			return staged, err
		}
		if exists {
			logger.Info().Str("url", spec.URL).Str("dest", spec.Dest).Msg("Already downloaded, skipping")
			s.Progress.AlreadyDownloaded(spec.URL, spec.Dest)
			staged = append(staged, spec)
			continue
		}

		if s.Fetcher == nil {
			return staged, errors.Newf(errors.ErrInternal, "no fetcher configured for %s", spec.URL)
		}
		s.Progress.Downloading(spec.URL, spec.Dest)
		if err := s.Fetcher.Fetch(ctx, spec.URL, spec.Dest); err != nil {
			return staged, err
		}
		logger.Info().Str("url", spec.URL).Str("dest", spec.Dest).Msg("Downloaded")
		staged = append(staged, spec)
	}
	return staged, nil
}
