package recipe

import (
	"context"
	"path/filepath"
	"regexp"

	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/logging"
	"github.com/spf13/afero"
)

// CachedRecipeFile is the file name remote recipes are stored under.
const CachedRecipeFile = "recipe.yaml"

var remoteRef = regexp.MustCompile(`(?i)^https?://`)

// Fetcher retrieves a URL into a local file.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Loader loads recipes from local paths or http(s) URLs.
type Loader struct {
	FS       afero.Fs
	Fetcher  Fetcher
	CacheDir string
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	return remoteRef.MatchString(ref)
}

// CachePath returns where a remote recipe is stored inside cacheDir:
// <cacheDir>/<url without scheme>/recipe.yaml.
func CachePath(cacheDir, url string) string {
	return filepath.Join(cacheDir, remoteRef.ReplaceAllString(url, ""), CachedRecipeFile)
}

// LoadFile reads and decodes a recipe file.
func LoadFile(fs afero.Fs, path string) (*Recipe, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRecipeLoad, "failed to read recipe %s", path).
			WithDetail("path", path)
	}
	r, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Load resolves ref and returns the recipe with the local file it was read
// from. Remote recipes are fetched into the cache first, on every call.
func (l *Loader) Load(ctx context.Context, ref string) (*Recipe, string, error) {
	logger := logging.GetLogger("recipe.loader")

	path := ref
	if IsRemote(ref) {
		if l.Fetcher == nil {
			return nil, "", errors.Newf(errors.ErrInternal, "no fetcher configured for remote recipe %s", ref)
		}
		path = CachePath(l.CacheDir, ref)
		if err := l.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create cache directory for %s", ref)
		}
		logger.Debug().Str("url", ref).Str("dest", path).Msg("Fetching remote recipe")
		if err := l.Fetcher.Fetch(ctx, ref, path); err != nil {
			return nil, "", errors.Wrapf(err, errors.ErrRecipeLoad, "failed to fetch recipe %s", ref).
				WithDetail("url", ref)
		}
	}

	r, err := LoadFile(l.FS, path)
	if err != nil {
		return nil, "", err
	}
	logger.Debug().Str("recipe", r.Name).Str("version", r.Version).Str("path", path).Msg("Recipe loaded")
	return r, path, nil
}
