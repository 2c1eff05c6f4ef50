package filesystem

import (
	"os"

	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/spf13/afero"
)

// DirPerm is the mode used for every directory deptool creates.
const DirPerm os.FileMode = 0755

// NewOS returns the real filesystem.
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// OrOS returns fs, or the real filesystem when fs is nil.
func OrOS(fs afero.Fs) afero.Fs {
	if fs == nil {
		return NewOS()
	}
	return fs
}

// EnsureDirs creates each directory and its parents. Existing directories
// are left alone.
func EnsureDirs(fs afero.Fs, dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := fs.MkdirAll(dir, DirPerm); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
				WithDetail("path", dir)
		}
	}
	return nil
}

// Exists reports whether path exists. Errors other than not-exist are
// returned as FILE_ACCESS.
func Exists(fs afero.Fs, path string) (bool, error) {
	ok, err := afero.Exists(fs, path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path).
			WithDetail("path", path)
	}
	return ok, nil
}
