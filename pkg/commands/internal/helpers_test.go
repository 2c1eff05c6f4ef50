package internal

import (
	"github.com/spf13/afero"
)

func writeMem(fs afero.Fs, path, content string) error {
	return afero.WriteFile(fs, path, []byte(content), 0644)
}
