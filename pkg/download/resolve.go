package download

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/paths"
)

// NoName is the file name used when a URL path ends with a slash.
const NoName = "noname"

var (
	schemePrefix = regexp.MustCompile(`(?i)^https?://`)
	hostPrefix   = regexp.MustCompile(`^[^/]*`)
)

// Spec is a resolved download entry.
type Spec struct {
	URL  string
	Dest string
}

// Resolve splits a download entry into its URL and destination. lookup is
// used to expand variables in the destination; nil means os.LookupEnv.
// Unset variables are left as written.
func Resolve(entry string, lookup func(string) (string, bool)) (Spec, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return Spec{}, errors.New(errors.ErrInvalidInput, "empty download entry")
	}

	url, dest := entry, ""
	if i := strings.IndexFunc(entry, unicode.IsSpace); i >= 0 {
		url = entry[:i]
		dest = paths.ExpandPath(strings.TrimSpace(entry[i:]), lookup)
	} else {
		dest = FileName(url)
	}

	if dest == "" || strings.HasSuffix(dest, "/") {
		dest += FileName(url)
	}

	return Spec{URL: url, Dest: dest}, nil
}

// FileName returns the last path segment of url, or NoName when it is empty.
func FileName(url string) string {
	path := schemePrefix.ReplaceAllString(url, "")
	path = hostPrefix.ReplaceAllString(path, "")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	if path == "" {
		return NoName
	}
	return path
}
