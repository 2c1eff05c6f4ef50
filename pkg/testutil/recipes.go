package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteRecipe writes content, dedented, to dir/name and returns the path.
func WriteRecipe(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(Dedent(content)), 0644))
	return path
}

// Dedent strips the common leading tab indentation from every line.
func Dedent(s string) string {
	lines := strings.Split(strings.TrimLeft(s, "\n"), "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, "\t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, "\t")
		}
	}
	return strings.Join(lines, "\n")
}

// FileServer serves files by URL path and counts requests per path.
type FileServer struct {
	*httptest.Server
	Files map[string]string
	Hits  map[string]int
}

// NewFileServer starts a server answering 404 for unknown paths. It is
// closed when the test ends.
func NewFileServer(t *testing.T, files map[string]string) *FileServer {
	t.Helper()
	fs := &FileServer{Files: files, Hits: map[string]int{}}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.Hits[r.URL.Path]++
		body, ok := fs.Files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(fs.Close)
	return fs
}
