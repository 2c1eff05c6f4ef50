package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotEncoding, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEncoding = r.Header.Get("Accept-Encoding")
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("archive-bytes"))
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/stage", 0755))
	f := NewHTTPFetcher(fs, "deptool-test")

	err := f.Fetch(context.Background(), srv.URL+"/z.tgz", "/stage/z.tgz")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/stage/z.tgz")
	require.NoError(t, err)
	assert.Equal(t, "archive-bytes", string(data))
	assert.Equal(t, "identity", gotEncoding)
	assert.Equal(t, "deptool-test", gotAgent)

	exists, _ := afero.Exists(fs, "/stage/z.tgz"+partialSuffix)
	assert.False(t, exists)
}

func TestHTTPFetcher_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	f := NewHTTPFetcher(fs, "")

	err := f.Fetch(context.Background(), srv.URL+"/missing.tgz", "/stage/missing.tgz")
	require.Error(t, err)
	assert.Equal(t, errors.ErrDownload, errors.GetErrorCode(err))
	assert.Contains(t, err.Error(), "Server returned code '404'")
	assert.Equal(t, http.StatusNotFound, errors.GetErrorDetails(err)["status"])

	exists, _ := afero.Exists(fs, "/stage/missing.tgz")
	assert.False(t, exists)
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL + "/x"
	srv.Close()

	err := NewHTTPFetcher(afero.NewMemMapFs(), "").Fetch(context.Background(), url, "/x")
	require.Error(t, err)
	assert.Equal(t, errors.ErrDownload, errors.GetErrorCode(err))
	assert.Equal(t, url, errors.GetErrorDetails(err)["url"])
}

func TestHTTPFetcher_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewHTTPFetcher(afero.NewMemMapFs(), "").Fetch(ctx, srv.URL, "/x")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
