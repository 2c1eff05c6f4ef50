package download

import (
	"context"
	"io"
	"net/http"

	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/logging"
	"github.com/spf13/afero"
)

// partialSuffix marks a file still being written.
const partialSuffix = ".part"

// Fetcher retrieves a URL into a local file.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// HTTPFetcher fetches over http(s) and writes through an afero.Fs.
type HTTPFetcher struct {
	FS        afero.Fs
	Client    *http.Client
	UserAgent string
}

// NewHTTPFetcher returns a fetcher using http.DefaultClient.
func NewHTTPFetcher(fs afero.Fs, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{FS: fs, Client: http.DefaultClient, UserAgent: userAgent}
}

// Fetch downloads url into dest. The body is stored as sent: the request
// asks for the identity encoding so archives are not transparently
// decompressed. Anything other than 200 fails with DOWNLOAD_FAILED and
// leaves dest untouched.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, dest string) error {
	logger := logging.GetLogger("download.fetch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDownload, "invalid url %s", url).WithDetail("url", url)
	}
	req.Header.Set("Accept-Encoding", "identity")
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	logger.Debug().Str("url", url).Str("dest", dest).Msg("Fetching")
	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDownload, "failed to fetch %s", url).WithDetail("url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf(errors.ErrDownload, "Server returned code '%d'", resp.StatusCode).
			WithDetails(map[string]interface{}{"url": url, "status": resp.StatusCode})
	}

	tmp := dest + partialSuffix
	out, err := f.FS.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", tmp).WithDetail("path", tmp)
	}

	n, err := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = f.FS.Remove(tmp)
		return errors.Wrapf(err, errors.ErrDownload, "failed to write %s", dest).
			WithDetails(map[string]interface{}{"url": url, "path": dest})
	}

	if err := f.FS.Rename(tmp, dest); err != nil {
		_ = f.FS.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move download into %s", dest).WithDetail("path", dest)
	}

	logger.Debug().Str("url", url).Str("dest", dest).Int64("bytes", n).Msg("Fetched")
	return nil
}
