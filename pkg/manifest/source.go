package manifest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/spf13/afero"
)

// Fetcher retrieves a remote manifest.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches over HTTP(S). Any status other than 200 is a failure.
type HTTPFetcher struct {
	Client *http.Client
}

func (h HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Source resolves the manifest for a run: a local file when one exists,
// otherwise the remote URL. Whatever was used is copied to CachePath.
type Source struct {
	Local     string
	URL       string
	CachePath string
	FS        afero.Fs
	Fetcher   Fetcher
}

// Load obtains and parses the manifest. Failing to obtain it from either
// location is MANIFEST_UNAVAILABLE.
func (s *Source) Load(ctx context.Context) (*Manifest, error) {
	logger := logging.GetLogger("manifest.source")
	fs := s.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}

	data, name, err := s.read(ctx, fs)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("source", name).Int("bytes", len(data)).Msg("Manifest obtained")

	if s.CachePath != "" {
		if err := writeCache(fs, s.CachePath, data); err != nil {
			// The cache only aids post-run diagnosis.
			logger.Warn().Err(err).Str("path", s.CachePath).Msg("Failed to cache manifest")
		}
	}

	return Parse(name, bytes.NewReader(data))
}

func (s *Source) read(ctx context.Context, fs afero.Fs) ([]byte, string, error) {
	if s.Local != "" {
		if info, err := fs.Stat(s.Local); err == nil && !info.IsDir() {
			data, err := afero.ReadFile(fs, s.Local)
			if err == nil {
				return data, s.Local, nil
			}
			if s.URL == "" {
				return nil, "", errors.Wrapf(err, errors.ErrManifestUnavailable, "cannot read %s", s.Local)
			}
		}
	}

	if s.URL == "" {
		return nil, "", errors.Newf(errors.ErrManifestUnavailable, "no manifest at %q and no URL configured", s.Local)
	}

	fetcher := s.Fetcher
	if fetcher == nil {
		fetcher = HTTPFetcher{}
	}
	data, err := fetcher.Fetch(ctx, s.URL)
	if err != nil {
		return nil, "", errors.Wrapf(err, errors.ErrManifestUnavailable, "no local manifest and fetching %s failed", s.URL).
			WithDetail("local", s.Local).
			WithDetail("url", s.URL)
	}
	return data, s.URL, nil
}

func writeCache(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, os.FileMode(0644))
}
