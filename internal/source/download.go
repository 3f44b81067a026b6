package source

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// httpClient is shared across downloads. The timeout bounds the whole
// transfer; callers wanting a different budget wrap Stage themselves.
var httpClient = &http.Client{Timeout: 5 * time.Minute}

// downloadAndExtract fetches an archive URL into destDir and unpacks it
// in place. The archive format is chosen by filename suffix.
func downloadAndExtract(uri, destDir string) error {
	archivePath, err := download(uri, destDir)
	if err != nil {
		return err
	}
	defer os.Remove(archivePath)

	switch {
	case strings.HasSuffix(uri, ".zip"):
		return extractZip(archivePath, destDir)
	case strings.HasSuffix(uri, ".tar.gz"):
		return extractTarGz(archivePath, destDir)
	default:
		return fmt.Errorf("%w: unrecognized archive format in %q", ErrUnsupportedSource, uri)
	}
}

// download streams the response body to a file inside destDir and returns
// its path.
func download(uri, destDir string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, uri, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request for %s: %w", uri, err)
	}
	req.Header.Set("User-Agent", "demiurgos")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading %s: server returned status %d", uri, resp.StatusCode)
	}

	name := path.Base(uri)
	if name == "" || name == "." || name == "/" {
		name = "download"
	}
	destPath := filepath.Join(destDir, name)

	f, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing download %s: %w", destPath, err)
	}

	return destPath, nil
}
