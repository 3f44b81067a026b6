// Package source stages generator packages from heterogeneous sources: a
// local directory is used in place, a hosted git repository is shallow-cloned,
// and a remote zip/tar.gz archive is downloaded and extracted. Staging always
// happens in an operation-scoped temporary directory, never inside the store.
package source

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/demiurgos-labs/demiurgos/internal/logging"
)

// ErrUnsupportedSource is returned when a source identifier matches none of
// the recognized shapes.
var ErrUnsupportedSource = errors.New("unsupported source identifier")

// hostPrefixes are well-known hosting prefixes treated as git repositories
// when the identifier does not carry an archive suffix.
var hostPrefixes = []string{
	"https://github.com",
	"https://gitlab.com",
	"https://bitbucket.org",
}

// archiveSuffixes are the recognized downloadable archive formats.
var archiveSuffixes = []string{".zip", ".tar.gz"}

// Kind classifies a source identifier.
type Kind int

const (
	KindUnsupported Kind = iota
	KindLocalDir
	KindGitRepo
	KindArchiveURL
)

// Classify determines how a source identifier should be staged. A hosted-repo
// URL that ends in an archive suffix is an archive link, not a repo root.
func Classify(uri string) Kind {
	if info, err := os.Stat(uri); err == nil && info.IsDir() {
		return KindLocalDir
	}
	if hasArchiveSuffix(uri) {
		if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
			return KindArchiveURL
		}
		return KindUnsupported
	}
	for _, prefix := range hostPrefixes {
		if strings.HasPrefix(uri, prefix) {
			return KindGitRepo
		}
	}
	return KindUnsupported
}

func hasArchiveSuffix(uri string) bool {
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(uri, suffix) {
			return true
		}
	}
	return false
}

// Stage produces a local directory holding the source's contents. For a
// local directory source the directory itself is returned and cleanup is a
// no-op; otherwise the contents land in a fresh temporary directory that
// cleanup removes. Callers must invoke cleanup regardless of later failures.
func Stage(uri string) (dir string, cleanup func(), err error) {
	noop := func() {}

	switch Classify(uri) {
	case KindLocalDir:
		logging.L().Debugw("source is a local directory", "path", uri)
		return uri, noop, nil

	case KindGitRepo:
		tmp, err := os.MkdirTemp("", "demiurgos-stage-*")
		if err != nil {
			return "", noop, fmt.Errorf("creating staging directory: %w", err)
		}
		remove := func() { _ = os.RemoveAll(tmp) }
		logging.L().Infow("cloning generator repository", "url", uri, "dir", tmp)
		if err := gitClone(uri, tmp); err != nil {
			remove()
			return "", noop, err
		}
		return tmp, remove, nil

	case KindArchiveURL:
		tmp, err := os.MkdirTemp("", "demiurgos-stage-*")
		if err != nil {
			return "", noop, fmt.Errorf("creating staging directory: %w", err)
		}
		remove := func() { _ = os.RemoveAll(tmp) }
		logging.L().Infow("downloading generator archive", "url", uri, "dir", tmp)
		if err := downloadAndExtract(uri, tmp); err != nil {
			remove()
			return "", noop, err
		}
		return tmp, remove, nil

	default:
		return "", noop, fmt.Errorf("%w: %q", ErrUnsupportedSource, uri)
	}
}
