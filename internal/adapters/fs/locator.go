package fs

import (
	"net/url"
	"os"
	"path/filepath"

	"go.trai.ch/slicer/internal/core/domain"
	"go.trai.ch/slicer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RootLocator = (*Locator)(nil)

// Locator implements ports.RootLocator for file: URLs.
// Directory keys end in a slash, e.g. file:/home/user/src/.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// URLFor returns the root key of dir. The directory does not need to exist.
func (l *Locator) URLFor(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrPathResolutionFailed.Error()), "path", dir)
	}

	p := filepath.ToSlash(abs)
	if p[len(p)-1] != '/' {
		p += "/"
	}

	u := url.URL{Scheme: "file", Path: p, OmitHost: true}
	return u.String(), nil
}

// Locate returns the directory a file: root key points at, if it exists.
// Keys with other schemes never resolve.
func (l *Locator) Locate(rootKey string) (string, bool) {
	u, err := url.Parse(rootKey)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", false
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", false
	}

	dir := filepath.Clean(filepath.FromSlash(u.Path))
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}
