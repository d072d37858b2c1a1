// Package fs implements the filesystem side of the cache root: resolving and
// validating the root directory, and mapping root keys to directories.
package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/slicer/internal/core/domain"
	"go.trai.ch/slicer/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

var _ ports.CacheRootResolver = (*RootResolver)(nil)

// RootResolver implements ports.CacheRootResolver.
// The root is the configured cache directory, or slicer/index under the
// user cache directory.
type RootResolver struct {
	CacheDir string
}

// NewRootResolver creates a RootResolver. An empty cacheDir selects the default location.
func NewRootResolver(cacheDir string) *RootResolver {
	return &RootResolver{CacheDir: cacheDir}
}

// Resolve returns the absolute cache root, creating it when missing.
func (r *RootResolver) Resolve() (string, error) {
	dir := r.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", zerr.Wrap(err, domain.ErrCacheRootUnavailable.Error())
		}
		dir = domain.DefaultCacheRoot(base)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrPathResolutionFailed.Error()), "path", dir)
	}

	if err := ValidateRoot(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// ValidateRoot creates dir if needed and checks that it is a readable and
// writable directory.
func ValidateRoot(dir string) error {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return invalidRoot(err, dir, "cannot create directory")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return invalidRoot(err, dir, "cannot stat directory")
	}
	if !info.IsDir() {
		return invalidRoot(nil, dir, "not a directory")
	}

	if err := unix.Access(dir, unix.R_OK|unix.X_OK); err != nil {
		return invalidRoot(err, dir, "not readable")
	}
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return invalidRoot(err, dir, "not writable")
	}

	return nil
}

func invalidRoot(cause error, dir, reason string) error {
	var err error
	if cause != nil {
		err = zerr.Wrap(cause, domain.ErrCacheRootInvalid.Error())
	} else {
		err = zerr.New(domain.ErrCacheRootInvalid.Error())
	}
	err = zerr.With(err, "reason", reason)
	return zerr.With(err, "path", dir)
}
