// Package app implements the application layer for slicer.
package app

import (
	"context"
	"path/filepath"

	"go.trai.ch/slicer/internal/adapters/fs"
	"go.trai.ch/slicer/internal/core/domain"
	"go.trai.ch/slicer/internal/core/ports"
	"go.trai.ch/slicer/internal/engine/allocator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	allocator *allocator.Allocator
	locator   ports.RootLocator
	logger    ports.Logger
}

// New creates a new App instance.
func New(alloc *allocator.Allocator, locator ports.RootLocator, log ports.Logger) *App {
	return &App{
		allocator: alloc,
		locator:   locator,
		logger:    log,
	}
}

// ResolveOptions configures Resolve.
type ResolveOptions struct {
	// OnlyExisting reports known slices without allocating new ones.
	OnlyExisting bool
	// Paths treats every argument as a directory to convert into a root key.
	Paths bool
}

// Resolution is the outcome for one Resolve argument.
type Resolution struct {
	RootKey string
	Slice   domain.Slice
	Found   bool
}

// UseCacheDir points the allocator at dir for the rest of the process.
// The directory is created and validated first.
func (a *App) UseCacheDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPathResolutionFailed.Error()), "path", dir)
	}
	if err := fs.ValidateRoot(abs); err != nil {
		return err
	}
	a.allocator.OverrideRoot(abs)
	a.logger.Debug("using cache root " + abs)
	return nil
}

// CacheRoot returns the cache root in use.
func (a *App) CacheRoot(ctx context.Context) (string, error) {
	return a.allocator.Root(ctx)
}

// Resolve maps every argument to its slice concurrently. Results keep the
// order of args.
func (a *App) Resolve(ctx context.Context, args []string, opts ResolveOptions) ([]Resolution, error) {
	results := make([]Resolution, len(args))

	g, ctx := errgroup.WithContext(ctx)
	for i, arg := range args {
		g.Go(func() error {
			key := arg
			if opts.Paths {
				var err error
				if key, err = a.locator.URLFor(arg); err != nil {
					return err
				}
			}

			slice, found, err := a.allocator.ResolveSlice(ctx, key, opts.OnlyExisting)
			if err != nil {
				return zerr.With(err, "root_key", key)
			}
			results[i] = Resolution{RootKey: key, Slice: slice, Found: found}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RootOf returns the root key a slice directory was allocated for.
func (a *App) RootOf(ctx context.Context, sliceDir string) (string, error) {
	key, ok, err := a.allocator.RootKeyOfSlice(ctx, sliceDir)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", zerr.With(domain.ErrSliceNotFound, "path", sliceDir)
	}
	return key, nil
}

// Roots returns the known root keys starting with prefix.
func (a *App) Roots(ctx context.Context, prefix string) ([]string, error) {
	return a.allocator.RootsUnderPrefix(ctx, prefix)
}

// RootsUnder returns the live directories of cached roots below dir.
func (a *App) RootsUnder(ctx context.Context, dir string) ([]string, error) {
	return a.allocator.CachedRootsUnder(ctx, dir)
}

// List returns every mapping ordered by slice number.
func (a *App) List(ctx context.Context) ([]domain.Segment, error) {
	return a.allocator.Segments(ctx)
}

// Close flushes pending allocations to disk.
func (a *App) Close() error {
	return a.allocator.Close()
}
