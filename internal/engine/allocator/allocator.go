// Package allocator maps root keys to slice directories under one cache root
// and keeps the mapping durable across restarts.
package allocator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/slicer/internal/core/domain"
	"go.trai.ch/slicer/internal/core/ports"
	"go.trai.ch/slicer/internal/engine/persister"
	"go.trai.ch/zerr"
)

// Allocator hands out slices. The root, the index and the counter are all
// guarded by mu. The index is loaded on first use and discarded by OverrideRoot.
type Allocator struct {
	mu      sync.Mutex
	root    string
	rootErr error
	index   *domain.SegmentIndex
	unsaved bool // allocations not yet snapshotted by flush
	closed  bool

	resolver  ports.CacheRootResolver
	store     ports.SegmentStore
	locator   ports.RootLocator
	logger    ports.Logger
	tracer    trace.Tracer
	persister *persister.Persister
}

// New creates an Allocator and starts its background persister.
// window is the quiet period after the last allocation before the slice map is written.
func New(
	resolver ports.CacheRootResolver,
	store ports.SegmentStore,
	locator ports.RootLocator,
	logger ports.Logger,
	tracer trace.Tracer,
	window time.Duration,
) *Allocator {
	a := &Allocator{
		resolver: resolver,
		store:    store,
		locator:  locator,
		logger:   logger,
		tracer:   tracer,
	}
	a.persister = persister.New(window, a.flush, logger)
	return a
}

// ResolveSlice returns the slice assigned to rootKey.
//
// When onlyIfExisting is true nothing is allocated, and the slice is reported
// only if it is mapped and its directory exists. Otherwise a missing mapping
// is allocated and the slice directory is created.
func (a *Allocator) ResolveSlice(ctx context.Context, rootKey string, onlyIfExisting bool) (domain.Slice, bool, error) {
	if rootKey == "" {
		return domain.Slice{}, false, domain.ErrInvalidRootKey
	}

	a.mu.Lock()
	idx, root, err := a.loadLocked(ctx)
	if err != nil {
		a.mu.Unlock()
		return domain.Slice{}, false, err
	}

	id, ok := idx.Lookup(rootKey)
	if !ok {
		if onlyIfExisting {
			a.mu.Unlock()
			return domain.Slice{}, false, nil
		}
		id, _ = idx.AllocateSkipping(rootKey, func(id string) bool {
			return a.sliceDirExists(root, id)
		})
		a.unsaved = true
		a.persister.MarkDirty()
	}
	a.mu.Unlock()

	slice := domain.NewSlice(root, id)

	if onlyIfExisting {
		info, err := os.Stat(slice.Dir)
		if err != nil || !info.IsDir() {
			return domain.Slice{}, false, nil
		}
		return slice, true, nil
	}

	if err := os.MkdirAll(slice.Dir, domain.DirPerm); err != nil {
		err = zerr.Wrap(err, domain.ErrSliceDirCreateFailed.Error())
		err = zerr.With(err, "slice_id", id)
		return domain.Slice{}, false, zerr.With(err, "path", slice.Dir)
	}
	return slice, true, nil
}

// RootKeyOfSlice returns the root key stored for a slice directory. The
// directory must sit directly under the current cache root.
func (a *Allocator) RootKeyOfSlice(ctx context.Context, sliceDir string) (string, bool, error) {
	dir, err := filepath.Abs(sliceDir)
	if err != nil {
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrPathResolutionFailed.Error()), "path", sliceDir)
	}

	a.mu.Lock()
	idx, root, err := a.loadLocked(ctx)
	if err != nil {
		a.mu.Unlock()
		return "", false, err
	}
	if filepath.Dir(dir) != filepath.Clean(root) {
		a.mu.Unlock()
		return "", false, nil
	}
	id := filepath.Base(dir)
	key, ok := idx.RootKey(id)
	a.mu.Unlock()

	if !ok {
		return "", false, nil
	}
	if _, err := url.Parse(key); err != nil {
		a.logger.Debug(fmt.Sprintf("slice %s maps to unparsable root key %q", id, key))
		return "", false, nil
	}
	return key, true, nil
}

// RootsUnderPrefix returns every known root key starting with prefix, sorted.
func (a *Allocator) RootsUnderPrefix(ctx context.Context, prefix string) ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, _, err := a.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	return idx.RootKeysWithPrefix(prefix), nil
}

// CachedRootsUnder returns the live directories of all cached roots located
// under dir. Keys that no longer resolve to a directory are skipped.
func (a *Allocator) CachedRootsUnder(ctx context.Context, dir string) ([]string, error) {
	prefix, err := a.locator.URLFor(dir)
	if err != nil {
		return nil, err
	}

	keys, err := a.RootsUnderPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(keys))
	for _, key := range keys {
		if d, ok := a.locator.Locate(key); ok {
			dirs = append(dirs, d)
		}
	}
	return dirs, nil
}

// Segments returns every mapping ordered by slice number.
func (a *Allocator) Segments(ctx context.Context) ([]domain.Segment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, _, err := a.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Segments(), nil
}

// Root returns the cache root, resolving it on first use.
func (a *Allocator) Root(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, root, err := a.loadLocked(ctx)
	return root, err
}

// OverrideRoot drains pending writes to the current root, then switches to
// dir without validating it. The index is reloaded from dir on next use.
// Allocations that land while draining are drained too before the switch.
func (a *Allocator) OverrideRoot(dir string) {
	for {
		a.persister.FlushAndWait()

		a.mu.Lock()
		if !a.unsaved || a.closed {
			break
		}
		a.mu.Unlock()
	}
	defer a.mu.Unlock()

	a.root = filepath.Clean(dir)
	a.rootErr = nil
	a.index = nil
}

// Close writes pending changes and stops the background persister.
func (a *Allocator) Close() error {
	a.persister.Close()

	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return nil
}

// loadLocked must be called with mu held. A failed root resolution is
// remembered and returned on every later call.
func (a *Allocator) loadLocked(ctx context.Context) (*domain.SegmentIndex, string, error) {
	if a.rootErr != nil {
		return nil, "", a.rootErr
	}

	if a.root == "" {
		root, err := a.resolver.Resolve()
		if err != nil {
			a.rootErr = err
			return nil, "", err
		}
		a.root = root
	}

	if a.index == nil {
		a.index = a.readIndex(ctx, a.root)
	}
	return a.index, a.root, nil
}

// readIndex never fails: an unreadable file is logged and the index starts
// empty, since the in-memory map is authoritative from then on.
func (a *Allocator) readIndex(ctx context.Context, root string) *domain.SegmentIndex {
	_, span := a.tracer.Start(ctx, "segments.load", trace.WithAttributes(attribute.String("root", root)))
	defer span.End()

	entries, err := a.store.Load(root)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Warn(fmt.Sprintf("ignoring unreadable slice map under %s: %v", root, err))
		entries = nil
	}

	idx := domain.NewSegmentIndex(entries)
	span.SetAttributes(attribute.Int("entries", idx.Len()))

	for _, id := range idx.Malformed() {
		a.logger.Debug(fmt.Sprintf("slice %s has no numeric suffix and will not seed the counter", id))
	}
	for _, id := range idx.Shadowed() {
		key, _ := idx.RootKey(id)
		winner, _ := idx.Lookup(key)
		a.logger.Warn(fmt.Sprintf("slice %s shares root key %q with %s, lookups resolve to %s", id, key, winner, winner))
	}
	return idx
}

// sliceDirExists reports whether a directory for id is already on disk. Such
// a directory belongs to a mapping this index does not know about, e.g. after
// the slice map could not be read, so its ID is not handed out again.
func (a *Allocator) sliceDirExists(root, id string) bool {
	info, err := os.Stat(domain.NewSlice(root, id).Dir)
	if err != nil || !info.IsDir() {
		return false
	}
	a.logger.Debug(fmt.Sprintf("skipping slice %s, its directory already exists", id))
	return true
}

// flush runs on the persister worker.
func (a *Allocator) flush(ctx context.Context) {
	a.mu.Lock()
	if a.index == nil {
		a.mu.Unlock()
		return
	}
	root := a.root
	entries := a.index.Entries()
	a.unsaved = false
	a.mu.Unlock()

	_, span := a.tracer.Start(ctx, "segments.flush", trace.WithAttributes(
		attribute.String("root", root),
		attribute.Int("entries", len(entries)),
	))
	defer span.End()

	if err := a.store.Save(root, entries); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		err = zerr.Wrap(err, domain.ErrFlushFailed.Error())
		err = zerr.With(err, "root", root)
		a.logger.Error(zerr.With(err, "entries", len(entries)))
	}
}
