// Package segments implements the persisted slice map of a cache root.
package segments

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/natefinch/atomic"
	"go.trai.ch/slicer/internal/core/domain"
	"go.trai.ch/slicer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SegmentStore = (*Store)(nil)

type fileState struct {
	digest uint64
	size   int64
}

// Store implements ports.SegmentStore with one properties file per cache root.
// Saves of content identical to what is already on disk are skipped.
type Store struct {
	mu    sync.Mutex
	known map[string]fileState // segments path -> last content seen
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{known: make(map[string]fileState)}
}

// Load reads the segments file under root. A missing file yields an empty map.
func (s *Store) Load(root string) (map[string]string, error) {
	path := domain.SegmentsPath(root)

	//nolint:gosec // Path is derived from the validated cache root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.forget(path)
			return make(map[string]string), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSegmentsReadFailed.Error()), "path", path)
	}

	entries, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSegmentsReadFailed.Error()), "path", path)
	}

	s.remember(path, data)
	return entries, nil
}

// Save atomically replaces the segments file under root with entries.
func (s *Store) Save(root string, entries map[string]string) error {
	path := domain.SegmentsPath(root)

	var buf bytes.Buffer
	if err := Encode(&buf, entries); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSegmentsEncodeFailed.Error()), "path", path)
	}

	if s.unchanged(path, buf.Bytes()) {
		return nil
	}

	if err := atomic.WriteFile(path, bytes.NewReader(buf.Bytes())); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSegmentsWriteFailed.Error()), "path", path)
	}

	s.remember(path, buf.Bytes())
	return nil
}

func (s *Store) unchanged(path string, data []byte) bool {
	s.mu.Lock()
	last, ok := s.known[path]
	s.mu.Unlock()

	if !ok || last.digest != xxhash.Sum64(data) {
		return false
	}

	// The file may have been removed or replaced behind our back.
	info, err := os.Stat(path)
	return err == nil && info.Size() == last.size
}

func (s *Store) remember(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.known[path] = fileState{digest: xxhash.Sum64(data), size: int64(len(data))}
}

func (s *Store) forget(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.known, path)
}
