package domain

import (
	"maps"
	"slices"
	"strings"
)

// SegmentIndex is the in-memory bijection between slice IDs and root keys.
// Both directions are always mutated together. It is not safe for
// concurrent use; the owner serializes access.
type SegmentIndex struct {
	slices    map[string]string // slice id -> root key
	roots     map[string]string // root key -> slice id
	counter   int
	malformed []string
	shadowed  []string
}

// NewSegmentIndex builds an index from persisted slice id to root key pairs.
// The counter is seeded from the highest well-formed slice number. Entries
// with a malformed number are kept but reported by Malformed.
//
// If two slice IDs claim the same root key, the one that sorts last by
// CompareSliceIDs wins the inverse direction and the others are reported
// by Shadowed.
func NewSegmentIndex(entries map[string]string) *SegmentIndex {
	idx := &SegmentIndex{
		slices: make(map[string]string, len(entries)),
		roots:  make(map[string]string, len(entries)),
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, CompareSliceIDs)

	for _, id := range ids {
		root := entries[id]
		if prev, dup := idx.roots[root]; dup {
			idx.shadowed = append(idx.shadowed, prev)
		}
		idx.slices[id] = root
		idx.roots[root] = id

		n, err := ParseSliceNumber(id)
		if err != nil {
			idx.malformed = append(idx.malformed, id)
			continue
		}
		idx.counter = max(idx.counter, n)
	}

	return idx
}

// Lookup returns the slice ID allocated for rootKey.
func (idx *SegmentIndex) Lookup(rootKey string) (string, bool) {
	id, ok := idx.roots[rootKey]
	return id, ok
}

// RootKey returns the root key the slice was allocated for.
func (idx *SegmentIndex) RootKey(sliceID string) (string, bool) {
	root, ok := idx.slices[sliceID]
	return root, ok
}

// Allocate returns the slice ID for rootKey, allocating the next free one
// if the key is new. The second result reports whether an allocation happened.
func (idx *SegmentIndex) Allocate(rootKey string) (string, bool) {
	return idx.AllocateSkipping(rootKey, nil)
}

// AllocateSkipping is Allocate, but also passes over every ID for which
// inUse reports true. The counter still advances past skipped IDs.
func (idx *SegmentIndex) AllocateSkipping(rootKey string, inUse func(id string) bool) (string, bool) {
	if id, ok := idx.roots[rootKey]; ok {
		return id, false
	}

	for {
		idx.counter++
		id := FormatSliceID(idx.counter)
		if _, taken := idx.slices[id]; taken {
			continue
		}
		if inUse != nil && inUse(id) {
			continue
		}

		idx.slices[id] = rootKey
		idx.roots[rootKey] = id
		return id, true
	}
}

// RootKeysWithPrefix returns every root key starting with prefix, sorted.
func (idx *SegmentIndex) RootKeysWithPrefix(prefix string) []string {
	var keys []string
	for root := range idx.roots {
		if strings.HasPrefix(root, prefix) {
			keys = append(keys, root)
		}
	}
	slices.Sort(keys)
	return keys
}

// Entries returns a copy of the forward map.
func (idx *SegmentIndex) Entries() map[string]string {
	return maps.Clone(idx.slices)
}

// Segments returns all entries ordered by slice ID.
func (idx *SegmentIndex) Segments() []Segment {
	segs := make([]Segment, 0, len(idx.slices))
	for id, root := range idx.slices {
		segs = append(segs, Segment{SliceID: id, RootKey: root})
	}
	slices.SortFunc(segs, func(a, b Segment) int {
		return CompareSliceIDs(a.SliceID, b.SliceID)
	})
	return segs
}

// Len returns the number of entries.
func (idx *SegmentIndex) Len() int {
	return len(idx.slices)
}

// Counter returns the highest slice number handed out or loaded so far.
func (idx *SegmentIndex) Counter() int {
	return idx.counter
}

// Malformed returns the slice IDs whose numeric suffix could not be parsed at load time.
func (idx *SegmentIndex) Malformed() []string {
	return slices.Clone(idx.malformed)
}

// Shadowed returns the slice IDs that lost their root key to a duplicate
// at load time. RootKey still answers for them but Lookup never returns them.
func (idx *SegmentIndex) Shadowed() []string {
	return slices.Clone(idx.shadowed)
}
