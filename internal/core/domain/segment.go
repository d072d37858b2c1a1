package domain

import (
	"cmp"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Segment is one persisted mapping between a slice and the root it caches.
type Segment struct {
	SliceID string
	RootKey string
}

// Slice is an allocated cache sub-directory.
type Slice struct {
	ID  string
	Dir string
}

// NewSlice returns the slice with the given ID located under root.
func NewSlice(root, id string) Slice {
	return Slice{ID: id, Dir: filepath.Join(root, id)}
}

// FormatSliceID returns the slice ID for the n-th allocation.
func FormatSliceID(n int) string {
	return SlicePrefix + strconv.Itoa(n)
}

// ParseSliceNumber returns the numeric suffix of a slice ID.
func ParseSliceNumber(id string) (int, error) {
	digits, ok := strings.CutPrefix(id, SlicePrefix)
	if !ok {
		return 0, zerr.With(zerr.New("slice id is missing prefix"), "slice_id", id)
	}
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, zerr.With(zerr.New("malformed slice number"), "slice_id", id)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "malformed slice number"), "slice_id", id)
	}
	if n < 1 {
		return 0, zerr.With(zerr.New("slice number must be positive"), "slice_id", id)
	}
	return n, nil
}

// CompareSliceIDs orders well-formed slice IDs numerically, placing them
// before malformed ones, which are ordered lexically.
func CompareSliceIDs(a, b string) int {
	na, errA := ParseSliceNumber(a)
	nb, errB := ParseSliceNumber(b)
	switch {
	case errA == nil && errB == nil:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
