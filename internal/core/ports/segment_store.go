package ports

// SegmentStore persists the slice map of a cache root.
//
//go:generate go run go.uber.org/mock/mockgen -source=segment_store.go -destination=mocks/mock_segment_store.go -package=mocks
type SegmentStore interface {
	// Load reads the slice id to root key map stored under root.
	// A missing file yields an empty map and a nil error.
	Load(root string) (map[string]string, error)

	// Save replaces the map stored under root with entries atomically.
	Save(root string, entries map[string]string) error
}
