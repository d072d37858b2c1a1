package ports

// CacheRootResolver locates and validates the directory holding all slices.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache_root.go -destination=mocks/mock_cache_root.go -package=mocks
type CacheRootResolver interface {
	// Resolve returns the absolute cache root. The directory exists, is
	// readable and is writable when the error is nil.
	Resolve() (string, error)
}

// RootLocator converts between root keys and live directories.
type RootLocator interface {
	// URLFor returns the root key for a directory.
	URLFor(dir string) (string, error)

	// Locate returns the live directory a root key points at.
	// It reports false when the key does not resolve to an existing directory.
	Locate(rootKey string) (string, bool)
}
