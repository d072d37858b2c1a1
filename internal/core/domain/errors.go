package domain

import "go.trai.ch/zerr"

var (
	// ErrCacheRootInvalid is returned when the cache root is missing, not a directory,
	// unreadable or unwritable. It is a fatal configuration error and is never retried.
	ErrCacheRootInvalid = zerr.New("invalid cache root")

	// ErrCacheRootUnavailable is returned when no default cache location can be determined.
	ErrCacheRootUnavailable = zerr.New("cache root location unavailable")

	// ErrSegmentsReadFailed is returned when the segments file cannot be read.
	ErrSegmentsReadFailed = zerr.New("failed to read segments file")

	// ErrSegmentsWriteFailed is returned when the segments file cannot be written.
	ErrSegmentsWriteFailed = zerr.New("failed to write segments file")

	// ErrSegmentsEncodeFailed is returned when the segment map cannot be serialized.
	ErrSegmentsEncodeFailed = zerr.New("failed to encode segments")

	// ErrFlushFailed is logged when the background flush of the slice map fails.
	ErrFlushFailed = zerr.New("failed to flush slice map")

	// ErrPersistPanicked is logged when a background segment write panics.
	ErrPersistPanicked = zerr.New("background segment write panicked")

	// ErrSliceDirCreateFailed is returned when a slice directory cannot be created.
	ErrSliceDirCreateFailed = zerr.New("failed to create slice directory")

	// ErrSliceNotFound is returned by the CLI when a directory is not a known slice.
	ErrSliceNotFound = zerr.New("slice not found")

	// ErrInvalidRootKey is returned when a root key is empty.
	ErrInvalidRootKey = zerr.New("invalid root key")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidDebounceWindow is returned when the debounce window is not a positive duration.
	ErrInvalidDebounceWindow = zerr.New("debounce window must be a positive duration")

	// ErrInvalidLogLevel is returned when the configured log level is unknown.
	ErrInvalidLogLevel = zerr.New("invalid log level, expected 'debug', 'info', 'warn' or 'error'")

	// ErrInvalidLogFormat is returned when the configured log format is unknown.
	ErrInvalidLogFormat = zerr.New("invalid log format, expected 'auto', 'pretty' or 'json'")

	// ErrPathResolutionFailed is returned when a directory cannot be turned into an absolute path.
	ErrPathResolutionFailed = zerr.New("failed to resolve absolute path")
)
