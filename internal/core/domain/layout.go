package domain

import (
	"path/filepath"
	"time"
)

const (
	// AppName is the application directory name used under the user cache and config dirs.
	AppName = "slicer"

	// IndexDirName is the name of the cache root directory under the application cache dir.
	IndexDirName = "index"

	// SegmentsFileName is the name of the persisted slice map at the top of the cache root.
	SegmentsFileName = "segments"

	// SlicePrefix prefixes the numeric part of every slice ID.
	SlicePrefix = "s"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"

	// DefaultDebounceWindow is the sliding window used to coalesce segment writes.
	DefaultDebounceWindow = 500 * time.Millisecond

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// SegmentsPath returns the path of the segments file under root.
func SegmentsPath(root string) string {
	return filepath.Join(root, SegmentsFileName)
}

// DefaultCacheRoot returns the cache root under the given user cache directory.
// It joins slicer and index.
func DefaultCacheRoot(userCacheDir string) string {
	return filepath.Join(userCacheDir, AppName, IndexDirName)
}

// DefaultConfigPath returns the config file path under the given user config directory.
func DefaultConfigPath(userConfigDir string) string {
	return filepath.Join(userConfigDir, AppName, ConfigFileName)
}
