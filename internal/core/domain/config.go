package domain

import "time"

// LogFormat selects the log handler.
type LogFormat string

const (
	// LogFormatAuto picks pretty output on a terminal and JSON otherwise.
	LogFormatAuto LogFormat = "auto"
	// LogFormatPretty forces human-readable output.
	LogFormatPretty LogFormat = "pretty"
	// LogFormatJSON forces JSON lines.
	LogFormatJSON LogFormat = "json"
)

// Config is the effective application configuration.
type Config struct {
	// CacheDir overrides the default cache root when non-empty.
	CacheDir string
	// DebounceWindow is the sliding window for coalescing segment writes.
	DebounceWindow time.Duration
	// LogLevel is one of debug, info, warn or error.
	LogLevel string
	// LogFormat selects the log handler.
	LogFormat LogFormat
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		DebounceWindow: DefaultDebounceWindow,
		LogLevel:       "info",
		LogFormat:      LogFormatAuto,
	}
}
