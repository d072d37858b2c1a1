// Package config provides the configuration loader for slicer.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/slicer/internal/core/domain"
	"go.trai.ch/slicer/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables read by the loader.
const (
	EnvConfigPath     = "SLICER_CONFIG"
	EnvCacheDir       = "SLICER_CACHE_DIR"
	EnvDebounceWindow = "SLICER_DEBOUNCE_WINDOW"
	EnvLogLevel       = "SLICER_LOG_LEVEL"
	EnvLogFormat      = "SLICER_LOG_FORMAT"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file and environment overrides.
type Loader struct {
	// Path is the config file to read. When empty, $SLICER_CONFIG is used,
	// then the file under the user config directory.
	Path string
}

// NewLoader creates a new Loader that discovers the config file.
func NewLoader() *Loader {
	return &Loader{}
}

// Load returns defaults, overlaid by the config file, overlaid by the environment.
// A missing file at the default location is not an error. A missing file that
// was named explicitly is.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	path, explicit := l.configPath()
	if path != "" {
		if err := loadFile(path, explicit, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) configPath() (path string, explicit bool) {
	if l.Path != "" {
		return l.Path, true
	}
	if p, ok := os.LookupEnv(EnvConfigPath); ok && p != "" {
		return p, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return domain.DefaultConfigPath(dir), false
}

func loadFile(path string, explicit bool, cfg *domain.Config) error {
	// #nosec G304 -- path comes from the user's own environment
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	return merge(cfg, &file, filepath.Dir(path))
}

// merge overlays non-empty file values. A relative cache_dir is taken
// relative to the directory holding the config file.
func merge(cfg *domain.Config, file *File, baseDir string) error {
	if file.CacheDir != "" {
		dir, err := expandHome(file.CacheDir)
		if err != nil {
			return err
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		cfg.CacheDir = dir
	}
	if file.DebounceWindow != "" {
		d, err := parseWindow(file.DebounceWindow)
		if err != nil {
			return err
		}
		cfg.DebounceWindow = d
	}
	if file.Log.Level != "" {
		cfg.LogLevel = file.Log.Level
	}
	if file.Log.Format != "" {
		cfg.LogFormat = domain.LogFormat(file.Log.Format)
	}
	return nil
}

func applyEnv(cfg *domain.Config) error {
	if v, ok := os.LookupEnv(EnvCacheDir); ok && v != "" {
		dir, err := expandHome(v)
		if err != nil {
			return err
		}
		cfg.CacheDir = dir
	}
	if v, ok := os.LookupEnv(EnvDebounceWindow); ok && v != "" {
		d, err := parseWindow(v)
		if err != nil {
			return err
		}
		cfg.DebounceWindow = d
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = domain.LogFormat(v)
	}
	return nil
}

func validate(cfg *domain.Config) error {
	if cfg.DebounceWindow <= 0 {
		return zerr.With(domain.ErrInvalidDebounceWindow, "value", cfg.DebounceWindow.String())
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return zerr.With(domain.ErrInvalidLogLevel, "value", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case domain.LogFormatAuto, domain.LogFormatPretty, domain.LogFormatJSON:
	default:
		return zerr.With(domain.ErrInvalidLogFormat, "value", string(cfg.LogFormat))
	}

	return nil
}

func parseWindow(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrInvalidDebounceWindow.Error()), "value", s)
	}
	return d, nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrPathResolutionFailed.Error()), "path", p)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
