package logger

import (
	"context"
	"log/slog"

	"github.com/grindlemire/graft"
	"go.trai.ch/slicer/internal/adapters/config"
	"go.trai.ch/slicer/internal/adapters/detector"
	"go.trai.ch/slicer/internal/core/domain"
	"go.trai.ch/slicer/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := loader.Load()
			if err != nil {
				return nil, err
			}

			l := New()
			if err := l.Configure(cfg, detector.DetectFormat()); err != nil {
				return nil, err
			}
			return l, nil
		},
	})
}

// Configure applies the level and format from cfg. detected is used when
// the configured format is auto.
func (l *Logger) Configure(cfg *domain.Config, detected domain.LogFormat) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidLogLevel.Error()), "level", cfg.LogLevel)
	}
	l.SetLevel(level)

	format := detector.ResolveFormat(detected, cfg.LogFormat)
	l.SetJSON(format == domain.LogFormatJSON)
	return nil
}
