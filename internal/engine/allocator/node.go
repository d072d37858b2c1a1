package allocator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/slicer/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/slicer/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/slicer/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/slicer/internal/adapters/segments"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/slicer/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/slicer/internal/core/ports"
)

// NodeID is the unique identifier for the allocator Graft node.
const NodeID graft.ID = "engine.allocator"

func init() {
	graft.Register(graft.Node[*Allocator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.RootResolverNodeID,
			fs.LocatorNodeID,
			segments.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Allocator, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := loader.Load()
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.CacheRootResolver](ctx)
			if err != nil {
				return nil, err
			}

			locator, err := graft.Dep[ports.RootLocator](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.SegmentStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[trace.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(resolver, store, locator, log, tracer, cfg.DebounceWindow), nil
		},
	})
}
