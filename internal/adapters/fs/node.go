package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/slicer/internal/adapters/config"
	"go.trai.ch/slicer/internal/core/ports"
)

const (
	// RootResolverNodeID is the unique identifier for the cache root resolver Graft node.
	RootResolverNodeID graft.ID = "adapter.fs.root_resolver"
	// LocatorNodeID is the unique identifier for the root locator Graft node.
	LocatorNodeID graft.ID = "adapter.fs.locator"
)

func init() {
	graft.Register(graft.Node[ports.CacheRootResolver]{
		ID:        RootResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.CacheRootResolver, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := loader.Load()
			if err != nil {
				return nil, err
			}
			return NewRootResolver(cfg.CacheDir), nil
		},
	})

	graft.Register(graft.Node[ports.RootLocator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RootLocator, error) {
			return NewLocator(), nil
		},
	})
}
